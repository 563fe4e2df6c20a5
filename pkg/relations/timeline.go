package relations

import (
	"context"
	"sort"

	"rasid/pkg/article"
	"rasid/pkg/logger"
)

// Trend labels for a pair's timeline.
const (
	TrendImproving        = "improving"
	TrendDeteriorating    = "deteriorating"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// trendThreshold is the minimum half-to-half mean shift in sentiment
// proxy that counts as a real trend.
const trendThreshold = 0.3

// TimelinePoint is one analyzed period in a pair's timeline.
type TimelinePoint struct {
	Period       string  `json:"period"`
	Relation     string  `json:"relationship_type"`
	Strength     float64 `json:"strength"`
	Description  string  `json:"description"`
	ArticleCount int     `json:"article_count"`
}

// Timeline is the ordered per-period history of one entity pair.
type Timeline struct {
	Entity1 string          `json:"entity1"`
	Entity2 string          `json:"entity2"`
	Points  []TimelinePoint `json:"timeline"`
	Trend   string          `json:"trend"`
}

// sentimentProxy maps a relationship category to a coarse numeric
// signal for trend detection.
func sentimentProxy(relation string) float64 {
	switch relation {
	case RelationAlliance, RelationSupport, RelationCooperation:
		return 1
	case RelationConflict, RelationOpposition:
		return -1
	case RelationTension:
		return -0.5
	default:
		return 0
	}
}

// TrendFromRelations classifies the drift across an ordered relation
// sequence. The list splits into halves, first half smaller on odd
// length, and the half means are compared against the threshold.
func TrendFromRelations(relations []string) string {
	if len(relations) < 2 {
		return TrendInsufficientData
	}

	mid := len(relations) / 2
	first := relations[:mid]
	second := relations[mid:]

	mean := func(rs []string) float64 {
		var sum float64
		for _, r := range rs {
			sum += sentimentProxy(r)
		}
		return sum / float64(len(rs))
	}

	diff := mean(second) - mean(first)
	switch {
	case diff > trendThreshold:
		return TrendImproving
	case diff < -trendThreshold:
		return TrendDeteriorating
	default:
		return TrendStable
	}
}

// BuildTimeline analyzes a pair period by period and classifies the
// overall trend. Periods are processed in lexicographic order, the
// unknown bucket is excluded, and periods with fewer than the
// configured minimum of articles are dropped before analysis. Failed
// periods are absorbed: they appear neither as points nor as errors.
func (a *Analyzer) BuildTimeline(ctx context.Context, entity1, entity2 string, periods map[string][]ArticleRef) *Timeline {
	labels := make([]string, 0, len(periods))
	for period, refs := range periods {
		if period == article.PeriodUnknown {
			continue
		}
		if len(refs) < a.config.MinArticlesPerPeriod {
			continue
		}
		labels = append(labels, period)
	}
	sort.Strings(labels)

	timeline := &Timeline{Entity1: entity1, Entity2: entity2}
	var relations []string

	for _, period := range labels {
		if ctx.Err() != nil {
			break
		}
		analysis := a.AnalyzePeriod(ctx, entity1, entity2, periods[period], period)
		if analysis == nil {
			continue
		}
		timeline.Points = append(timeline.Points, TimelinePoint{
			Period:       period,
			Relation:     analysis.Relation,
			Strength:     analysis.Strength,
			Description:  analysis.Description,
			ArticleCount: len(periods[period]),
		})
		relations = append(relations, analysis.Relation)
	}

	timeline.Trend = TrendFromRelations(relations)
	logger.Debug("built pair timeline",
		"pair", PairKey(entity1, entity2),
		"periods", len(labels),
		"points", len(timeline.Points),
		"trend", timeline.Trend,
	)
	return timeline
}
