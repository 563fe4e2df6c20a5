package relations

import (
	"context"
	"fmt"
	"testing"

	"rasid/pkg/catalog"
)

func TestTrendFromRelations(t *testing.T) {
	tests := []struct {
		name      string
		relations []string
		want      string
	}{
		{
			name:      "deteriorating",
			relations: []string{RelationAlliance, RelationAlliance, RelationConflict, RelationConflict},
			want:      TrendDeteriorating,
		},
		{
			name:      "improving",
			relations: []string{RelationConflict, RelationConflict, RelationAlliance, RelationAlliance},
			want:      TrendImproving,
		},
		{
			name:      "stable",
			relations: []string{RelationNeutral, RelationNeutral, RelationNeutral, RelationNeutral},
			want:      TrendStable,
		},
		{
			name:      "single period",
			relations: []string{RelationAlliance},
			want:      TrendInsufficientData,
		},
		{
			name:      "empty",
			relations: nil,
			want:      TrendInsufficientData,
		},
		{
			name:      "tension drifts below threshold",
			relations: []string{RelationNeutral, RelationNeutral, RelationTension, RelationTension},
			want:      TrendDeteriorating,
		},
		{
			name:      "odd length gives first half the smaller share",
			relations: []string{RelationConflict, RelationSupport, RelationSupport},
			want:      TrendImproving,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TrendFromRelations(tc.relations); got != tc.want {
				t.Fatalf("TrendFromRelations(%v) = %q, want %q", tc.relations, got, tc.want)
			}
		})
	}
}

func TestBuildTimelineOrdersPeriods(t *testing.T) {
	fake := &fakeAIClient{responses: []string{`{"relationship_type": "negotiation", "strength": 0.5, "description": "x"}`}}
	a := newTestAnalyzer(fake)

	periods := map[string][]ArticleRef{
		"2025-02": periodRefs(1, "2025-02"),
		"2025-01": periodRefs(2, "2025-01"),
		"unknown": periodRefs(3, "unknown"),
	}

	timeline := a.BuildTimeline(context.Background(), "روسيا", "تركيا", periods)
	if len(timeline.Points) != 2 {
		t.Fatalf("points = %d, want 2 (unknown excluded)", len(timeline.Points))
	}
	if timeline.Points[0].Period != "2025-01" || timeline.Points[1].Period != "2025-02" {
		t.Fatalf("periods out of order: %+v", timeline.Points)
	}
	if timeline.Points[0].ArticleCount != 2 {
		t.Fatalf("article count = %d, want 2", timeline.Points[0].ArticleCount)
	}
}

func TestBuildTimelineMinArticlesFilter(t *testing.T) {
	fake := &fakeAIClient{responses: []string{`{"relationship_type": "neutral"}`}}
	a := NewAnalyzer(fake, catalog.Default(), AnalyzerConfig{MinArticlesPerPeriod: 2})

	periods := map[string][]ArticleRef{
		"2025-01": periodRefs(1, "2025-01"),
		"2025-02": periodRefs(2, "2025-02"),
	}

	timeline := a.BuildTimeline(context.Background(), "روسيا", "تركيا", periods)
	if len(timeline.Points) != 1 || timeline.Points[0].Period != "2025-02" {
		t.Fatalf("expected only the two-article period, got %+v", timeline.Points)
	}
	if timeline.Trend != TrendInsufficientData {
		t.Fatalf("trend = %q, want insufficient_data for one surviving period", timeline.Trend)
	}
}

func TestBuildTimelineAbsorbsFailedPeriods(t *testing.T) {
	// Every other completion is unparseable; failed periods vanish
	// without failing the pair.
	fake := &fakeAIClient{responses: []string{
		`{"relationship_type": "alliance"}`,
		"not json at all",
	}}
	a := newTestAnalyzer(fake)

	periods := make(map[string][]ArticleRef)
	for month := 1; month <= 4; month++ {
		label := fmt.Sprintf("2025-0%d", month)
		periods[label] = periodRefs(1, label)
	}

	timeline := a.BuildTimeline(context.Background(), "روسيا", "تركيا", periods)
	if len(timeline.Points) != 2 {
		t.Fatalf("points = %d, want 2 surviving", len(timeline.Points))
	}
	for _, p := range timeline.Points {
		if p.Relation != RelationAlliance {
			t.Fatalf("unexpected relation %q", p.Relation)
		}
	}
}

func TestBuildTimelineTwoPeriodScenario(t *testing.T) {
	fake := &fakeAIClient{responses: []string{`{"relationship_type": "cooperation", "strength": 0.6}`}}
	a := newTestAnalyzer(fake)

	periods := map[string][]ArticleRef{
		"2025-01": periodRefs(2, "2025-01"),
		"2025-02": periodRefs(1, "2025-02"),
	}

	timeline := a.BuildTimeline(context.Background(), "A", "B", periods)
	if len(timeline.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(timeline.Points))
	}
	if timeline.Points[0].Period != "2025-01" || timeline.Points[1].Period != "2025-02" {
		t.Fatalf("wrong order: %+v", timeline.Points)
	}
	if timeline.Trend != TrendStable {
		t.Fatalf("trend = %q, want stable for identical verdicts", timeline.Trend)
	}
}
