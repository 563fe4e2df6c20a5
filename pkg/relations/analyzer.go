package relations

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"rasid/pkg/ai"
	"rasid/pkg/catalog"
	"rasid/pkg/logger"

	"github.com/pkoukk/tiktoken-go"
)

// Relationship categories a period verdict may carry.
const (
	RelationAlliance    = "alliance"
	RelationCooperation = "cooperation"
	RelationSupport     = "support"
	RelationNegotiation = "negotiation"
	RelationTension     = "tension"
	RelationConflict    = "conflict"
	RelationOpposition  = "opposition"
	RelationNeutral     = "neutral"
	RelationNoEvidence  = "no_evidence"
)

var validRelations = map[string]bool{
	RelationAlliance:    true,
	RelationCooperation: true,
	RelationSupport:     true,
	RelationNegotiation: true,
	RelationTension:     true,
	RelationConflict:    true,
	RelationOpposition:  true,
	RelationNeutral:     true,
	RelationNoEvidence:  true,
}

const (
	defaultMaxArticlesPerPrompt = 10
	defaultMaxContextTokens     = 6000
	defaultMinArticlesPerPeriod = 2
	promptArticlePrefixRunes    = 1000
)

// Evidence is one quote backing a period verdict, resolved to its
// source article.
type Evidence struct {
	Quote        string `json:"quote"`
	ArticleIndex int    `json:"article_index"`
	Title        string `json:"title,omitempty"`
	URL          string `json:"url,omitempty"`
	Date         string `json:"date,omitempty"`
}

// PeriodAnalysis is the verdict for one entity pair in one period.
type PeriodAnalysis struct {
	Entity1           string     `json:"entity1"`
	Entity2           string     `json:"entity2"`
	Period            string     `json:"period"`
	Relation          string     `json:"relationship_type"`
	Strength          float64    `json:"strength"`
	Sentiment         string     `json:"sentiment,omitempty"`
	Description       string     `json:"description"`
	Evidence          []Evidence `json:"evidence,omitempty"`
	CitedArticles     []int      `json:"cited_articles,omitempty"`
	HasDirectEvidence bool       `json:"has_direct_evidence"`
	ArticleCount      int        `json:"article_count"`
}

// AnalyzerConfig tunes the per-period analysis. StructuredOutput routes
// completions through the schema-constrained API; leave it off for
// reasoning models, whose interleaved think blocks constrained decoding
// rejects.
type AnalyzerConfig struct {
	Model                string
	MaxArticlesPerPrompt int
	MaxContextTokens     int
	MinArticlesPerPeriod int
	StructuredOutput     bool
}

func (c AnalyzerConfig) withDefaults() AnalyzerConfig {
	if c.MaxArticlesPerPrompt <= 0 {
		c.MaxArticlesPerPrompt = defaultMaxArticlesPerPrompt
	}
	if c.MaxContextTokens <= 0 {
		c.MaxContextTokens = defaultMaxContextTokens
	}
	if c.MinArticlesPerPeriod <= 0 {
		c.MinArticlesPerPeriod = defaultMinArticlesPerPeriod
	}
	return c
}

// Analyzer drives the per-period LLM calls for entity pairs.
type Analyzer struct {
	aiClient    ai.AnalysisAIClient
	catalog     *catalog.Catalog
	config      AnalyzerConfig
	countTokens func(string) int
}

// NewAnalyzer creates an Analyzer. The token encoder is optional at
// runtime: if loading it fails, context building falls back to the
// article-count bound alone.
func NewAnalyzer(aiClient ai.AnalysisAIClient, c *catalog.Catalog, config AnalyzerConfig) *Analyzer {
	var countTokens func(string) int
	encoder, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		logger.Warn("token encoder unavailable, context budget is article-count only", "error", err)
	} else {
		countTokens = func(text string) int {
			return len(encoder.Encode(text, nil, nil))
		}
	}
	return &Analyzer{
		aiClient:    aiClient,
		catalog:     c,
		config:      config.withDefaults(),
		countTokens: countTokens,
	}
}

// buildContext concatenates article prefixes, most recent period first,
// bounded by both the article cap and the token budget. It returns the
// refs actually rendered, in prompt order, so evidence indices resolve
// against what the model saw.
func (a *Analyzer) buildContext(refs []ArticleRef) (string, []ArticleRef) {
	sorted := a.promptOrder(refs)

	var parts []string
	var rendered []ArticleRef
	budget := a.config.MaxContextTokens
	for i, ref := range sorted {
		content := ref.Content
		if runes := []rune(content); len(runes) > promptArticlePrefixRunes {
			content = string(runes[:promptArticlePrefixRunes])
		}
		part := fmt.Sprintf("ARTICLE %d [%s] %s\n%s", i+1, ref.Date, ref.Title, content)

		if a.countTokens != nil {
			cost := a.countTokens(part)
			if len(parts) > 0 && cost > budget {
				break
			}
			budget -= cost
		}
		parts = append(parts, part)
		rendered = append(rendered, ref)
	}
	return strings.Join(parts, "\n\n---\n\n"), rendered
}

// rawAnalysis mirrors the JSON shape requested from the model.
type rawAnalysis struct {
	Relation          string  `json:"relationship_type"`
	Strength          float64 `json:"strength"`
	Sentiment         string  `json:"sentiment"`
	Description       string  `json:"description"`
	HasDirectEvidence bool    `json:"has_direct_evidence"`
	Evidence          []struct {
		Quote        string `json:"quote"`
		ArticleIndex int    `json:"article_index"`
	} `json:"evidence"`
}

func (a *Analyzer) lookupEntity(id string) catalog.Entity {
	if e, ok := a.catalog.Lookup(id); ok {
		return e
	}
	return catalog.Entity{ID: id, NameEN: id}
}

// AnalyzePeriod runs one completion for the pair over the period's
// articles and returns the verdict. Any failure, model, timeout or
// parse, yields nil: a bad period is skipped, never fatal. There are
// no retries.
func (a *Analyzer) AnalyzePeriod(ctx context.Context, entity1, entity2 string, refs []ArticleRef, period string) *PeriodAnalysis {
	if len(refs) == 0 {
		return nil
	}

	e1 := a.lookupEntity(entity1)
	e2 := a.lookupEntity(entity2)
	promptContext, rendered := a.buildContext(refs)
	prompt := buildRelationshipPrompt(e1, e2, period, promptContext)

	opts := []ai.GenerateOption{
		ai.WithTemperature(0.6),
		ai.WithMaxTokens(2000),
	}
	if a.config.Model != "" {
		opts = append(opts, ai.WithModel(a.config.Model))
	}

	var raw rawAnalysis
	if a.config.StructuredOutput {
		err := a.aiClient.GenerateCompletionWithFormat(ctx,
			"relationship_analysis",
			"Relationship verdict for one entity pair in one period",
			prompt, &raw, opts...)
		if err != nil {
			logger.Warn("relationship completion failed", "pair", PairKey(entity1, entity2), "period", period, "error", err)
			return nil
		}
	} else {
		response, err := a.aiClient.GenerateCompletion(ctx, prompt, opts...)
		if err != nil {
			logger.Warn("relationship completion failed", "pair", PairKey(entity1, entity2), "period", period, "error", err)
			return nil
		}
		if err := ai.CleanAndParse(response, &raw); err != nil {
			logger.Warn("relationship response unparseable", "pair", PairKey(entity1, entity2), "period", period, "error", err)
			return nil
		}
	}

	if !validRelations[raw.Relation] {
		raw.Relation = RelationNoEvidence
	}
	if raw.Strength < 0 {
		raw.Strength = 0
	} else if raw.Strength > 1 {
		raw.Strength = 1
	}

	analysis := &PeriodAnalysis{
		Entity1:           entity1,
		Entity2:           entity2,
		Period:            period,
		Relation:          raw.Relation,
		Strength:          raw.Strength,
		Sentiment:         raw.Sentiment,
		Description:       raw.Description,
		HasDirectEvidence: raw.HasDirectEvidence,
		ArticleCount:      len(refs),
	}

	// Evidence indices are 1-based positions among the articles rendered
	// into the prompt. Out-of-range indices are dropped silently.
	cited := make(map[int]bool)
	for _, ev := range raw.Evidence {
		idx := ev.ArticleIndex
		if idx < 1 || idx > len(rendered) {
			continue
		}
		ref := rendered[idx-1]
		analysis.Evidence = append(analysis.Evidence, Evidence{
			Quote:        ev.Quote,
			ArticleIndex: idx,
			Title:        ref.Title,
			URL:          ref.URL,
			Date:         ref.Date,
		})
		if !cited[idx] {
			cited[idx] = true
			analysis.CitedArticles = append(analysis.CitedArticles, idx)
		}
	}

	return analysis
}

// promptOrder sorts refs most recent period first and caps them at the
// article limit. buildContext may truncate the result further on the
// token budget.
func (a *Analyzer) promptOrder(refs []ArticleRef) []ArticleRef {
	sorted := make([]ArticleRef, len(refs))
	copy(sorted, refs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Period > sorted[j].Period
	})
	if len(sorted) > a.config.MaxArticlesPerPrompt {
		sorted = sorted[:a.config.MaxArticlesPerPrompt]
	}
	return sorted
}
