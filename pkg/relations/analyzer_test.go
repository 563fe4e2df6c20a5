package relations

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"rasid/pkg/ai"
	"rasid/pkg/catalog"
)

// fakeAIClient returns canned completions and records prompts.
type fakeAIClient struct {
	responses   []string
	err         error
	calls       int
	formatCalls int
	prompts     []string
}

func (f *fakeAIClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	response := f.responses[f.calls%len(f.responses)]
	f.calls++
	return response, nil
}

func (f *fakeAIClient) GenerateCompletionWithFormat(ctx context.Context, name, description, prompt string, out any, opts ...ai.GenerateOption) error {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return f.err
	}
	response := f.responses[f.formatCalls%len(f.responses)]
	f.formatCalls++
	return json.Unmarshal([]byte(response), out)
}

func (f *fakeAIClient) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	return make([]float32, 4), nil
}

func (f *fakeAIClient) GenerateEmbeddings(ctx context.Context, inputs [][]byte) ([][]float32, error) {
	out := make([][]float32, len(inputs))
	for i := range out {
		out[i] = make([]float32, 4)
	}
	return out, nil
}

func (f *fakeAIClient) ResetMetrics() {}

func (f *fakeAIClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

func newTestAnalyzer(fake *fakeAIClient) *Analyzer {
	return NewAnalyzer(fake, catalog.Default(), AnalyzerConfig{MinArticlesPerPeriod: 1})
}

func periodRefs(n int, period string) []ArticleRef {
	refs := make([]ArticleRef, n)
	for i := range refs {
		refs[i] = ArticleRef{
			Title:   "مقال",
			Content: "تفاصيل التعاون بين روسيا و تركيا في الملف السوري",
			Date:    "يناير 2025",
			Period:  period,
			URL:     "https://example.org/a",
		}
	}
	return refs
}

func TestAnalyzePeriodParsesVerdict(t *testing.T) {
	fake := &fakeAIClient{responses: []string{`<think>
السؤال عن العلاقة بين الطرفين
</think>
` + "```json\n" + `{
  "relationship_type": "negotiation",
  "strength": 0.7,
  "sentiment": "neutral",
  "description": "محادثات ثنائية",
  "has_direct_evidence": true,
  "evidence": [
    {"quote": "اتفقت روسيا و تركيا على وقف التصعيد", "article_index": 1},
    {"quote": "مرجع غير موجود", "article_index": 9}
  ]
}` + "\n```"}}

	a := newTestAnalyzer(fake)
	got := a.AnalyzePeriod(context.Background(), "روسيا", "تركيا", periodRefs(2, "2025-01"), "2025-01")
	if got == nil {
		t.Fatal("expected verdict")
	}
	if got.Relation != RelationNegotiation {
		t.Fatalf("relation = %q", got.Relation)
	}
	if got.Strength != 0.7 {
		t.Fatalf("strength = %v", got.Strength)
	}
	if got.ArticleCount != 2 {
		t.Fatalf("article count = %d", got.ArticleCount)
	}

	// Index 9 is out of range for two articles and must vanish.
	if len(got.Evidence) != 1 {
		t.Fatalf("evidence = %d, want 1 (out-of-range dropped)", len(got.Evidence))
	}
	ev := got.Evidence[0]
	if ev.ArticleIndex != 1 || ev.URL != "https://example.org/a" || ev.Title != "مقال" {
		t.Fatalf("evidence not resolved to article metadata: %+v", ev)
	}
	if len(got.CitedArticles) != 1 || got.CitedArticles[0] != 1 {
		t.Fatalf("cited articles = %v", got.CitedArticles)
	}
}

func TestAnalyzePeriodStructuredOutput(t *testing.T) {
	fake := &fakeAIClient{responses: []string{`{
  "relationship_type": "cooperation",
  "strength": 0.5,
  "description": "تنسيق ميداني",
  "has_direct_evidence": true,
  "evidence": [{"quote": "نسقت روسيا مع تركيا", "article_index": 1}]
}`}}

	a := NewAnalyzer(fake, catalog.Default(), AnalyzerConfig{
		MinArticlesPerPeriod: 1,
		StructuredOutput:     true,
	})
	got := a.AnalyzePeriod(context.Background(), "روسيا", "تركيا", periodRefs(2, "2025-01"), "2025-01")
	if got == nil {
		t.Fatal("expected verdict")
	}
	if fake.formatCalls != 1 || fake.calls != 0 {
		t.Fatalf("format calls = %d, free-form calls = %d, want 1 and 0", fake.formatCalls, fake.calls)
	}
	if got.Relation != RelationCooperation {
		t.Fatalf("relation = %q", got.Relation)
	}
	if len(got.Evidence) != 1 || got.Evidence[0].URL != "https://example.org/a" {
		t.Fatalf("evidence not resolved: %+v", got.Evidence)
	}
}

func TestAnalyzePeriodEvidenceBeyondRenderedContextDropped(t *testing.T) {
	fake := &fakeAIClient{responses: []string{`{
  "relationship_type": "tension",
  "strength": 0.4,
  "description": "توتر",
  "evidence": [
    {"quote": "اقتباس من المقال الأول", "article_index": 1},
    {"quote": "اقتباس من مقال محذوف", "article_index": 2}
  ]
}`}}

	a := newTestAnalyzer(fake)
	// Each article costs more than the remaining budget after the first,
	// so only article 1 is rendered into the prompt.
	a.countTokens = func(string) int { return 4000 }

	got := a.AnalyzePeriod(context.Background(), "روسيا", "تركيا", periodRefs(3, "2025-01"), "2025-01")
	if got == nil {
		t.Fatal("expected verdict")
	}
	if len(fake.prompts) != 1 || strings.Contains(fake.prompts[0], "ARTICLE 2") {
		t.Fatal("prompt should contain only the first article")
	}
	if len(got.Evidence) != 1 || got.Evidence[0].ArticleIndex != 1 {
		t.Fatalf("evidence = %+v, want only index 1", got.Evidence)
	}
	if len(got.CitedArticles) != 1 || got.CitedArticles[0] != 1 {
		t.Fatalf("cited articles = %v", got.CitedArticles)
	}
}

func TestAnalyzePeriodInvalidRelationBecomesNoEvidence(t *testing.T) {
	fake := &fakeAIClient{responses: []string{`{"relationship_type": "friendship", "strength": 1.8, "description": "x"}`}}

	got := newTestAnalyzer(fake).AnalyzePeriod(context.Background(), "روسيا", "تركيا", periodRefs(1, "2025-01"), "2025-01")
	if got == nil {
		t.Fatal("expected verdict")
	}
	if got.Relation != RelationNoEvidence {
		t.Fatalf("relation = %q, want no_evidence", got.Relation)
	}
	if got.Strength != 1 {
		t.Fatalf("strength = %v, want clamped to 1", got.Strength)
	}
}

func TestAnalyzePeriodUnparseableYieldsNil(t *testing.T) {
	fake := &fakeAIClient{responses: []string{"the model refused to answer in json"}}
	if got := newTestAnalyzer(fake).AnalyzePeriod(context.Background(), "روسيا", "تركيا", periodRefs(1, "2025-01"), "2025-01"); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestAnalyzePeriodErrorYieldsNil(t *testing.T) {
	fake := &fakeAIClient{err: errors.New("deadline exceeded")}
	if got := newTestAnalyzer(fake).AnalyzePeriod(context.Background(), "روسيا", "تركيا", periodRefs(1, "2025-01"), "2025-01"); got != nil {
		t.Fatalf("expected nil on model error, got %+v", got)
	}
}

func TestAnalyzePeriodNoArticles(t *testing.T) {
	fake := &fakeAIClient{responses: []string{"{}"}}
	if got := newTestAnalyzer(fake).AnalyzePeriod(context.Background(), "روسيا", "تركيا", nil, "2025-01"); got != nil {
		t.Fatalf("expected nil for empty refs, got %+v", got)
	}
	if fake.calls != 0 {
		t.Fatal("model called despite empty refs")
	}
}

func TestPromptCarriesRules(t *testing.T) {
	fake := &fakeAIClient{responses: []string{`{"relationship_type": "neutral"}`}}
	a := newTestAnalyzer(fake)
	a.AnalyzePeriod(context.Background(), "روسيا", "تركيا", periodRefs(1, "2025-01"), "2025-01")

	if len(fake.prompts) != 1 {
		t.Fatalf("prompts = %d", len(fake.prompts))
	}
	prompt := fake.prompts[0]
	for _, want := range []string{
		"no_evidence",
		"SAME quoted span",
		"accuser-accused",
		"Self-Check",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestPromptTransitionNote(t *testing.T) {
	fake := &fakeAIClient{responses: []string{`{"relationship_type": "neutral"}`}}
	a := newTestAnalyzer(fake)

	a.AnalyzePeriod(context.Background(), "النظام", "روسيا", periodRefs(1, "2025-02"), "2025-02")
	if !strings.Contains(fake.prompts[0], "transitional authorities") {
		t.Fatal("post-transition period missing disambiguation note")
	}

	a.AnalyzePeriod(context.Background(), "النظام", "روسيا", periodRefs(1, "2024-06"), "2024-06")
	if strings.Contains(fake.prompts[1], "transitional authorities") {
		t.Fatal("pre-transition period should not carry the note")
	}
}
