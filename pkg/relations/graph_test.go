package relations

import (
	"context"
	"testing"

	"rasid/pkg/article"
)

func pairArticles(n int, date string) []article.Article {
	arts := make([]article.Article, n)
	for i := range arts {
		arts[i] = article.Article{
			Title:   "روسيا و تركيا",
			Content: "بحث الجانبان ملف التهدئة في الشمال السوري خلال اجتماع مشترك",
			Date:    date,
			URL:     "https://example.org/a",
		}
	}
	return arts
}

func TestBuildGraph(t *testing.T) {
	fake := &fakeAIClient{responses: []string{`{"relationship_type": "negotiation", "strength": 0.6, "description": "x"}`}}
	a := newTestAnalyzer(fake)
	m := testMatcher()

	arts := append(pairArticles(2, "يناير 2025"), pairArticles(1, "فبراير 2025")...)
	graph := a.BuildGraph(context.Background(), m, arts, 3)

	if len(graph.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(graph.Edges))
	}
	edge := graph.Edges[0]
	if edge.Relation != RelationNegotiation {
		t.Fatalf("relation = %q", edge.Relation)
	}
	if edge.ArticleCount != 3 {
		t.Fatalf("article count = %d, want 3", edge.ArticleCount)
	}
	if len(graph.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(graph.Nodes))
	}
	if graph.Stats.TotalArticles != 3 || graph.Stats.RelationshipsAnalyzed != 1 {
		t.Fatalf("stats = %+v", graph.Stats)
	}
}

func TestBuildGraphMinArticlesFilter(t *testing.T) {
	fake := &fakeAIClient{responses: []string{`{"relationship_type": "neutral"}`}}
	a := newTestAnalyzer(fake)
	m := testMatcher()

	graph := a.BuildGraph(context.Background(), m, pairArticles(2, "يناير 2025"), 3)
	if len(graph.Edges) != 0 {
		t.Fatalf("edges = %d, want 0 below threshold", len(graph.Edges))
	}
	if graph.Stats.EntityPairsFound != 1 {
		t.Fatalf("pairs found = %d, want 1", graph.Stats.EntityPairsFound)
	}
}
