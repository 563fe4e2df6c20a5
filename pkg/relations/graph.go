package relations

import (
	"context"
	"sort"

	"rasid/pkg/article"
	"rasid/pkg/catalog"
	"rasid/pkg/logger"
)

// GraphNode is one entity that takes part in at least one analyzed
// relationship.
type GraphNode struct {
	ID       string `json:"id"`
	NameEN   string `json:"name_en"`
	Category string `json:"category"`
}

// GraphEdge is the current verdict and history for one entity pair.
type GraphEdge struct {
	Source       string          `json:"source"`
	Target       string          `json:"target"`
	Relation     string          `json:"type"`
	Strength     float64         `json:"strength"`
	Description  string          `json:"description"`
	Trend        string          `json:"trend"`
	Timeline     []TimelinePoint `json:"timeline,omitempty"`
	ArticleCount int             `json:"article_count"`
}

// GraphStats summarizes a graph build.
type GraphStats struct {
	TotalArticles         int `json:"total_articles"`
	EntityPairsFound      int `json:"entity_pairs_found"`
	RelationshipsAnalyzed int `json:"relationships_analyzed"`
}

// Graph is the derived relationship network. It is computed on demand
// and never persisted.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
	Stats GraphStats  `json:"stats"`
}

// BuildGraph maps every qualifying entity pair across the article set.
// A pair qualifies when it has at least minArticles references over all
// periods. Pairs are processed largest first, sequentially; pairs whose
// every period fails analysis are left out of the edge set.
func (a *Analyzer) BuildGraph(ctx context.Context, m *Matcher, articles []article.Article, minArticles int) *Graph {
	if minArticles <= 0 {
		minArticles = 3
	}

	grouped := m.GroupByPairAndPeriod(articles)

	type candidate struct {
		key   string
		total int
	}
	var candidates []candidate
	for key, periods := range grouped {
		total := 0
		for _, refs := range periods {
			total += len(refs)
		}
		if total >= minArticles {
			candidates = append(candidates, candidate{key: key, total: total})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].total != candidates[j].total {
			return candidates[i].total > candidates[j].total
		}
		return candidates[i].key < candidates[j].key
	})

	graph := &Graph{
		Stats: GraphStats{
			TotalArticles:    len(articles),
			EntityPairsFound: len(grouped),
		},
	}

	nodeSeen := make(map[string]bool)
	addNode := func(id string) {
		if nodeSeen[id] {
			return
		}
		nodeSeen[id] = true
		e, ok := a.catalog.Lookup(id)
		if !ok {
			e = catalog.Entity{ID: id, NameEN: id}
		}
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:       e.ID,
			NameEN:   e.NameEN,
			Category: string(e.Category),
		})
	}

	for _, c := range candidates {
		if ctx.Err() != nil {
			break
		}
		entity1, entity2 := SplitPairKey(c.key)
		logger.Info("analyzing pair", "pair", c.key, "articles", c.total)

		timeline := a.BuildTimeline(ctx, entity1, entity2, grouped[c.key])
		if len(timeline.Points) == 0 {
			continue
		}
		latest := timeline.Points[len(timeline.Points)-1]

		addNode(entity1)
		addNode(entity2)
		graph.Edges = append(graph.Edges, GraphEdge{
			Source:       entity1,
			Target:       entity2,
			Relation:     latest.Relation,
			Strength:     latest.Strength,
			Description:  latest.Description,
			Trend:        timeline.Trend,
			Timeline:     timeline.Points,
			ArticleCount: c.total,
		})
		graph.Stats.RelationshipsAnalyzed++
	}

	return graph
}
