package relations

import (
	"strings"

	"rasid/internal/util"
	"rasid/pkg/article"
)

// articlePrefixRunes bounds the stored article text per reference. Raw
// bodies repeat across every pair an article feeds, so each copy keeps
// only a prefix.
const articlePrefixRunes = 2000

// ArticleRef is one article's contribution to an entity pair's period
// bucket. Content holds a bounded prefix of the article body.
type ArticleRef struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Period  string `json:"period"`
	URL     string `json:"url"`
}

// PairKey canonicalizes an unordered entity pair. The two ids are
// sorted before joining, so the key is independent of discovery order.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// SplitPairKey returns the two entity ids of a canonical pair key.
func SplitPairKey(key string) (string, string) {
	parts := strings.SplitN(key, "|", 2)
	if len(parts) != 2 {
		return key, ""
	}
	return parts[0], parts[1]
}

// GroupByPairAndPeriod buckets articles by co-mentioned entity pair and
// calendar month. An article mentioning k entities contributes one
// reference copy to each of its C(k,2) pairs.
func (m *Matcher) GroupByPairAndPeriod(articles []article.Article) map[string]map[string][]ArticleRef {
	grouped := make(map[string]map[string][]ArticleRef)

	for _, art := range articles {
		period := art.Period()
		text := art.Title + "\n" + art.Content

		entities := m.FindEntities(text, period)
		if len(entities) < 2 {
			continue
		}

		ref := ArticleRef{
			Title:   art.Title,
			Content: util.TruncateRunes(art.Content, articlePrefixRunes),
			Date:    art.Date,
			Period:  period,
			URL:     art.URL,
		}

		for i := 0; i < len(entities); i++ {
			for j := i + 1; j < len(entities); j++ {
				key := PairKey(entities[i], entities[j])
				if grouped[key] == nil {
					grouped[key] = make(map[string][]ArticleRef)
				}
				grouped[key][period] = append(grouped[key][period], ref)
			}
		}
	}

	return grouped
}
