package scraper

import (
	"strings"

	"rasid/pkg/article"

	"github.com/PuerkitoBio/goquery"
)

// ExtractArticle pulls the structured record out of a parsed article
// page. Extraction is best effort: missing parts stay empty rather than
// failing the whole page.
func ExtractArticle(doc *goquery.Document, pageURL string) article.Article {
	art := article.Article{
		URL:      pageURL,
		Language: "ar",
	}

	art.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	art.Content = extractContent(doc)
	art.Date = extractDate(doc)
	art.Category = strings.TrimSpace(doc.Find(`a[href*="/category/publicationsar/"]`).First().Text())
	art.Author = extractAuthor(doc)
	art.References = extractReferences(doc)

	return art
}

// extractContent joins the article's substantive paragraphs. Short
// paragraphs are navigation chrome, share buttons and the like.
func extractContent(doc *goquery.Document) string {
	var parts []string
	doc.Find("article p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len([]rune(text)) > minParagraphLen {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

func extractDate(doc *goquery.Document) string {
	for _, selector := range []string{"time", ".date", ".entry-date"} {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if dt, ok := sel.Attr("datetime"); ok && dt != "" {
			return dt
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractAuthor reads the author name from the meta tag and scans the
// last paragraphs of the article for a researcher bio line. A bio that
// opens with "position، name" style also yields the position.
func extractAuthor(doc *goquery.Document) *article.Author {
	author := article.Author{}

	if name, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok {
		author.Name = strings.TrimSpace(name)
	}

	paragraphs := doc.Find("article p")
	start := paragraphs.Length() - 5
	if start < 0 {
		start = 0
	}
	paragraphs.Slice(start, paragraphs.Length()).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		for _, indicator := range bioIndicators {
			if strings.Contains(text, indicator) {
				author.Bio = text
				if idx := strings.Index(text, "،"); idx >= 0 {
					author.Position = strings.TrimSpace(text[:idx])
				}
				return false
			}
		}
		return true
	})

	if author.Name == "" && author.Bio == "" {
		return nil
	}
	return &author
}

// extractReferences collects footnotes. Primary path is WordPress
// footnote anchors (_ftn ids); when the page carries none, inline
// [[n]] markers in the article text are parsed instead.
func extractReferences(doc *goquery.Document) []article.Reference {
	var refs []article.Reference

	doc.Find("article a[id]").Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("id")
		if !strings.HasPrefix(id, "_ftn") {
			return
		}
		parent := sel.Closest("p, div, li")
		if parent.Length() == 0 {
			return
		}
		ref := article.Reference{
			ID:   id,
			Text: strings.TrimSpace(parent.Text()),
		}
		parent.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
			if href, ok := link.Attr("href"); ok && href != "" {
				ref.Links = append(ref.Links, href)
			}
		})
		refs = append(refs, ref)
	})

	if len(refs) > 0 {
		return refs
	}

	text := doc.Find("article").Text()
	for _, match := range footnoteFallback.FindAllStringSubmatch(text, -1) {
		body := strings.TrimSpace(match[2])
		if len([]rune(body)) > 20 {
			refs = append(refs, article.Reference{
				ID:   "ref_" + match[1],
				Text: body,
			})
		}
	}
	return refs
}
