// Package relations maps co-mentioned political entities to
// relationship verdicts and timelines.
package relations

import (
	"strings"
	"unicode"

	"rasid/pkg/article"
	"rasid/pkg/catalog"
)

// Matcher finds catalog entities mentioned in free text.
type Matcher struct {
	catalog *catalog.Catalog
}

// NewMatcher creates a Matcher over the given catalog.
func NewMatcher(c *catalog.Catalog) *Matcher {
	return &Matcher{catalog: c}
}

func isLatin(term string) bool {
	for _, r := range term {
		if unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

func termInText(term, text, lowerText string) bool {
	if term == "" {
		return false
	}
	if isLatin(term) {
		return strings.Contains(lowerText, strings.ToLower(term))
	}
	return strings.Contains(text, term)
}

// active reports whether the entity may be credited with a mention in
// the given period. Entities are suppressed before their window starts
// but stay detectable after the window ends, so historical references
// keep resolving. An empty or unknown period disables suppression.
func active(e catalog.Entity, period string) bool {
	if period == "" || period == article.PeriodUnknown {
		return true
	}
	if e.Window == nil || e.Window.Start == "" {
		return true
	}
	return period >= e.Window.Start
}

// FindEntities returns the ids of all entities mentioned in text, in
// catalog order. The entity id itself is always tested, then each
// alias; the first hit moves on to the next entity. Arabic terms match
// by exact substring, Latin terms case-insensitively.
func (m *Matcher) FindEntities(text, period string) []string {
	if text == "" {
		return nil
	}
	lowerText := strings.ToLower(text)

	var found []string
	for _, e := range m.catalog.All() {
		if !active(e, period) {
			continue
		}
		if termInText(e.ID, text, lowerText) {
			found = append(found, e.ID)
			continue
		}
		for _, alias := range e.Aliases {
			if termInText(alias, text, lowerText) {
				found = append(found, e.ID)
				break
			}
		}
	}
	return found
}
