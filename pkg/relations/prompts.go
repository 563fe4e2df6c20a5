package relations

import (
	"fmt"

	"rasid/pkg/article"
	"rasid/pkg/catalog"
)

// TransitionPeriod is the month of the change of government in Syria.
// Periods at or after it get a disambiguation note so that generic
// regime references resolve to the time-correct entity.
const TransitionPeriod = "2024-12"

const relationshipPrompt = `
# Task Context
You are analyzing Arabic political articles from the Syrian Dialogue Center.
Determine the relationship between two entities during a single time period,
using only the article excerpts provided below.

# Background Data
- **Entity 1:** %s (%s) - %s
- **Entity 2:** %s (%s) - %s
- **Period:** %s
%s
# Detailed Task Description & Rules
- Use ONLY the provided excerpts. Do not rely on outside knowledge of events.
- Do NOT infer a relationship from mere co-occurrence. Both entities must
  appear together in the SAME quoted span describing a direct interaction,
  statement, agreement, or confrontation. If no such span exists, the
  relationship_type must be "no_evidence".
- An accusation is not an established fact. If entity A accuses entity B,
  report it as an accuser-accused interaction between A and B; never treat
  the content of the accusation as evidence of anything else.
- Every evidence quote must be copied word for word from the excerpts, with
  the 1-based number of the article it came from.

# Self-Check Before Answering
Go through this checklist before emitting JSON:
1. Does every evidence quote contain BOTH entities? If not, remove it.
2. Is each claimed relationship backed by a direct interaction, not by the
   two entities merely appearing in the same article?
3. Have accusations been reported as interactions rather than facts?
4. If no evidence survived the checks, is relationship_type "no_evidence"?

# Articles
%s

# Output Formatting
Respond with a single valid JSON object and nothing else:
{
  "relationship_type": "alliance|cooperation|support|negotiation|tension|conflict|opposition|neutral|no_evidence",
  "strength": 0.0,
  "sentiment": "positive|negative|neutral",
  "description": "brief description of the relationship in this period",
  "evidence": [
    {"quote": "exact Arabic quote naming both entities", "article_index": 1}
  ],
  "has_direct_evidence": true
}
`

const transitionNote = `- **Note:** This period is at or after %s, when government in Syria
  changed hands. A generic reference to "النظام" or "the regime" in text from
  this period refers to the transitional authorities, not the former
  government, unless the text is explicitly historical.
`

// buildRelationshipPrompt renders the per-period analysis prompt.
func buildRelationshipPrompt(e1, e2 catalog.Entity, period, context string) string {
	note := "\n"
	if period != "" && period != article.PeriodUnknown && period >= TransitionPeriod {
		note = fmt.Sprintf(transitionNote, TransitionPeriod)
	}
	return fmt.Sprintf(relationshipPrompt,
		e1.ID, e1.NameEN, e1.Category,
		e2.ID, e2.NameEN, e2.Category,
		period,
		note,
		context,
	)
}
