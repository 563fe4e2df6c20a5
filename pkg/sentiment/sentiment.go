// Package sentiment answers "what does the center think about X"
// questions over the indexed articles.
package sentiment

import (
	"context"
	"fmt"
	"strings"

	"rasid/pkg/ai"
	"rasid/pkg/logger"
	"rasid/pkg/retrieve"
)

// baseQuery anchors retrieval on opinionated passages.
const baseQuery = "sentiment opinion"

const sentimentPrompt = `
# Task Context
You are analyzing the Syrian Dialogue Center's stance toward the targets
listed below, based only on the article excerpts provided.

# Targets
%s

# Detailed Task Description & Rules
- For each target: overall sentiment (positive/negative/neutral), a score
  from -1 to 1, and EXACT quotes copied word for word from the excerpts.
- Attach the source article title and date to every quote.
- Consider related terms for each target (e.g. assad/regime, usa/west).
- Report the center's own editorial view, not the view of actors quoted in
  the articles.

# Excerpts
%s

# Output Formatting
Respond with ONLY a JSON object:
{
  "targets": {
    "target_name": {
      "sentiment": "positive|negative|neutral",
      "score": 0.0,
      "evidence": [
        {"quote": "exact quote", "source": "article title", "date": "publication date"}
      ],
      "reasoning": "brief explanation"
    }
  }
}
`

// Analyzer runs retrieval-augmented sentiment analysis.
type Analyzer struct {
	aiClient  ai.AnalysisAIClient
	retriever *retrieve.Retriever
	model     string
	chunks    int
}

// Params configures a sentiment Analyzer.
type Params struct {
	AIClient  ai.AnalysisAIClient
	Retriever *retrieve.Retriever
	Model     string
	Chunks    int
}

// New creates an Analyzer. Chunks defaults to the retriever's k.
func New(params Params) *Analyzer {
	if params.Chunks <= 0 {
		params.Chunks = retrieve.DefaultK
	}
	return &Analyzer{
		aiClient:  params.AIClient,
		retriever: params.Retriever,
		model:     params.Model,
		chunks:    params.Chunks,
	}
}

// Analyze retrieves chunks about the targets and asks the model for a
// per-target sentiment verdict. The return value is the model's JSON
// text after reasoning and fence stripping; it is passed through rather
// than decoded because the per-target keys are caller data. Empty
// string means no chunks matched.
func (a *Analyzer) Analyze(ctx context.Context, targets []string) (string, error) {
	chunks, err := a.retriever.Retrieve(ctx, baseQuery, targets, a.chunks)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		logger.Info("no chunks matched sentiment targets", "targets", targets)
		return "", nil
	}

	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = fmt.Sprintf("[Source: %s | Date: %s]\n%s", chunk.Title, chunk.Date, chunk.Text)
	}
	prompt := fmt.Sprintf(sentimentPrompt, strings.Join(targets, ", "), strings.Join(parts, "\n\n---\n\n"))

	opts := []ai.GenerateOption{
		ai.WithTemperature(0),
		ai.WithMaxTokens(5000),
	}
	if a.model != "" {
		opts = append(opts, ai.WithModel(a.model))
	}

	response, err := a.aiClient.GenerateCompletion(ctx, prompt, opts...)
	if err != nil {
		return "", err
	}
	return ai.CleanResponse(response), nil
}
