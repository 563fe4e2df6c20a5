package ollama

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"rasid/pkg/ai"

	"github.com/ollama/ollama/api"
)

// GenerateCompletion sends a single-turn prompt to the chat model and
// returns the generated completion as plain text.
func (c *AnalysisOllamaClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	return c.chat(ctx, prompt, nil, opts...)
}

// GenerateCompletionWithFormat sends a prompt to the chat model with a
// JSON schema derived from out and unmarshals the response into out,
// repairing malformed output when possible.
func (c *AnalysisOllamaClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	schema, err := json.Marshal(ai.GenerateSchema(out))
	if err != nil {
		return err
	}

	response, err := c.chat(ctx, prompt, schema, opts...)
	if err != nil {
		return err
	}
	return ai.CleanAndParse(response, out)
}

func (c *AnalysisOllamaClient) chat(
	ctx context.Context,
	prompt string,
	format json.RawMessage,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.GenerateOptions{
		Model:       c.chatModel,
		Temperature: 0.3,
	}
	for _, o := range opts {
		o(&options)
	}

	msgs := make([]api.Message, 0, len(options.SystemPrompts)+1)
	for _, sp := range options.SystemPrompts {
		msgs = append(msgs, api.Message{Role: "system", Content: sp})
	}
	msgs = append(msgs, api.Message{Role: "user", Content: prompt})

	modelOptions := map[string]any{
		"temperature": options.Temperature,
	}
	if options.MaxTokens > 0 {
		modelOptions["num_predict"] = options.MaxTokens
	}

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: msgs,
		Options:  modelOptions,
		Stream:   &stream,
		Format:   format,
	}

	rCtx, cancel := context.WithTimeout(ctx, time.Minute*time.Duration(c.timeoutMin))
	defer cancel()

	if err := c.reqLock.Acquire(rCtx, 1); err != nil {
		return "", err
	}
	defer c.reqLock.Release(1)

	var builder strings.Builder
	start := time.Now()
	err := c.Client.Chat(rCtx, req, func(res api.ChatResponse) error {
		builder.WriteString(res.Message.Content)
		if res.Done {
			c.modifyMetrics(ai.ModelMetrics{
				InputTokens:  res.PromptEvalCount,
				OutputTokens: res.EvalCount,
				TotalTokens:  res.PromptEvalCount + res.EvalCount,
				DurationMs:   time.Since(start).Milliseconds(),
			})
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return builder.String(), nil
}
