package openai

import (
	"sync"

	"rasid/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// AnalysisOpenAIClient talks to any OpenAI-compatible API (Groq, OpenAI,
// vLLM, ...). It manages separate clients for embeddings and chat so the
// two concerns can point at different providers.
//
// An AnalysisOpenAIClient should be created using NewAnalysisOpenAIClient.
type AnalysisOpenAIClient struct {
	embeddingModel string
	chatModel      string

	embeddingURL string
	embeddingKey string
	chatURL      string
	chatKey      string

	timeoutMin int

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient      *openai.Client
	EmbeddingClient *openai.Client
}

// NewAnalysisOpenAIClientParams defines the configuration parameters for
// creating a new AnalysisOpenAIClient.
//
// ChatModel specifies the model used for completions, EmbeddingModel the
// model used for embeddings. The URL/Key pairs configure the respective
// API endpoints. TimeoutMinutes bounds every single request; a request
// that exceeds it fails like any other API error.
type NewAnalysisOpenAIClientParams struct {
	EmbeddingModel string
	ChatModel      string

	EmbeddingURL string
	EmbeddingKey string
	ChatURL      string
	ChatKey      string

	TimeoutMinutes int
}

// NewAnalysisOpenAIClient creates and returns a new AnalysisOpenAIClient
// configured with the provided parameters.
//
// Example:
//
//	params := openai.NewAnalysisOpenAIClientParams{
//		EmbeddingModel: "text-embedding-3-small",
//		ChatModel:      "qwen/qwen3-32b",
//		ChatURL:        "https://api.groq.com/openai/v1",
//		ChatKey:        os.Getenv("GROQ_API_KEY"),
//	}
//	client := openai.NewAnalysisOpenAIClient(params)
func NewAnalysisOpenAIClient(
	params NewAnalysisOpenAIClientParams,
) *AnalysisOpenAIClient {
	chatClient := newOpenaiClient(params.ChatURL, params.ChatKey)
	embedClient := newOpenaiClient(params.EmbeddingURL, params.EmbeddingKey)

	timeoutMin := params.TimeoutMinutes
	if timeoutMin <= 0 {
		timeoutMin = 5
	}

	return &AnalysisOpenAIClient{
		embeddingModel: params.EmbeddingModel,
		chatModel:      params.ChatModel,

		chatURL:      params.ChatURL,
		chatKey:      params.ChatKey,
		embeddingURL: params.EmbeddingURL,
		embeddingKey: params.EmbeddingKey,

		timeoutMin: timeoutMin,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient:      chatClient,
		EmbeddingClient: embedClient,
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}

func (c *AnalysisOpenAIClient) modifyMetrics(delta ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics.InputTokens += delta.InputTokens
	c.metrics.OutputTokens += delta.OutputTokens
	c.metrics.TotalTokens += delta.TotalTokens
	c.metrics.DurationMs += delta.DurationMs
}

// GetMetrics returns the accumulated metrics for all requests since the
// last reset.
func (c *AnalysisOpenAIClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	return c.metrics
}

// ResetMetrics clears the accumulated request metrics.
func (c *AnalysisOpenAIClient) ResetMetrics() {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics = ai.ModelMetrics{}
}
