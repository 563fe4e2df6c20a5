package middleware

import (
	"rasid/internal/util"
	"rasid/pkg/ai"
	oai "rasid/pkg/ai/ollama"
	gai "rasid/pkg/ai/openai"
	"rasid/pkg/catalog"
	"rasid/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// App carries the shared dependencies every handler reads.
type App struct {
	DBConn       *pgxpool.Pool
	AiClient     ai.AnalysisAIClient
	Catalog      *catalog.Catalog
	ArticlesPath string
}

// AppContext wraps the echo context with the application dependencies.
type AppContext struct {
	echo.Context
	App *App
}

// NewAIClientFromEnv builds the analysis AI client selected by the
// AI_ADAPTER environment variable. The default adapter speaks the
// OpenAI-compatible API, which also covers Groq.
func NewAIClientFromEnv() ai.AnalysisAIClient {
	adapter := util.GetEnv("AI_ADAPTER")

	switch adapter {
	case "ollama":
		client, err := oai.NewAnalysisOllamaClient(oai.NewAnalysisOllamaClientParams{
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),
			ChatModel:      util.GetEnv("AI_CHAT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			TimeoutMinutes:        int(util.GetEnvNumeric("AI_TIMEOUT_MIN", 5)),
			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	default:
		return gai.NewAnalysisOpenAIClient(gai.NewAnalysisOpenAIClientParams{
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),
			ChatModel:      util.GetEnv("AI_CHAT_MODEL"),

			EmbeddingURL: util.GetEnv("AI_EMBED_URL"),
			EmbeddingKey: util.GetEnv("AI_EMBED_KEY"),
			ChatURL:      util.GetEnv("AI_CHAT_URL"),
			ChatKey:      util.GetEnv("AI_CHAT_KEY"),

			TimeoutMinutes: int(util.GetEnvNumeric("AI_TIMEOUT_MIN", 5)),
		})
	}
}

// AppContextMiddleware attaches the shared dependencies to every request.
func AppContextMiddleware(db *pgxpool.Pool, aiClient ai.AnalysisAIClient, entityCatalog *catalog.Catalog, articlesPath string) echo.MiddlewareFunc {
	app := &App{
		DBConn:       db,
		AiClient:     aiClient,
		Catalog:      entityCatalog,
		ArticlesPath: articlesPath,
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
