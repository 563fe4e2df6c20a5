package routes

import (
	"net/http"

	"rasid/internal/server/middleware"
	"rasid/internal/util"
	"rasid/pkg/logger"
	"rasid/pkg/retrieve"
	"rasid/pkg/sentiment"
	pgxstore "rasid/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

// AnalyzeSentimentHandler runs retrieval-augmented sentiment analysis
// for the requested targets.
func AnalyzeSentimentHandler(c echo.Context) error {
	type analyzeRequest struct {
		Targets []string `json:"targets" validate:"required,min=1"`
	}

	type analyzeResponse struct {
		Message           string `json:"message,omitempty"`
		SentimentAnalysis string `json:"sentiment_analysis,omitempty"`
	}

	data := new(analyzeRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "No targets provided",
		})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	chunkStore := pgxstore.NewVectorStore(app.DBConn, app.AiClient)
	analyzer := sentiment.New(sentiment.Params{
		AIClient:  app.AiClient,
		Retriever: retrieve.New(chunkStore),
		Model:     util.GetEnv("AI_CHAT_MODEL"),
		Chunks:    int(util.GetEnvNumeric("SENTIMENT_CHUNKS", retrieve.DefaultK)),
	})

	result, err := analyzer.Analyze(ctx, data.Targets)
	if err != nil {
		logger.Error("Failed to analyze sentiment", "targets", data.Targets, "err", err)
		return c.JSON(http.StatusInternalServerError, analyzeResponse{
			Message: "Internal server error",
		})
	}
	if result == "" {
		return c.JSON(http.StatusOK, analyzeResponse{
			Message: "No indexed content matched the targets",
		})
	}

	// The model's cleaned output is returned as text, not re-decoded:
	// the per-target keys are caller data and the field type stays a
	// string whatever the model produced.
	return c.JSON(http.StatusOK, analyzeResponse{
		SentimentAnalysis: result,
	})
}
