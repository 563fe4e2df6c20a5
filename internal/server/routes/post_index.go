package routes

import (
	"net/http"

	"rasid/internal/server/middleware"
	"rasid/pkg/article"
	"rasid/pkg/logger"
	pgxstore "rasid/pkg/store/pgx"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ReindexHandler rebuilds the vector index from the article file. The
// old index is replaced atomically; a failed rebuild leaves it intact.
// The response count is the number of chunks written.
func ReindexHandler(c echo.Context) error {
	type reindexResponse struct {
		Status   string `json:"status"`
		Count    int    `json:"count"`
		RunID    string `json:"run_id,omitempty"`
		Message  string `json:"message,omitempty"`
		Articles int    `json:"articles,omitempty"`
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	runID, err := gonanoid.New()
	if err != nil {
		logger.Error("Failed to generate run id", "err", err)
		return c.JSON(http.StatusInternalServerError, reindexResponse{
			Status:  "error",
			Message: "Failed to generate run id",
		})
	}

	articles, err := article.LoadFile(app.ArticlesPath)
	if err != nil {
		logger.Error("Failed to load articles", "path", app.ArticlesPath, "err", err)
		return c.JSON(http.StatusInternalServerError, reindexResponse{
			Status:  "error",
			Message: "Failed to load articles",
		})
	}

	chunkStore := pgxstore.NewVectorStore(app.DBConn, app.AiClient)
	count, err := chunkStore.Reindex(ctx, articles)
	if err != nil {
		logger.Error("Failed to reindex articles", "run", runID, "err", err)
		return c.JSON(http.StatusInternalServerError, reindexResponse{
			Status:  "error",
			RunID:   runID,
			Message: "Failed to reindex articles",
		})
	}

	logger.Info("Reindexed articles", "run", runID, "articles", len(articles), "chunks", count)
	return c.JSON(http.StatusOK, reindexResponse{
		Status:   "ok",
		Count:    count,
		RunID:    runID,
		Articles: len(articles),
	})
}
