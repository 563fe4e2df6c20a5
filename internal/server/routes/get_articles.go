package routes

import (
	"net/http"

	"rasid/internal/server/middleware"
	"rasid/pkg/article"
	"rasid/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GetArticlesHandler lists the scraped articles without their bodies.
// The success response is a bare JSON array.
func GetArticlesHandler(c echo.Context) error {
	type articleSummary struct {
		Title string `json:"title"`
		URL   string `json:"url"`
		Date  string `json:"date,omitempty"`
	}

	type errorResponse struct {
		Message string `json:"message"`
	}

	app := c.(*middleware.AppContext).App

	articles, err := article.LoadFile(app.ArticlesPath)
	if err != nil {
		logger.Error("Failed to load articles", "path", app.ArticlesPath, "err", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Message: "Failed to load articles",
		})
	}

	summaries := make([]articleSummary, 0, len(articles))
	for _, art := range articles {
		summaries = append(summaries, articleSummary{
			Title: art.Title,
			URL:   art.URL,
			Date:  art.Date,
		})
	}

	return c.JSON(http.StatusOK, summaries)
}
