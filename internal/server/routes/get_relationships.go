package routes

import (
	"net/http"

	"rasid/internal/server/middleware"
	"rasid/internal/util"
	"rasid/pkg/article"
	"rasid/pkg/logger"
	"rasid/pkg/relations"

	"github.com/labstack/echo/v4"
)

// GetRelationshipsHandler builds the full relationship graph across all
// scraped articles. This endpoint issues one LLM call per analyzed
// period, so responses can take minutes on a cold corpus.
func GetRelationshipsHandler(c echo.Context) error {
	type relationshipsQuery struct {
		MinArticles int `query:"min_articles"`
	}

	type relationshipsResponse struct {
		Message string           `json:"message,omitempty"`
		Graph   *relations.Graph `json:"graph,omitempty"`
	}

	params := new(relationshipsQuery)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, relationshipsResponse{
			Message: "Invalid request",
		})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	articles, err := article.LoadFile(app.ArticlesPath)
	if err != nil {
		logger.Error("Failed to load articles", "path", app.ArticlesPath, "err", err)
		return c.JSON(http.StatusInternalServerError, relationshipsResponse{
			Message: "Failed to load articles",
		})
	}

	analyzer := relations.NewAnalyzer(app.AiClient, app.Catalog, relations.AnalyzerConfig{
		Model:                util.GetEnv("AI_CHAT_MODEL"),
		MinArticlesPerPeriod: int(util.GetEnvNumeric("MIN_ARTICLES_PER_PERIOD", 2)),
		StructuredOutput:     util.GetEnvBool("AI_STRUCTURED_OUTPUT", false),
	})
	matcher := relations.NewMatcher(app.Catalog)

	graph := analyzer.BuildGraph(ctx, matcher, articles, params.MinArticles)

	return c.JSON(http.StatusOK, relationshipsResponse{Graph: graph})
}
