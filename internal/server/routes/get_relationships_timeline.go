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

// GetRelationshipTimelineHandler analyzes how the relationship between
// two entities evolved period by period.
func GetRelationshipTimelineHandler(c echo.Context) error {
	type timelineQuery struct {
		Entity1 string `query:"entity1" validate:"required"`
		Entity2 string `query:"entity2" validate:"required"`
	}

	type timelineResponse struct {
		Message  string              `json:"message,omitempty"`
		Timeline *relations.Timeline `json:"timeline,omitempty"`
	}

	params := new(timelineQuery)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, timelineResponse{
			Message: "Invalid request",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, timelineResponse{
			Message: "Both entity1 and entity2 are required",
		})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	articles, err := article.LoadFile(app.ArticlesPath)
	if err != nil {
		logger.Error("Failed to load articles", "path", app.ArticlesPath, "err", err)
		return c.JSON(http.StatusInternalServerError, timelineResponse{
			Message: "Failed to load articles",
		})
	}

	matcher := relations.NewMatcher(app.Catalog)
	grouped := matcher.GroupByPairAndPeriod(articles)

	pairKey := relations.PairKey(params.Entity1, params.Entity2)
	periods, ok := grouped[pairKey]
	if !ok {
		return c.JSON(http.StatusNotFound, timelineResponse{
			Message: "No articles discuss both entities",
		})
	}

	analyzer := relations.NewAnalyzer(app.AiClient, app.Catalog, relations.AnalyzerConfig{
		Model:                util.GetEnv("AI_CHAT_MODEL"),
		MinArticlesPerPeriod: int(util.GetEnvNumeric("MIN_ARTICLES_PER_PERIOD", 2)),
		StructuredOutput:     util.GetEnvBool("AI_STRUCTURED_OUTPUT", false),
	})

	timeline := analyzer.BuildTimeline(ctx, params.Entity1, params.Entity2, periods)

	return c.JSON(http.StatusOK, timelineResponse{Timeline: timeline})
}
