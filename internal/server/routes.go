package server

import (
	"rasid/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Article routes
	apiRoutes.GET("/articles", routes.GetArticlesHandler)
	apiRoutes.POST("/index", routes.ReindexHandler)

	// Analysis routes
	apiRoutes.POST("/analyze", routes.AnalyzeSentimentHandler)
	apiRoutes.GET("/relationships", routes.GetRelationshipsHandler)
	apiRoutes.GET("/relationships/timeline", routes.GetRelationshipTimelineHandler)
}
