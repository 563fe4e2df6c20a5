package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"rasid/internal/server/middleware"
	"rasid/internal/util"
	"rasid/pkg/article"
	"rasid/pkg/catalog"
	"rasid/pkg/logger"
	"rasid/pkg/logger/console"
	"rasid/pkg/relations"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	articlesPath := util.GetEnvString("ARTICLES_PATH", "data/sydialogue_ar_publications.json")
	outPath := util.GetEnvString("RELMAP_PATH", "data/relationship_map.json")
	minArticles := int(util.GetEnvNumeric("RELMAP_MIN_ARTICLES", 5))

	articles, err := article.LoadFile(articlesPath)
	if err != nil {
		logger.Fatal("Failed to load articles", "path", articlesPath, "err", err)
	}
	logger.Info("Loaded articles", "count", len(articles), "path", articlesPath)

	aiClient := middleware.NewAIClientFromEnv()

	entityCatalog := catalog.Default()
	analyzer := relations.NewAnalyzer(aiClient, entityCatalog, relations.AnalyzerConfig{
		Model:                util.GetEnv("AI_CHAT_MODEL"),
		MinArticlesPerPeriod: int(util.GetEnvNumeric("MIN_ARTICLES_PER_PERIOD", 2)),
		StructuredOutput:     util.GetEnvBool("AI_STRUCTURED_OUTPUT", false),
	})
	matcher := relations.NewMatcher(entityCatalog)

	graph := analyzer.BuildGraph(ctx, matcher, articles, minArticles)

	logger.Info("Relationship map built",
		"nodes", len(graph.Nodes),
		"edges", len(graph.Edges),
		"pairs_found", graph.Stats.EntityPairsFound,
	)

	data, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		logger.Fatal("Failed to encode graph", "err", err)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatal("Failed to create output directory", "dir", dir, "err", err)
		}
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		logger.Fatal("Failed to write graph", "path", outPath, "err", err)
	}

	metrics := aiClient.GetMetrics()
	logger.Info("Saved relationship map",
		"path", outPath,
		"chat_tokens", metrics.TotalTokens,
		"duration_ms", metrics.DurationMs,
	)
}
