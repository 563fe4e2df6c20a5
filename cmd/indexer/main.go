package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rasid/internal/server/middleware"
	"rasid/internal/util"
	"rasid/pkg/article"
	"rasid/pkg/logger"
	"rasid/pkg/logger/console"
	pgxstore "rasid/pkg/store/pgx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
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

	databaseURL := util.GetEnv("DATABASE_URL")
	if err := pgxstore.Migrate(databaseURL); err != nil {
		logger.Fatal("Failed to run migrations", "err", err)
	}

	// Init pgx client
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		logger.Fatal("Invalid database URL", "err", err)
	}
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}
	pgConn, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}
	defer pgConn.Close()

	aiClient := middleware.NewAIClientFromEnv()

	articlesPath := util.GetEnvString("ARTICLES_PATH", "data/sydialogue_ar_publications.json")
	articles, err := article.LoadFile(articlesPath)
	if err != nil {
		logger.Fatal("Failed to load articles", "path", articlesPath, "err", err)
	}
	logger.Info("Loaded articles", "count", len(articles), "path", articlesPath)

	store := pgxstore.NewVectorStore(pgConn, aiClient)
	chunks, err := store.Reindex(ctx, articles)
	if err != nil {
		logger.Fatal("Reindex failed", "err", err)
	}

	metrics := aiClient.GetMetrics()
	logger.Info("Reindex complete",
		"articles", len(articles),
		"chunks", chunks,
		"embed_tokens", metrics.TotalTokens,
		"duration_ms", metrics.DurationMs,
	)
}
