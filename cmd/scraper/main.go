package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rasid/internal/util"
	"rasid/pkg/article"
	"rasid/pkg/logger"
	"rasid/pkg/logger/console"
	"rasid/pkg/scraper"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	maxPages := int(util.GetEnvNumeric("SCRAPE_MAX_PAGES", 30))
	delay := time.Duration(util.GetEnvNumeric("SCRAPE_DELAY_SEC", 1)) * time.Second
	outPath := util.GetEnvString("ARTICLES_PATH", "data/sydialogue_ar_publications.json")

	s := scraper.New(scraper.Params{
		BaseURL: util.GetEnvString("SCRAPE_BASE_URL", ""),
		Delay:   delay,
	})

	articles, err := s.ScrapeAll(ctx, maxPages)
	if err != nil && len(articles) == 0 {
		logger.Fatal("Scrape failed", "err", err)
	}
	if err != nil {
		logger.Warn("Scrape interrupted, saving partial results", "err", err)
	}

	if err := article.SaveFile(outPath, articles); err != nil {
		logger.Fatal("Failed to save articles", "path", outPath, "err", err)
	}
	logger.Info("Saved articles", "count", len(articles), "path", outPath)
}
