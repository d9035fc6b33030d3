// Command backfill classifies the urgency of feedback records that have
// none yet. It shares the server's rate limit settings for the LLM backend
// and is intended to be run from an external scheduler.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/feedback-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/feedback-backend/internal/adapter/postgres/audit"
	feedbackrepo "github.com/heartmarshall/feedback-backend/internal/adapter/postgres/feedback"
	"github.com/heartmarshall/feedback-backend/internal/annotation"
	"github.com/heartmarshall/feedback-backend/internal/app"
	"github.com/heartmarshall/feedback-backend/internal/app/backfill"
	"github.com/heartmarshall/feedback-backend/internal/config"
	"github.com/heartmarshall/feedback-backend/internal/service/enrichment"
)

func main() {
	limit := flag.Int("limit", 500, "maximum number of records to classify")
	concurrency := flag.Int("concurrency", 4, "parallel classification calls")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	gen, err := app.NewGenerator(cfg.LLM)
	if err != nil {
		logger.Error("llm backend", slog.String("error", err.Error()))
		os.Exit(1)
	}

	feedbacks := feedbackrepo.New(pool)
	svc := enrichment.NewService(
		logger,
		annotation.NewClient(logger, gen, cfg.LLM.MaxTokens),
		feedbacks,
		auditrepo.New(pool),
		postgres.NewTxManager(pool),
	)

	res, err := backfill.Run(ctx, logger, feedbacks, svc, backfill.Options{
		Limit:       *limit,
		Concurrency: *concurrency,
	})
	if err != nil {
		logger.Error("backfill failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for urgency, n := range res.ByUrgency {
		logger.Info("urgency assigned", slog.String("urgency", urgency.String()), slog.Int64("count", n))
	}
}
