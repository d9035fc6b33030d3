package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/feedback-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/feedback-backend/internal/adapter/postgres/audit"
	feedbackrepo "github.com/heartmarshall/feedback-backend/internal/adapter/postgres/feedback"
	userrepo "github.com/heartmarshall/feedback-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/feedback-backend/internal/annotation"
	"github.com/heartmarshall/feedback-backend/internal/auth"
	"github.com/heartmarshall/feedback-backend/internal/config"
	"github.com/heartmarshall/feedback-backend/internal/service/analytics"
	authsvc "github.com/heartmarshall/feedback-backend/internal/service/auth"
	"github.com/heartmarshall/feedback-backend/internal/service/enrichment"
	"github.com/heartmarshall/feedback-backend/internal/service/feedback"
	"github.com/heartmarshall/feedback-backend/internal/service/trend"
	"github.com/heartmarshall/feedback-backend/internal/transport/middleware"
	"github.com/heartmarshall/feedback-backend/internal/transport/rest"
)

const rateLimitCleanupInterval = time.Minute

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL, wires services and serves HTTP until ctx is cancelled, then
// shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("llm_model", cfg.LLM.Model),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	gen, err := NewGenerator(cfg.LLM)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit, rateLimitCleanupInterval)
	defer limiter.Stop()

	handler := newHandler(cfg, logger, pool, annotation.NewClient(logger, gen, cfg.LLM.MaxTokens), limiter)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newHandler wires repositories, services and transport into the root handler.
func newHandler(
	cfg *config.Config,
	logger *slog.Logger,
	pool *pgxpool.Pool,
	annotator *annotation.Client,
	limiter *middleware.RateLimiter,
) http.Handler {
	txm := postgres.NewTxManager(pool)
	feedbacks := feedbackrepo.New(pool)
	users := userrepo.New(pool)
	audits := auditrepo.New(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, audits, txm, jwtManager, cfg.Auth)
	enrichmentService := enrichment.NewService(logger, annotator, feedbacks, audits, txm)
	feedbackService := feedback.NewService(logger, feedbacks, audits, txm)
	trendService := trend.NewService(logger, feedbacks, annotator)
	analyticsService := analytics.NewService(logger, feedbacks, cfg.Analytics)

	router := rest.NewRouter(rest.Handlers{
		Health:     rest.NewHealthHandler(pool, Version),
		Auth:       rest.NewAuthHandler(authService, logger),
		Feedback:   rest.NewFeedbackHandler(feedbackService, enrichmentService, logger),
		Enrichment: rest.NewEnrichmentHandler(enrichmentService, logger),
		Trend:      rest.NewTrendHandler(trendService, logger),
		Metrics:    rest.NewMetricsHandler(analyticsService, logger),
	}, middleware.RequireUser)

	var rateLimit middleware.Middleware
	if cfg.RateLimit.Enabled {
		rateLimit = limiter.Limit()
	}

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		rateLimit,
		middleware.Auth(authService),
		middleware.Logger(logger),
	)(router)
}
