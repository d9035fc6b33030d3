// Package backfill classifies the urgency of stored feedback that has none,
// with bounded concurrency.
package backfill

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

type source interface {
	ListWithoutUrgency(ctx context.Context, limit int) ([]domain.Feedback, error)
}

type classifier interface {
	ClassifyUrgency(ctx context.Context, id uuid.UUID) (domain.Urgency, error)
}

// Options bound one backfill run.
type Options struct {
	Limit       int
	Concurrency int
}

// Result summarises one run.
type Result struct {
	Processed int64
	Failed    int64
	ByUrgency map[domain.Urgency]int64
}

// Run classifies up to opts.Limit records. A failed record is logged and
// counted; only context cancellation aborts the run.
func Run(ctx context.Context, log *slog.Logger, src source, cls classifier, opts Options) (Result, error) {
	if opts.Limit <= 0 {
		return Result{}, fmt.Errorf("limit must be positive (got %d)", opts.Limit)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	records, err := src.ListWithoutUrgency(ctx, opts.Limit)
	if err != nil {
		return Result{}, fmt.Errorf("list without urgency: %w", err)
	}
	log.InfoContext(ctx, "backfill started",
		slog.Int("records", len(records)),
		slog.Int("concurrency", opts.Concurrency),
	)

	var (
		processed, failed atomic.Int64
		counts            = make([]atomic.Int64, len(labels))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, rec := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			u, err := cls.ClassifyUrgency(gctx, rec.ID)
			if err != nil {
				// A per-call timeout is a record failure; only the caller's
				// context ends the run.
				if ctx.Err() != nil {
					return err
				}
				failed.Add(1)
				log.WarnContext(gctx, "classify urgency failed",
					slog.String("feedback_id", rec.ID.String()),
					slog.String("error", err.Error()),
				)
				return nil
			}
			processed.Add(1)
			counts[labelIndex(u)].Add(1)
			return nil
		})
	}

	waitErr := g.Wait()

	res := Result{
		Processed: processed.Load(),
		Failed:    failed.Load(),
		ByUrgency: make(map[domain.Urgency]int64, len(labels)),
	}
	for i, l := range labels {
		if n := counts[i].Load(); n > 0 {
			res.ByUrgency[l] = n
		}
	}

	log.InfoContext(ctx, "backfill finished",
		slog.Int64("processed", res.Processed),
		slog.Int64("failed", res.Failed),
	)

	if waitErr != nil {
		return res, fmt.Errorf("backfill aborted: %w", waitErr)
	}
	return res, nil
}

var labels = []domain.Urgency{domain.UrgencyUrgent, domain.UrgencyNormal, domain.UrgencyLow, domain.UrgencyUnknown}

func labelIndex(u domain.Urgency) int {
	for i, l := range labels {
		if l == u {
			return i
		}
	}
	return len(labels) - 1
}
