package menuseed

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/agentstation/menuseed/pkg/errors"
	"github.com/agentstation/menuseed/pkg/logging"
)

// TargetKind distinguishes collections from the bucket in reset reports.
type TargetKind string

// Reset target kinds.
const (
	TargetCollection TargetKind = "collection"
	TargetBucket     TargetKind = "bucket"
)

// ResetReport is the outcome of clearing one collection or the bucket.
type ResetReport struct {
	Target   string
	Kind     TargetKind
	Deleted  int
	Duration time.Duration
	Err      error
}

// OK reports whether the target was fully cleared.
func (r ResetReport) OK() bool {
	return r.Err == nil
}

// Reset clears the four collections and the bucket. A failure on one target
// is logged and recorded in its report, and the remaining targets are still
// cleared. The returned error is non-nil only for cancellation, or when
// strict reset is enabled and any target failed.
func (s *Seeder) Reset(ctx context.Context) ([]ResetReport, error) {
	ctx = logging.WithLogger(ctx, s.logger(ctx))
	ctx = logging.WithPhase(ctx, "reset")

	targets := []struct {
		id   string
		kind TargetKind
	}{
		{s.collections.Categories, TargetCollection},
		{s.collections.Customizations, TargetCollection},
		{s.collections.Menu, TargetCollection},
		{s.collections.MenuCustomizations, TargetCollection},
		{s.backend.BucketID(), TargetBucket},
	}

	reports := make([]ResetReport, 0, len(targets))
	var failed []error
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return reports, errors.WrapCanceled(err)
		}

		var report ResetReport
		if t.kind == TargetBucket {
			report = s.clearBucket(ctx)
		} else {
			report = s.clearCollection(ctx, t.id)
		}
		reports = append(reports, report)
		s.hooks.triggerReset(report)

		if report.Err != nil {
			if errors.IsCanceled(report.Err) {
				return reports, report.Err
			}
			failed = append(failed, errors.NewResetError(report.Target, report.Deleted, report.Err))
		}
	}

	if len(failed) > 0 {
		joined := stderrors.Join(failed...)
		if s.config.strictReset {
			return reports, fmt.Errorf("reset: %w", joined)
		}
		logging.FromContext(ctx).Warn().
			Int("failed_targets", len(failed)).
			Msg("Reset incomplete, continuing; seeded collections may contain duplicates")
	}
	return reports, nil
}

// clearCollection deletes documents page by page until a short page.
func (s *Seeder) clearCollection(ctx context.Context, collectionID string) ResetReport {
	ctx = logging.WithCollection(ctx, collectionID)

	return s.clear(ctx, collectionID, TargetCollection, func(ctx context.Context) ([]func(context.Context) error, error) {
		docs, err := s.backend.ListDocuments(ctx, collectionID, s.config.pageSize)
		if err != nil {
			return nil, err
		}
		deletes := make([]func(context.Context) error, 0, len(docs))
		for _, doc := range docs {
			id := doc.ID
			deletes = append(deletes, func(ctx context.Context) error {
				return s.backend.DeleteDocument(ctx, collectionID, id)
			})
		}
		return deletes, nil
	})
}

// clearBucket deletes files page by page until a short page.
func (s *Seeder) clearBucket(ctx context.Context) ResetReport {
	bucketID := s.backend.BucketID()
	ctx = logging.WithCollection(ctx, bucketID)

	return s.clear(ctx, bucketID, TargetBucket, func(ctx context.Context) ([]func(context.Context) error, error) {
		files, err := s.backend.ListFiles(ctx, s.config.pageSize)
		if err != nil {
			return nil, err
		}
		deletes := make([]func(context.Context) error, 0, len(files))
		for _, f := range files {
			id := f.ID
			deletes = append(deletes, func(ctx context.Context) error {
				return s.backend.DeleteFile(ctx, id)
			})
		}
		return deletes, nil
	})
}

// listPage returns one delete call per entry of the next page.
type listPage func(ctx context.Context) ([]func(context.Context) error, error)

func (s *Seeder) clear(ctx context.Context, target string, kind TargetKind, list listPage) ResetReport {
	logger := logging.FromContext(ctx)
	start := time.Now()
	report := ResetReport{Target: target, Kind: kind}

	var deleted atomic.Int64
	for {
		deletes, err := list(ctx)
		if err != nil {
			report.Err = err
			break
		}
		if len(deletes) == 0 {
			break
		}

		// Deletes within a page are unordered and run together.
		p := pool.New().WithMaxGoroutines(s.config.concurrency).WithErrors()
		for _, del := range deletes {
			del := del
			p.Go(func() error {
				err := del(ctx)
				if err != nil && !errors.IsNotFound(err) {
					return err
				}
				deleted.Add(1)
				return nil
			})
		}
		if err := p.Wait(); err != nil {
			report.Err = err
			break
		}
		if len(deletes) < s.config.pageSize {
			break
		}
	}

	report.Deleted = int(deleted.Load())
	report.Duration = time.Since(start)

	if report.Err != nil {
		if ctx.Err() != nil {
			report.Err = errors.WrapCanceled(ctx.Err())
			return report
		}
		logger.Warn().
			Err(report.Err).
			Str("kind", string(kind)).
			Int("deleted", report.Deleted).
			Msg("Failed to clear")
		return report
	}

	logger.Info().
		Str("kind", string(kind)).
		Int("deleted", report.Deleted).
		Msg("Cleared")
	return report
}
