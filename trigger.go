package menuseed

import (
	"context"
	"sync"

	"github.com/agentstation/menuseed/pkg/catalog"
	"github.com/agentstation/menuseed/pkg/errors"
	"github.com/agentstation/menuseed/pkg/logging"
)

// RunFunc performs one seed run.
type RunFunc func(ctx context.Context) (*Result, error)

// Trigger starts seed runs in the background, one at a time, and reports
// their end with a single generic log line. Presses while a run is in
// flight are ignored.
type Trigger struct {
	run RunFunc

	mu      sync.Mutex
	done    chan struct{}
	result  *Result
	err     error
	running bool
}

// NewTrigger returns a Trigger that seeds ds with s.
func NewTrigger(s *Seeder, ds *catalog.Dataset) *Trigger {
	return NewTriggerFunc(func(ctx context.Context) (*Result, error) {
		return s.Run(ctx, ds)
	})
}

// NewTriggerFunc returns a Trigger around an arbitrary run function.
func NewTriggerFunc(run RunFunc) *Trigger {
	done := make(chan struct{})
	close(done)
	return &Trigger{run: run, done: done}
}

// Press starts a run unless one is already in flight. It returns a channel
// closed when the current run ends and whether this press started it.
func (t *Trigger) Press(ctx context.Context) (<-chan struct{}, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		logging.FromContext(ctx).Debug().Msg("Seed already running, ignoring trigger")
		return t.done, false
	}

	t.running = true
	t.done = make(chan struct{})
	done := t.done

	go func() {
		result, err := t.run(ctx)

		logger := logging.FromContext(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Error seeding database")
		} else {
			logger.Info().Msg("Database seeded successfully")
		}

		t.mu.Lock()
		t.result, t.err = result, err
		t.running = false
		t.mu.Unlock()
		close(done)
	}()

	return done, true
}

// Running reports whether a run is in flight.
func (t *Trigger) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Last returns the result and error of the most recent finished run.
func (t *Trigger) Last() (*Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, t.err
}

// Wait blocks until the current run ends or ctx is done, then returns the
// most recent result.
func (t *Trigger) Wait(ctx context.Context) (*Result, error) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	select {
	case <-done:
		return t.Last()
	case <-ctx.Done():
		return nil, errors.WrapCanceled(ctx.Err())
	}
}
