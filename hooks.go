package menuseed

import (
	"sync"
)

// Hook function types for seed events
type (
	// CreatedHook is called after a document is created
	CreatedHook func(o Outcome)

	// SkippedHook is called when a menu item or link is skipped
	SkippedHook func(o Outcome)

	// ResetHook is called when one reset target finishes, successfully or not
	ResetHook func(r ResetReport)
)

// hooks manages event callbacks for a Seeder
type hooks struct {
	mu        sync.RWMutex
	onCreated []CreatedHook
	onSkipped []SkippedHook
	onReset   []ResetHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnCreated registers a callback for created documents
func (h *hooks) OnCreated(fn CreatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCreated = append(h.onCreated, fn)
}

// OnSkipped registers a callback for skips
func (h *hooks) OnSkipped(fn SkippedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSkipped = append(h.onSkipped, fn)
}

// OnReset registers a callback for finished reset targets
func (h *hooks) OnReset(fn ResetHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReset = append(h.onReset, fn)
}

// trigger dispatches an outcome to the matching hooks
func (h *hooks) trigger(o Outcome) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch o.Kind {
	case Created:
		for _, fn := range h.onCreated {
			fn(o)
		}
	case Skipped:
		for _, fn := range h.onSkipped {
			fn(o)
		}
	}
}

// triggerReset dispatches a reset report
func (h *hooks) triggerReset(r ResetReport) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onReset {
		fn(r)
	}
}
