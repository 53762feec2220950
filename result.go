package menuseed

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/menuseed/pkg/catalog"
)

// Entity names the kind of document an outcome refers to.
type Entity string

// Entities written by a seed run.
const (
	EntityCategory      Entity = "category"
	EntityCustomization Entity = "customization"
	EntityMenuItem      Entity = "menu item"
	EntityLink          Entity = "link"
)

// Kind says whether an item was written or passed over.
type Kind int

// Outcome kinds. Fatal failures are returned as errors, not outcomes.
const (
	Created Kind = iota + 1
	Skipped
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// SkipReason explains a skipped menu item or link.
type SkipReason string

// Skip reasons.
const (
	// SkipUnknownCategory means the menu item's category name did not resolve.
	SkipUnknownCategory SkipReason = "unknown_category"
	// SkipImageUpload means re-hosting the menu item's image failed.
	SkipImageUpload SkipReason = "image_upload_failed"
	// SkipUnknownCustomization means one customization name did not resolve;
	// only that link is skipped.
	SkipUnknownCustomization SkipReason = "unknown_customization"
)

// Outcome records what happened to one item of the dataset.
type Outcome struct {
	Kind   Kind
	Entity Entity
	Name   string // entity name; for links "menu item/customization"
	ID     string // identifier of the created document
	Reason SkipReason
	Err    error // cause of an image upload skip
}

// String renders the outcome for logs and reports.
func (o Outcome) String() string {
	if o.Kind == Skipped {
		return fmt.Sprintf("skipped %s %q: %s", o.Entity, o.Name, o.Reason)
	}
	return fmt.Sprintf("created %s %q (%s)", o.Entity, o.Name, o.ID)
}

// Lookup maps entity names to the identifiers generated in this run.
type Lookup map[string]string

// Resolve returns the identifier recorded for name.
func (l Lookup) Resolve(name string) (string, bool) {
	id, ok := l[name]
	return id, ok
}

// Names returns the recorded names sorted.
func (l Lookup) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MenuRecord describes a created menu document and its links.
type MenuRecord struct {
	Name       string
	ID         string
	CategoryID string
	ImageURL   string
	Links      []LinkRecord
}

// LinkRecord describes a created link document.
type LinkRecord struct {
	ID                string
	CustomizationName string
	CustomizationID   string
}

// Result is the complete result of a seed run.
type Result struct {
	StartedAt  utc.Time
	FinishedAt utc.Time

	// Reset reports, one per target; empty when the reset was skipped.
	Resets []ResetReport

	// Name to identifier lookups built during the run
	Categories     Lookup
	Customizations Lookup

	// Created menu documents in dataset order
	MenuItems []MenuRecord

	// Skipped menu items and links
	Skipped []Outcome
}

func newResult() *Result {
	return &Result{
		StartedAt:      utc.Now(),
		Categories:     make(Lookup),
		Customizations: make(Lookup),
	}
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	if r.FinishedAt.Time.IsZero() {
		return 0
	}
	return r.FinishedAt.Time.Sub(r.StartedAt.Time)
}

// Links returns the number of link documents created.
func (r *Result) Links() int {
	n := 0
	for _, m := range r.MenuItems {
		n += len(m.Links)
	}
	return n
}

// Created returns the number of documents created per collection. Category
// and customization counts are distinct names, which equals the number of
// documents created unless the dataset repeats a name.
func (r *Result) Created() catalog.Counts {
	return catalog.Counts{
		Categories:     len(r.Categories),
		Customizations: len(r.Customizations),
		MenuItems:      len(r.MenuItems),
		Links:          r.Links(),
	}
}

// SkippedBy returns the skips with the given reason.
func (r *Result) SkippedBy(reason SkipReason) []Outcome {
	var out []Outcome
	for _, o := range r.Skipped {
		if o.Reason == reason {
			out = append(out, o)
		}
	}
	return out
}

// ResetFailures returns the reset reports that carry an error.
func (r *Result) ResetFailures() []ResetReport {
	var out []ResetReport
	for _, rr := range r.Resets {
		if rr.Err != nil {
			out = append(out, rr)
		}
	}
	return out
}

// Deleted returns the total number of entries removed by the reset.
func (r *Result) Deleted() int {
	n := 0
	for _, rr := range r.Resets {
		n += rr.Deleted
	}
	return n
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	c := r.Created()
	summary := fmt.Sprintf("%d categories, %d customizations, %d menu items, %d links created",
		c.Categories, c.Customizations, c.MenuItems, c.Links)

	var notes []string
	if n := len(r.Skipped); n > 0 {
		notes = append(notes, fmt.Sprintf("%d skipped", n))
	}
	if n := len(r.ResetFailures()); n > 0 {
		notes = append(notes, fmt.Sprintf("%d reset failures", n))
	}
	if len(notes) > 0 {
		summary += " (" + strings.Join(notes, ", ") + ")"
	}
	return summary
}
