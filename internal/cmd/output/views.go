package output

import (
	"fmt"
	"strings"

	"github.com/agentstation/menuseed"
	"github.com/agentstation/menuseed/pkg/catalog"
)

// ResetView is the serializable form of a reset report.
type ResetView struct {
	Target  string `json:"target" yaml:"target"`
	Kind    string `json:"kind" yaml:"kind"`
	Deleted int    `json:"deleted" yaml:"deleted"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// SkipView is the serializable form of a skipped item.
type SkipView struct {
	Entity string `json:"entity" yaml:"entity"`
	Name   string `json:"name" yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunView is the serializable form of a seed run.
type RunView struct {
	StartedAt  string          `json:"started_at" yaml:"started_at"`
	FinishedAt string          `json:"finished_at" yaml:"finished_at"`
	Duration   string          `json:"duration" yaml:"duration"`
	DryRun     bool            `json:"dry_run" yaml:"dry_run"`
	Created    catalog.Counts  `json:"created" yaml:"created"`
	Deleted    int             `json:"deleted" yaml:"deleted"`
	Resets     []ResetView     `json:"resets,omitempty" yaml:"resets,omitempty"`
	Skipped    []SkipView      `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Categories menuseed.Lookup `json:"categories" yaml:"categories"`
}

// NewResetViews converts reset reports.
func NewResetViews(reports []menuseed.ResetReport) []ResetView {
	views := make([]ResetView, 0, len(reports))
	for _, r := range reports {
		v := ResetView{Target: r.Target, Kind: string(r.Kind), Deleted: r.Deleted}
		if r.Err != nil {
			v.Error = r.Err.Error()
		}
		views = append(views, v)
	}
	return views
}

// NewRunView converts a seed result.
func NewRunView(r *menuseed.Result, dryRun bool) RunView {
	v := RunView{
		StartedAt:  r.StartedAt.String(),
		FinishedAt: r.FinishedAt.String(),
		Duration:   r.Duration().String(),
		DryRun:     dryRun,
		Created:    r.Created(),
		Deleted:    r.Deleted(),
		Resets:     NewResetViews(r.Resets),
		Categories: r.Categories,
	}
	for _, o := range r.Skipped {
		s := SkipView{Entity: string(o.Entity), Name: o.Name, Reason: string(o.Reason)}
		if o.Err != nil {
			s.Error = o.Err.Error()
		}
		v.Skipped = append(v.Skipped, s)
	}
	return v
}

// ResetTable renders reset reports as a table.
func ResetTable(reports []menuseed.ResetReport) Data {
	d := Data{
		Headers:         []string{"Target", "Kind", "Deleted", "Status"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
	for _, r := range reports {
		status := "ok"
		if r.Err != nil {
			status = "failed: " + r.Err.Error()
		}
		d.Rows = append(d.Rows, []string{r.Target, string(r.Kind), fmt.Sprint(r.Deleted), status})
	}
	return d
}

// RunTable renders the per-collection counts of a seed run.
func RunTable(r *menuseed.Result) Data {
	c := r.Created()
	skips := map[menuseed.Entity]int{}
	for _, o := range r.Skipped {
		skips[o.Entity]++
	}
	row := func(name string, entity menuseed.Entity, created int) []string {
		return []string{name, fmt.Sprint(created), fmt.Sprint(skips[entity])}
	}
	return Data{
		Headers:         []string{"Collection", "Created", "Skipped"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight},
		Rows: [][]string{
			row("categories", menuseed.EntityCategory, c.Categories),
			row("customizations", menuseed.EntityCustomization, c.Customizations),
			row("menu", menuseed.EntityMenuItem, c.MenuItems),
			row("menu_customizations", menuseed.EntityLink, c.Links),
		},
	}
}

// SkipTable renders skipped items.
func SkipTable(skipped []menuseed.Outcome) Data {
	d := Data{Headers: []string{"Entity", "Name", "Reason"}}
	for _, o := range skipped {
		d.Rows = append(d.Rows, []string{string(o.Entity), o.Name, string(o.Reason)})
	}
	return d
}

// CategoriesTable renders dataset categories.
func CategoriesTable(categories []catalog.Category) Data {
	d := Data{Headers: []string{"Name", "Description"}}
	for _, c := range categories {
		d.Rows = append(d.Rows, []string{c.Name, c.Description})
	}
	return d
}

// CustomizationsTable renders dataset customizations.
func CustomizationsTable(customizations []catalog.Customization) Data {
	d := Data{
		Headers:         []string{"Name", "Type", "Price"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
	for _, c := range customizations {
		d.Rows = append(d.Rows, []string{c.Name, string(c.Type), c.Price.StringFixed(2)})
	}
	return d
}

// MenuTable renders dataset menu items.
func MenuTable(items []catalog.MenuItem) Data {
	d := Data{
		Headers:         []string{"Name", "Category", "Price", "Rating", "Calories", "Protein", "Customizations"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft},
	}
	for _, m := range items {
		d.Rows = append(d.Rows, []string{
			m.Name,
			m.CategoryName,
			m.Price.StringFixed(2),
			fmt.Sprintf("%.1f", m.Rating),
			fmt.Sprint(m.Calories),
			fmt.Sprint(m.Protein),
			strings.Join(m.Customizations, ", "),
		})
	}
	return d
}

// CountsTable renders dataset or run counts.
func CountsTable(c catalog.Counts) Data {
	return Data{
		Headers:         []string{"Kind", "Count"},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
		Rows: [][]string{
			{"categories", fmt.Sprint(c.Categories)},
			{"customizations", fmt.Sprint(c.Customizations)},
			{"menu items", fmt.Sprint(c.MenuItems)},
			{"links", fmt.Sprint(c.Links)},
		},
	}
}
