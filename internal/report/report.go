// Package report renders a seed run as a markdown document.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/menuseed"
	"github.com/agentstation/menuseed/pkg/constants"
	"github.com/agentstation/menuseed/pkg/errors"
)

// Options describe the run for the report header.
type Options struct {
	Title   string
	Dataset string // dataset source, e.g. "embedded" or a file path
	Backend string // backend description, e.g. an endpoint
	DryRun  bool
}

// Write renders result to w.
func Write(w io.Writer, result *menuseed.Result, opts Options) error {
	if result == nil {
		return errors.NewValidationError("result", nil, "result is required")
	}
	title := opts.Title
	if title == "" {
		title = "Seed Report"
	}

	doc := md.NewMarkdown(w).H1(title)

	meta := []string{
		fmt.Sprintf("%s %s", md.Bold("Started:"), result.StartedAt.String()),
		fmt.Sprintf("%s %s", md.Bold("Duration:"), result.Duration().String()),
	}
	if opts.Dataset != "" {
		meta = append(meta, fmt.Sprintf("%s %s", md.Bold("Dataset:"), md.Code(opts.Dataset)))
	}
	if opts.Backend != "" {
		meta = append(meta, fmt.Sprintf("%s %s", md.Bold("Backend:"), md.Code(opts.Backend)))
	}
	if opts.DryRun {
		meta = append(meta, md.Bold("Dry run:")+" yes")
	}
	doc.BulletList(meta...).LF()

	doc.PlainText(result.Summary()).LF()

	c := result.Created()
	doc.H2("Created").Table(md.TableSet{
		Header: []string{"Collection", "Documents"},
		Rows: [][]string{
			{"categories", fmt.Sprint(c.Categories)},
			{"customizations", fmt.Sprint(c.Customizations)},
			{"menu", fmt.Sprint(c.MenuItems)},
			{"menu_customizations", fmt.Sprint(c.Links)},
		},
	})

	if len(result.Resets) > 0 {
		rows := make([][]string, 0, len(result.Resets))
		for _, r := range result.Resets {
			status := "ok"
			if r.Err != nil {
				status = "failed: " + escape(r.Err.Error())
			}
			rows = append(rows, []string{md.Code(r.Target), string(r.Kind), fmt.Sprint(r.Deleted), status})
		}
		doc.H2("Reset").Table(md.TableSet{
			Header: []string{"Target", "Kind", "Deleted", "Status"},
			Rows:   rows,
		})
		if failures := len(result.ResetFailures()); failures > 0 {
			doc.PlainText(fmt.Sprintf("> %d reset targets failed; seeded collections may contain duplicates.", failures)).LF()
		}
	}

	if len(result.MenuItems) > 0 {
		rows := make([][]string, 0, len(result.MenuItems))
		for _, m := range result.MenuItems {
			names := make([]string, 0, len(m.Links))
			for _, l := range m.Links {
				names = append(names, l.CustomizationName)
			}
			rows = append(rows, []string{escape(m.Name), md.Code(m.ID), md.Link("image", m.ImageURL), escape(strings.Join(names, ", "))})
		}
		doc.H2("Menu").Table(md.TableSet{
			Header: []string{"Item", "ID", "Image", "Customizations"},
			Rows:   rows,
		})
	}

	if len(result.Skipped) > 0 {
		rows := make([][]string, 0, len(result.Skipped))
		for _, o := range result.Skipped {
			rows = append(rows, []string{string(o.Entity), escape(o.Name), md.Code(string(o.Reason))})
		}
		doc.H2("Skipped").Table(md.TableSet{
			Header: []string{"Entity", "Name", "Reason"},
			Rows:   rows,
		})
	}

	return doc.Build()
}

// WriteFile renders result to path, creating parent directories.
func WriteFile(path string, result *menuseed.Result, opts Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("open", path, err)
	}
	if err := Write(f, result, opts); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	return errors.WrapIO("close", path, f.Close())
}

// escape keeps cell text from breaking the table.
func escape(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
