package catalog

import (
	stderrors "errors"
	"fmt"

	"github.com/agentstation/menuseed/pkg/errors"
)

// Validate checks the structural consistency of the dataset: non-empty and
// unique names per kind, non-negative prices, ratings within 0..5, and menu
// references that resolve. Seeding does not call Validate; unresolved
// references are skipped at seed time instead.
func (d *Dataset) Validate() error {
	var errs []error

	categories := make(map[string]bool, len(d.Categories))
	for i, c := range d.Categories {
		field := fmt.Sprintf("categories[%d].name", i)
		switch {
		case c.Name == "":
			errs = append(errs, errors.NewValidationError(field, c.Name, "cannot be empty"))
		case categories[c.Name]:
			errs = append(errs, errors.NewValidationError(field, c.Name, "duplicate category "+c.Name))
		}
		categories[c.Name] = true
	}

	customizations := make(map[string]bool, len(d.Customizations))
	for i, c := range d.Customizations {
		field := fmt.Sprintf("customizations[%d]", i)
		switch {
		case c.Name == "":
			errs = append(errs, errors.NewValidationError(field+".name", c.Name, "cannot be empty"))
		case customizations[c.Name]:
			errs = append(errs, errors.NewValidationError(field+".name", c.Name, "duplicate customization "+c.Name))
		}
		customizations[c.Name] = true
		if c.Price.IsNegative() {
			errs = append(errs, errors.NewValidationError(field+".price", c.Price.String(), "cannot be negative"))
		}
		if c.Type == "" {
			errs = append(errs, errors.NewValidationError(field+".type", c.Type, "cannot be empty"))
		}
	}

	items := make(map[string]bool, len(d.Menu))
	for i, m := range d.Menu {
		field := fmt.Sprintf("menu[%d]", i)
		switch {
		case m.Name == "":
			errs = append(errs, errors.NewValidationError(field+".name", m.Name, "cannot be empty"))
		case items[m.Name]:
			errs = append(errs, errors.NewValidationError(field+".name", m.Name, "duplicate menu item "+m.Name))
		}
		items[m.Name] = true
		if m.ImageURL == "" {
			errs = append(errs, errors.NewValidationError(field+".image_url", m.ImageURL, "cannot be empty"))
		}
		if m.Price.IsNegative() {
			errs = append(errs, errors.NewValidationError(field+".price", m.Price.String(), "cannot be negative"))
		}
		if m.Rating < 0 || m.Rating > 5 {
			errs = append(errs, errors.NewValidationError(field+".rating", m.Rating, "must be between 0 and 5"))
		}
		if !categories[m.CategoryName] {
			errs = append(errs, errors.NewValidationError(field+".category_name", m.CategoryName, "unknown category "+m.CategoryName))
		}
		for j, name := range m.Customizations {
			if !customizations[name] {
				errs = append(errs, errors.NewValidationError(
					fmt.Sprintf("%s.customizations[%d]", field, j), name, "unknown customization "+name))
			}
		}
	}

	return stderrors.Join(errs...)
}
