// Package catalog defines the demo menu data model: categories, customizations,
// menu items and the links between menu items and customizations, plus loading
// of datasets from YAML.
package catalog

import (
	"github.com/shopspring/decimal"
)

// CustomizationType classifies a customization. The known values are listed
// below; any other string is accepted and stored as-is.
type CustomizationType string

// Known customization types.
const (
	CustomizationTopping CustomizationType = "topping"
	CustomizationSide    CustomizationType = "side"
	CustomizationSize    CustomizationType = "size"
	CustomizationCrust   CustomizationType = "crust"
)

// Known reports whether t is one of the predefined customization types.
func (t CustomizationType) Known() bool {
	switch t {
	case CustomizationTopping, CustomizationSide, CustomizationSize, CustomizationCrust:
		return true
	}
	return false
}

// Category groups menu items.
type Category struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Customization is an add-on that can be linked to many menu items.
type Customization struct {
	Name  string            `yaml:"name" json:"name"`
	Price decimal.Decimal   `yaml:"price" json:"price"`
	Type  CustomizationType `yaml:"type" json:"type"`
}

// MenuItem references its category and customizations by name; the names are
// resolved to generated identifiers at seed time.
type MenuItem struct {
	Name           string          `yaml:"name" json:"name"`
	Description    string          `yaml:"description" json:"description"`
	ImageURL       string          `yaml:"image_url" json:"image_url"`
	Price          decimal.Decimal `yaml:"price" json:"price"`
	Rating         float64         `yaml:"rating" json:"rating"`
	Calories       int             `yaml:"calories" json:"calories"`
	Protein        int             `yaml:"protein" json:"protein"`
	CategoryName   string          `yaml:"category_name" json:"category_name"`
	Customizations []string        `yaml:"customizations,omitempty" json:"customizations,omitempty"`
}

// Link joins one menu item to one customization.
type Link struct {
	MenuItemID      string `json:"menu"`
	CustomizationID string `json:"customizations"`
}

// Dataset is the static source the seeder rebuilds the backend from.
type Dataset struct {
	Categories     []Category      `yaml:"categories" json:"categories"`
	Customizations []Customization `yaml:"customizations" json:"customizations"`
	Menu           []MenuItem      `yaml:"menu" json:"menu"`
}

// Counts summarizes the size of a dataset.
type Counts struct {
	Categories     int `json:"categories" yaml:"categories"`
	Customizations int `json:"customizations" yaml:"customizations"`
	MenuItems      int `json:"menu_items" yaml:"menu_items"`
	Links          int `json:"links" yaml:"links"`
}

// Counts returns the number of entries of each kind, counting one link per
// customization name listed on a menu item.
func (d *Dataset) Counts() Counts {
	c := Counts{
		Categories:     len(d.Categories),
		Customizations: len(d.Customizations),
		MenuItems:      len(d.Menu),
	}
	for _, item := range d.Menu {
		c.Links += len(item.Customizations)
	}
	return c
}
