package catalog

// Document field names as stored in the backend collections.
const (
	FieldName              = "name"
	FieldDescription       = "description"
	FieldPrice             = "price"
	FieldType              = "type"
	FieldImageURL          = "image_url"
	FieldRating            = "rating"
	FieldCalories          = "calories"
	FieldProtein           = "protein"
	FieldCategory          = "categories"
	FieldLinkMenu          = "menu"
	FieldLinkCustomization = "customizations"
)

// Fields returns the document body for a category.
func (c Category) Fields() map[string]any {
	return map[string]any{
		FieldName:        c.Name,
		FieldDescription: c.Description,
	}
}

// Fields returns the document body for a customization.
func (c Customization) Fields() map[string]any {
	return map[string]any{
		FieldName:  c.Name,
		FieldPrice: c.Price.InexactFloat64(),
		FieldType:  string(c.Type),
	}
}

// Fields returns the document body for a menu item whose image has been
// re-hosted at imageURL and whose category resolved to categoryID.
func (m MenuItem) Fields(imageURL, categoryID string) map[string]any {
	return map[string]any{
		FieldName:        m.Name,
		FieldDescription: m.Description,
		FieldImageURL:    imageURL,
		FieldPrice:       m.Price.InexactFloat64(),
		FieldRating:      m.Rating,
		FieldCalories:    m.Calories,
		FieldProtein:     m.Protein,
		FieldCategory:    categoryID,
	}
}

// Fields returns the document body for a link row.
func (l Link) Fields() map[string]any {
	return map[string]any{
		FieldLinkMenu:          l.MenuItemID,
		FieldLinkCustomization: l.CustomizationID,
	}
}
