package menuseed

import (
	"context"
	"fmt"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/menuseed/pkg/catalog"
	"github.com/agentstation/menuseed/pkg/errors"
	"github.com/agentstation/menuseed/pkg/logging"
)

// Run performs one seed run: reset, then categories, customizations and menu
// items in dataset order. Per-item skips are recorded in the Result; any
// other failure stops the run and is returned together with the partial
// Result. Writes already made are not rolled back.
func (s *Seeder) Run(ctx context.Context, ds *catalog.Dataset) (*Result, error) {
	if ds == nil {
		return nil, errors.NewValidationError("dataset", nil, "dataset is required")
	}

	logger := s.logger(ctx)
	ctx = logging.WithLogger(ctx, logger)
	result := newResult()
	defer func() {
		result.FinishedAt = utc.Now()
	}()

	counts := ds.Counts()
	logger.Info().
		Int("categories", counts.Categories).
		Int("customizations", counts.Customizations).
		Int("menu_items", counts.MenuItems).
		Msg("Starting seed run")

	if !s.config.skipReset {
		reports, err := s.Reset(ctx)
		result.Resets = reports
		if err != nil {
			return result, err
		}
	}

	if err := s.seedCategories(ctx, ds.Categories, result.Categories); err != nil {
		return result, err
	}
	if err := s.seedCustomizations(ctx, ds.Customizations, result.Customizations); err != nil {
		return result, err
	}
	if err := s.seedMenu(ctx, ds.Menu, result); err != nil {
		return result, err
	}

	logger.Info().Msg(result.Summary())
	return result, nil
}

// seedCategories creates every category in order and records name to ID.
func (s *Seeder) seedCategories(ctx context.Context, categories []catalog.Category, lookup Lookup) error {
	ctx = logging.WithPhase(ctx, "categories")
	for _, c := range categories {
		id, err := s.create(ctx, s.collections.Categories, EntityCategory, c.Name, c.Fields())
		if err != nil {
			return err
		}
		lookup[c.Name] = id
	}
	return nil
}

// seedCustomizations creates every customization in order and records name to ID.
func (s *Seeder) seedCustomizations(ctx context.Context, customizations []catalog.Customization, lookup Lookup) error {
	ctx = logging.WithPhase(ctx, "customizations")
	for _, c := range customizations {
		id, err := s.create(ctx, s.collections.Customizations, EntityCustomization, c.Name, c.Fields())
		if err != nil {
			return err
		}
		lookup[c.Name] = id
	}
	return nil
}

// seedMenu creates menu items and their links. Only the anticipated
// conditions are skipped; other failures end the run.
func (s *Seeder) seedMenu(ctx context.Context, items []catalog.MenuItem, result *Result) error {
	ctx = logging.WithPhase(ctx, "menu")

	for _, item := range items {
		itemCtx := logging.WithItem(ctx, item.Name)
		logger := logging.FromContext(itemCtx)

		categoryID, ok := result.Categories.Resolve(item.CategoryName)
		if !ok {
			logger.Warn().
				Str("category", item.CategoryName).
				Str("reason", string(SkipUnknownCategory)).
				Msg("Skipping menu item: category not found")
			s.skip(result, Outcome{Entity: EntityMenuItem, Name: item.Name, Reason: SkipUnknownCategory})
			continue
		}

		imageURL, err := s.images.URL(itemCtx, item.ImageURL)
		if err != nil {
			if errors.IsCanceled(err) {
				return err
			}
			logger.Warn().
				Err(err).
				Str("image_url", item.ImageURL).
				Str("reason", string(SkipImageUpload)).
				Msg("Skipping menu item: image upload failed")
			s.skip(result, Outcome{Entity: EntityMenuItem, Name: item.Name, Reason: SkipImageUpload, Err: err})
			continue
		}

		menuID, err := s.create(itemCtx, s.collections.Menu, EntityMenuItem, item.Name, item.Fields(imageURL, categoryID))
		if err != nil {
			return err
		}
		record := MenuRecord{Name: item.Name, ID: menuID, CategoryID: categoryID, ImageURL: imageURL}

		err = s.seedLinks(itemCtx, item, &record, result, logger)
		result.MenuItems = append(result.MenuItems, record)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedLinks(ctx context.Context, item catalog.MenuItem, record *MenuRecord, result *Result, logger *zerolog.Logger) error {
	for _, name := range item.Customizations {
		linkName := item.Name + "/" + name

		customizationID, ok := result.Customizations.Resolve(name)
		if !ok {
			logger.Warn().
				Str("customization", name).
				Str("reason", string(SkipUnknownCustomization)).
				Msg("Skipping link: customization not found")
			s.skip(result, Outcome{Entity: EntityLink, Name: linkName, Reason: SkipUnknownCustomization})
			continue
		}

		link := catalog.Link{MenuItemID: record.ID, CustomizationID: customizationID}
		linkID, err := s.create(ctx, s.collections.MenuCustomizations, EntityLink, linkName, link.Fields())
		if err != nil {
			return err
		}
		record.Links = append(record.Links, LinkRecord{
			ID:                linkID,
			CustomizationName: name,
			CustomizationID:   customizationID,
		})
	}
	return nil
}

// create writes one document under a fresh identifier and then waits on the
// limiter. Errors are wrapped with the entity so the caller can tell which
// write ended the run.
func (s *Seeder) create(ctx context.Context, collectionID string, entity Entity, name string, data map[string]any) (string, error) {
	id := s.config.ids.New()
	doc, err := s.backend.CreateDocument(ctx, collectionID, id, data)
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.WrapCanceled(ctx.Err())
		}
		return "", fmt.Errorf("creating %s %q: %w", entity, name, err)
	}
	if doc != nil && doc.ID != "" {
		id = doc.ID
	}

	logging.FromContext(ctx).Debug().
		Str("entity", string(entity)).
		Str("id", id).
		Str("name", name).
		Msg("Created")
	s.hooks.trigger(Outcome{Kind: Created, Entity: entity, Name: name, ID: id})

	if err := s.config.limiter.Wait(ctx); err != nil {
		return id, err
	}
	return id, nil
}

func (s *Seeder) skip(result *Result, o Outcome) {
	o.Kind = Skipped
	result.Skipped = append(result.Skipped, o)
	s.hooks.trigger(o)
}
