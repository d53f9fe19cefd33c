package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/davidsnrn/fincontrol/internal/core"
	"github.com/davidsnrn/fincontrol/internal/storage"
)

// ErrParentNotFound is returned when a subcategory names a parent id
// that does not exist.
var ErrParentNotFound = errors.New("parent category not found")

// CategoryService persists the two-level category tree.
type CategoryService struct {
	store *storage.Store
}

func NewCategoryService(store *storage.Store) *CategoryService {
	return &CategoryService{store: store}
}

// Save validates and upserts a category. A subcategory always carries
// its parent's type regardless of what the draft says, so the tree stays
// homogeneous per branch.
func (s *CategoryService) Save(ctx context.Context, draft core.Category) (core.Category, error) {
	if err := draft.Validate(); err != nil {
		return core.Category{}, err
	}

	if draft.ParentID != "" {
		parent, found, err := s.findCategory(ctx, draft.ParentID)
		if err != nil {
			return core.Category{}, err
		}
		if !found {
			return core.Category{}, ErrParentNotFound
		}
		draft.Type = parent.Type
	}

	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	if err := s.store.SaveCategory(ctx, draft); err != nil {
		return core.Category{}, fmt.Errorf("save category: %w", err)
	}
	slog.InfoContext(ctx, "Category saved", "id", draft.ID, "name", draft.Name)
	return draft, nil
}

// Delete removes a category and all of its direct subcategories.
// Transactions referencing the removed ids keep the dangling reference
// and render with the fallback label.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *CategoryService) findCategory(ctx context.Context, id string) (core.Category, bool, error) {
	categories, err := s.store.Categories(ctx)
	if err != nil {
		return core.Category{}, false, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, true, nil
		}
	}
	return core.Category{}, false, nil
}
