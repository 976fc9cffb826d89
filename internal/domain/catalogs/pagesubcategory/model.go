// Package pagesubcategory defines nested product sections under a
// page category on a brand page.
package pagesubcategory

import (
	"context"

	"spottive/internal/core/apperror"
	"spottive/internal/core/entity"
	"spottive/internal/core/id"
)

// PageSubcategory is a section nested under a page category, with its
// own ordered set of product references.
type PageSubcategory struct {
	entity.Slugged
	PageID           id.ID   `db:"page_id" json:"pageId"`
	ParentCategoryID id.ID   `db:"parent_category_id" json:"parentCategoryId"`
	Products         []id.ID `db:"products" json:"products"`
}

// New creates a page subcategory bound to a brand page and parent
// page category.
func New(name string, pageID, parentCategoryID id.ID) *PageSubcategory {
	return &PageSubcategory{
		Slugged:          entity.NewSlugged(name),
		PageID:           pageID,
		ParentCategoryID: parentCategoryID,
		Products:         []id.ID{},
	}
}

// Validate checks the subcategory and its bindings.
func (s *PageSubcategory) Validate(ctx context.Context) error {
	if err := s.Slugged.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(s.PageID) {
		return apperror.Validation("pageId is required")
	}
	if id.IsNil(s.ParentCategoryID) {
		return apperror.Validation("parentCategoryId is required")
	}
	return nil
}

// AssignProducts appends product references, skipping duplicates.
func (s *PageSubcategory) AssignProducts(productIDs []id.ID) {
	existing := make(map[id.ID]struct{}, len(s.Products))
	for _, pid := range s.Products {
		existing[pid] = struct{}{}
	}
	for _, pid := range productIDs {
		if _, ok := existing[pid]; ok {
			continue
		}
		s.Products = append(s.Products, pid)
		existing[pid] = struct{}{}
	}
}

// RemoveProduct drops a product reference; unknown ids are a no-op.
func (s *PageSubcategory) RemoveProduct(productID id.ID) {
	for i, pid := range s.Products {
		if pid == productID {
			s.Products = append(s.Products[:i], s.Products[i+1:]...)
			return
		}
	}
}
