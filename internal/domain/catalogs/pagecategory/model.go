// Package pagecategory defines product sections on a brand page.
package pagecategory

import (
	"context"

	"spottive/internal/core/apperror"
	"spottive/internal/core/entity"
	"spottive/internal/core/id"
)

// PageCategory is a section on a brand page holding an ordered set of
// product references.
type PageCategory struct {
	entity.Slugged
	PageID      id.ID   `db:"page_id" json:"pageId"`
	Description *string `db:"description" json:"description,omitempty"`
	Products    []id.ID `db:"products" json:"products"`
}

// New creates a page category bound to a brand page.
func New(name string, pageID id.ID) *PageCategory {
	return &PageCategory{
		Slugged:  entity.NewSlugged(name),
		PageID:   pageID,
		Products: []id.ID{},
	}
}

// Validate checks the category and its page binding.
func (c *PageCategory) Validate(ctx context.Context) error {
	if err := c.Slugged.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(c.PageID) {
		return apperror.Validation("pageId is required")
	}
	return nil
}

// AssignProducts appends product references, skipping ids already
// assigned so repeat assignment stays idempotent.
func (c *PageCategory) AssignProducts(productIDs []id.ID) {
	existing := make(map[id.ID]struct{}, len(c.Products))
	for _, pid := range c.Products {
		existing[pid] = struct{}{}
	}
	for _, pid := range productIDs {
		if _, ok := existing[pid]; ok {
			continue
		}
		c.Products = append(c.Products, pid)
		existing[pid] = struct{}{}
	}
}

// RemoveProduct drops a product reference. Unknown ids are a no-op so
// removal is idempotent.
func (c *PageCategory) RemoveProduct(productID id.ID) {
	for i, pid := range c.Products {
		if pid == productID {
			c.Products = append(c.Products[:i], c.Products[i+1:]...)
			return
		}
	}
}
