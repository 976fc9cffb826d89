// Package product defines the product catalog entity.
package product

import (
	"context"

	"spottive/internal/core/apperror"
	"spottive/internal/core/entity"
)

// Status is the merchandising state of a product.
type Status string

const (
	StatusActive       Status = "Active"
	StatusFeatured     Status = "Featured"
	StatusNew          Status = "New"
	StatusDiscontinued Status = "Discontinued"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusFeatured, StatusNew, StatusDiscontinued:
		return true
	}
	return false
}

// Product is an item in the catalog. Category is the internal grouping
// used by the back office; WebsiteCategory is the storefront grouping
// the public site filters on.
type Product struct {
	entity.Base
	Name            string  `db:"name" json:"name"`
	Category        string  `db:"category" json:"category"`
	WebsiteCategory string  `db:"website_category" json:"websiteCategory"`
	SubcategoryID   *string `db:"subcategory_id" json:"subcategoryId,omitempty"`
	Status          Status  `db:"status" json:"status"`
	Description     *string `db:"description" json:"description,omitempty"`
	ImageURL        *string `db:"image_url" json:"imageUrl,omitempty"`
	AssetID         *string `db:"asset_id" json:"assetId,omitempty"`
}

// New creates a product with defaults applied.
func New(name, category, websiteCategory string) *Product {
	return &Product{
		Base:            entity.NewBase(),
		Name:            name,
		Category:        category,
		WebsiteCategory: websiteCategory,
		Status:          StatusActive,
	}
}

// Validate checks required fields and enum membership.
func (p *Product) Validate(_ context.Context) error {
	if p.Name == "" {
		return apperror.Validation("name is required")
	}
	if p.Category == "" {
		return apperror.Validation("category is required")
	}
	if p.WebsiteCategory == "" {
		return apperror.Validation("websiteCategory is required")
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if !p.Status.IsValid() {
		return apperror.Validation("status must be one of Active, Featured, New, Discontinued").
			WithDetail("status", string(p.Status))
	}
	return nil
}
