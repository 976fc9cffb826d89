package dto

import (
	"spottive/internal/domain/catalogs/product"
)

// CreateProductRequest creates a product. Status defaults to Active.
type CreateProductRequest struct {
	Name            string  `json:"name" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	WebsiteCategory string  `json:"websiteCategory" binding:"required"`
	SubcategoryID   *string `json:"subcategoryId"`
	Status          string  `json:"status"`
	Description     *string `json:"description"`
	ImageURL        *string `json:"imageUrl"`
	AssetID         *string `json:"assetId"`
}

// ToEntity builds the product entity.
func (r CreateProductRequest) ToEntity() *product.Product {
	p := product.New(r.Name, r.Category, r.WebsiteCategory)
	p.SubcategoryID = r.SubcategoryID
	if r.Status != "" {
		p.Status = product.Status(r.Status)
	}
	p.Description = r.Description
	p.ImageURL = r.ImageURL
	p.AssetID = r.AssetID
	return p
}

// UpdateProductRequest replaces a product's mutable fields. Version
// carries the optimistic lock the caller read.
type UpdateProductRequest struct {
	Name            string  `json:"name" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	WebsiteCategory string  `json:"websiteCategory" binding:"required"`
	SubcategoryID   *string `json:"subcategoryId"`
	Status          string  `json:"status"`
	Description     *string `json:"description"`
	ImageURL        *string `json:"imageUrl"`
	AssetID         *string `json:"assetId"`
	Version         int     `json:"version" binding:"required"`
}

// ApplyTo copies the request onto the stored entity.
func (r UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Name = r.Name
	p.Category = r.Category
	p.WebsiteCategory = r.WebsiteCategory
	p.SubcategoryID = r.SubcategoryID
	if r.Status != "" {
		p.Status = product.Status(r.Status)
	}
	p.Description = r.Description
	p.ImageURL = r.ImageURL
	p.AssetID = r.AssetID
	p.Version = r.Version
}
