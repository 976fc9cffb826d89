package dto

import (
	"spottive/internal/domain/catalogs/brandpage"
	"spottive/internal/domain/catalogs/category"
)

// CreateCategoryRequest creates a back-office category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity builds the category entity.
func (r CreateCategoryRequest) ToEntity() *category.Category {
	c := category.New(r.Name)
	c.Description = r.Description
	return c
}

// UpdateCategoryRequest renames a category.
type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required"`
}

// ApplyTo copies the request onto the stored entity.
func (r UpdateCategoryRequest) ApplyTo(c *category.Category) {
	c.Rename(r.Name)
	c.Description = r.Description
	c.Version = r.Version
}

// AddSubcategoryRequest adds a subcategory to a category.
type AddSubcategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateBrandPageRequest creates a brand page.
type CreateBrandPageRequest struct {
	Name string `json:"name" binding:"required"`
}

// ToEntity builds the brand page entity.
func (r CreateBrandPageRequest) ToEntity() *brandpage.BrandPage {
	return brandpage.New(r.Name)
}

// UpdateBrandPageRequest renames a brand page.
type UpdateBrandPageRequest struct {
	Name    string `json:"name" binding:"required"`
	Version int    `json:"version" binding:"required"`
}

// ApplyTo copies the request onto the stored entity.
func (r UpdateBrandPageRequest) ApplyTo(p *brandpage.BrandPage) {
	p.Rename(r.Name)
	p.Version = r.Version
}
