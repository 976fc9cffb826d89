package dto

import (
	"spottive/internal/core/id"
	"spottive/internal/domain/catalogs/pagecategory"
	"spottive/internal/domain/catalogs/pagesubcategory"
)

// CreatePageCategoryRequest creates a section on a brand page. The
// page id comes from the route.
type CreatePageCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity builds the page category entity.
func (r CreatePageCategoryRequest) ToEntity(pageID id.ID) *pagecategory.PageCategory {
	c := pagecategory.New(r.Name, pageID)
	c.Description = r.Description
	return c
}

// UpdatePageCategoryRequest renames a page category.
type UpdatePageCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required"`
}

// ApplyTo copies the request onto the stored entity.
func (r UpdatePageCategoryRequest) ApplyTo(c *pagecategory.PageCategory) {
	c.Rename(r.Name)
	c.Description = r.Description
	c.Version = r.Version
}

// CreatePageSubcategoryRequest creates a nested section under a page
// category.
type CreatePageSubcategoryRequest struct {
	Name             string `json:"name" binding:"required"`
	ParentCategoryID string `json:"parentCategoryId" binding:"required"`
}

// ToEntity builds the page subcategory entity.
func (r CreatePageSubcategoryRequest) ToEntity(pageID, parentID id.ID) *pagesubcategory.PageSubcategory {
	return pagesubcategory.New(r.Name, pageID, parentID)
}

// UpdatePageSubcategoryRequest renames a page subcategory.
type UpdatePageSubcategoryRequest struct {
	Name    string `json:"name" binding:"required"`
	Version int    `json:"version" binding:"required"`
}

// ApplyTo copies the request onto the stored entity.
func (r UpdatePageSubcategoryRequest) ApplyTo(s *pagesubcategory.PageSubcategory) {
	s.Rename(r.Name)
	s.Version = r.Version
}

// AssignProductsRequest assigns products to a page section.
type AssignProductsRequest struct {
	ProductIDs []string `json:"productIds" binding:"required,min=1"`
}

// ParsedIDs parses the product ids.
func (r AssignProductsRequest) ParsedIDs() ([]id.ID, error) {
	return parseIDs(r.ProductIDs)
}

// SetPageProductsRequest replaces the products featured directly on a
// brand page. An empty list clears the assignment.
type SetPageProductsRequest struct {
	ProductIDs []string `json:"productIds"`
}

// ParsedIDs parses the product ids.
func (r SetPageProductsRequest) ParsedIDs() ([]id.ID, error) {
	return parseIDs(r.ProductIDs)
}

func parseIDs(raw []string) ([]id.ID, error) {
	out := make([]id.ID, 0, len(raw))
	for _, s := range raw {
		parsed, err := id.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}
