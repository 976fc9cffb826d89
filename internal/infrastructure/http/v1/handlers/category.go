package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spottive/internal/domain/catalogs/brandpage"
	"spottive/internal/domain/catalogs/category"
	"spottive/internal/infrastructure/http/v1/dto"
)

// CategoryHandler serves back-office categories and their embedded
// subcategories.
type CategoryHandler struct {
	*CatalogHandler[*category.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]
	svc *category.Service
}

// NewCategoryHandler creates the category handler.
func NewCategoryHandler(svc *category.Service) *CategoryHandler {
	return &CategoryHandler{
		CatalogHandler: NewCatalogHandler[*category.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest](
			svc,
			dto.CreateCategoryRequest.ToEntity,
			dto.UpdateCategoryRequest.ApplyTo,
		),
		svc: svc,
	}
}

// GetBySlug serves GET /slug/:slug.
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	cat, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// AddSubcategory serves POST /:id/subcategories.
func (h *CategoryHandler) AddSubcategory(c *gin.Context) {
	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, ok := bindJSON[dto.AddSubcategoryRequest](c)
	if !ok {
		return
	}

	sub, err := h.svc.AddSubcategory(c.Request.Context(), categoryID, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// UpdateSubcategory serves PUT /:id/subcategories/:subId.
func (h *CategoryHandler) UpdateSubcategory(c *gin.Context) {
	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	subID, ok := parseID(c, "subId")
	if !ok {
		return
	}
	req, ok := bindJSON[dto.AddSubcategoryRequest](c)
	if !ok {
		return
	}

	sub, err := h.svc.RenameSubcategory(c.Request.Context(), categoryID, subID, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// RemoveSubcategory serves DELETE /:id/subcategories/:subId.
func (h *CategoryHandler) RemoveSubcategory(c *gin.Context) {
	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	subID, ok := parseID(c, "subId")
	if !ok {
		return
	}

	if err := h.svc.RemoveSubcategory(c.Request.Context(), categoryID, subID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BrandPageHandler serves brand page CRUD plus slug lookup for the
// storefront.
type BrandPageHandler struct {
	*CatalogHandler[*brandpage.BrandPage, dto.CreateBrandPageRequest, dto.UpdateBrandPageRequest]
	svc *brandpage.Service
}

// NewBrandPageHandler creates the brand page handler.
func NewBrandPageHandler(svc *brandpage.Service) *BrandPageHandler {
	return &BrandPageHandler{
		CatalogHandler: NewCatalogHandler[*brandpage.BrandPage, dto.CreateBrandPageRequest, dto.UpdateBrandPageRequest](
			svc,
			dto.CreateBrandPageRequest.ToEntity,
			dto.UpdateBrandPageRequest.ApplyTo,
		),
		svc: svc,
	}
}

// List serves GET /. Brand pages default to name order for the
// storefront navigation.
func (h *BrandPageHandler) List(c *gin.Context) {
	filter, ok := listFilter(c)
	if !ok {
		return
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}

	result, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[*brandpage.BrandPage]{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// GetBySlug serves GET /slug/:slug.
func (h *BrandPageHandler) GetBySlug(c *gin.Context) {
	page, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
