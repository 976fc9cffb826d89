package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"spottive/internal/core/apperror"
	"spottive/internal/core/id"
	"spottive/internal/domain"
	"spottive/internal/domain/catalogs/brandpage"
	"spottive/internal/domain/catalogs/pagecategory"
	"spottive/internal/domain/catalogs/pagesubcategory"
	"spottive/internal/domain/catalogs/product"
	"spottive/internal/infrastructure/http/v1/dto"
)

// productLister resolves assigned product ids into full products.
type productLister interface {
	List(ctx context.Context, filter domain.ListFilter) (*domain.ListResult[*product.Product], error)
}

// PageHandler serves the brand page composition endpoints nested
// under /pages/:pageId: page-level products plus the category and
// subcategory sections.
type PageHandler struct {
	pages         *brandpage.Service
	categories    *pagecategory.Service
	subcategories *pagesubcategory.Service
	products      productLister
}

// NewPageHandler creates the page composition handler.
func NewPageHandler(
	pages *brandpage.Service,
	categories *pagecategory.Service,
	subcategories *pagesubcategory.Service,
	products productLister,
) *PageHandler {
	return &PageHandler{
		pages:         pages,
		categories:    categories,
		subcategories: subcategories,
		products:      products,
	}
}

// ListProducts serves GET /pages/:pageId/products: the full products
// featured directly on the page.
func (h *PageHandler) ListProducts(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}

	page, err := h.pages.GetByID(c.Request.Context(), pageID)
	if err != nil {
		fail(c, err)
		return
	}
	if len(page.Products) == 0 {
		c.JSON(http.StatusOK, dto.ListResponse[*product.Product]{Items: []*product.Product{}})
		return
	}

	result, err := h.products.List(c.Request.Context(), domain.ListFilter{
		IDs:   page.Products,
		Limit: len(page.Products),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[*product.Product]{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
	})
}

// SetProducts serves POST /pages/:pageId/products, replacing the
// page-level product list.
func (h *PageHandler) SetProducts(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}
	req, ok := bindJSON[dto.SetPageProductsRequest](c)
	if !ok {
		return
	}
	productIDs, err := req.ParsedIDs()
	if err != nil {
		fail(c, apperror.Validation("invalid product id"))
		return
	}

	page, err := h.pages.SetProducts(c.Request.Context(), pageID, productIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListCategories serves GET /pages/:pageId/categories.
func (h *PageHandler) ListCategories(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}

	items, err := h.categories.ListByPage(c.Request.Context(), pageID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[*pagecategory.PageCategory]{
		Items:      items,
		TotalCount: len(items),
		Limit:      len(items),
	})
}

// CreateCategory serves POST /pages/:pageId/categories.
func (h *PageHandler) CreateCategory(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}
	req, ok := bindJSON[dto.CreatePageCategoryRequest](c)
	if !ok {
		return
	}

	item := req.ToEntity(pageID)
	if err := h.categories.Create(c.Request.Context(), item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateCategory serves PUT /pages/:pageId/categories/:id.
func (h *PageHandler) UpdateCategory(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}
	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, ok := bindJSON[dto.UpdatePageCategoryRequest](c)
	if !ok {
		return
	}

	item, err := h.loadCategory(c, pageID, categoryID)
	if err != nil {
		fail(c, err)
		return
	}

	req.ApplyTo(item)
	if err := h.categories.Update(c.Request.Context(), item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteCategory serves DELETE /pages/:pageId/categories/:id.
func (h *PageHandler) DeleteCategory(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}
	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.loadCategory(c, pageID, categoryID); err != nil {
		fail(c, err)
		return
	}
	if err := h.categories.Delete(c.Request.Context(), categoryID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignCategoryProducts serves POST /pages/:pageId/categories/:id/products.
func (h *PageHandler) AssignCategoryProducts(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}
	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, ok := bindJSON[dto.AssignProductsRequest](c)
	if !ok {
		return
	}
	productIDs, err := req.ParsedIDs()
	if err != nil {
		fail(c, apperror.Validation("invalid product id").WithDetail("cause", err.Error()))
		return
	}

	if _, err := h.loadCategory(c, pageID, categoryID); err != nil {
		fail(c, err)
		return
	}

	item, err := h.categories.AssignProducts(c.Request.Context(), categoryID, productIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveCategoryProduct serves DELETE /pages/:pageId/categories/:id/products/:productId.
func (h *PageHandler) RemoveCategoryProduct(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}
	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	if _, err := h.loadCategory(c, pageID, categoryID); err != nil {
		fail(c, err)
		return
	}

	item, err := h.categories.RemoveProduct(c.Request.Context(), categoryID, productID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ListSubcategories serves GET /pages/:pageId/subcategories, optionally
// filtered by ?parent=.
func (h *PageHandler) ListSubcategories(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}

	var items []*pagesubcategory.PageSubcategory
	var err error
	if parent := c.Query("parent"); parent != "" {
		parentID, parseErr := id.Parse(parent)
		if parseErr != nil {
			fail(c, apperror.Validation("invalid parent id"))
			return
		}
		items, err = h.subcategories.ListByParent(c.Request.Context(), parentID)
	} else {
		items, err = h.subcategories.ListByPage(c.Request.Context(), pageID)
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse[*pagesubcategory.PageSubcategory]{
		Items:      items,
		TotalCount: len(items),
		Limit:      len(items),
	})
}

// CreateSubcategory serves POST /pages/:pageId/subcategories.
func (h *PageHandler) CreateSubcategory(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}
	req, ok := bindJSON[dto.CreatePageSubcategoryRequest](c)
	if !ok {
		return
	}
	parentID, err := id.Parse(req.ParentCategoryID)
	if err != nil {
		fail(c, apperror.Validation("invalid parentCategoryId"))
		return
	}

	item := req.ToEntity(pageID, parentID)
	if err := h.subcategories.Create(c.Request.Context(), item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateSubcategory serves PUT /pages/:pageId/subcategories/:id.
func (h *PageHandler) UpdateSubcategory(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}
	subID, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, ok := bindJSON[dto.UpdatePageSubcategoryRequest](c)
	if !ok {
		return
	}

	item, err := h.loadSubcategory(c, pageID, subID)
	if err != nil {
		fail(c, err)
		return
	}

	req.ApplyTo(item)
	if err := h.subcategories.Update(c.Request.Context(), item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteSubcategory serves DELETE /pages/:pageId/subcategories/:id.
func (h *PageHandler) DeleteSubcategory(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}
	subID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.loadSubcategory(c, pageID, subID); err != nil {
		fail(c, err)
		return
	}
	if err := h.subcategories.Delete(c.Request.Context(), subID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignSubcategoryProducts serves POST /pages/:pageId/subcategories/:id/products.
func (h *PageHandler) AssignSubcategoryProducts(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}
	subID, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, ok := bindJSON[dto.AssignProductsRequest](c)
	if !ok {
		return
	}
	productIDs, err := req.ParsedIDs()
	if err != nil {
		fail(c, apperror.Validation("invalid product id").WithDetail("cause", err.Error()))
		return
	}

	if _, err := h.loadSubcategory(c, pageID, subID); err != nil {
		fail(c, err)
		return
	}

	item, err := h.subcategories.AssignProducts(c.Request.Context(), subID, productIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveSubcategoryProduct serves DELETE /pages/:pageId/subcategories/:id/products/:productId.
func (h *PageHandler) RemoveSubcategoryProduct(c *gin.Context) {
	pageID, ok := parseID(c, "pageId")
	if !ok {
		return
	}
	subID, ok := parseID(c, "id")
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	if _, err := h.loadSubcategory(c, pageID, subID); err != nil {
		fail(c, err)
		return
	}

	item, err := h.subcategories.RemoveProduct(c.Request.Context(), subID, productID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// loadCategory fetches a page category and checks it belongs to the
// page in the route, so one page cannot edit another's sections.
func (h *PageHandler) loadCategory(c *gin.Context, pageID, categoryID id.ID) (*pagecategory.PageCategory, error) {
	item, err := h.categories.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		return nil, err
	}
	if item.PageID != pageID {
		return nil, apperror.NotFound("page category", categoryID)
	}
	return item, nil
}

func (h *PageHandler) loadSubcategory(c *gin.Context, pageID, subID id.ID) (*pagesubcategory.PageSubcategory, error) {
	item, err := h.subcategories.GetByID(c.Request.Context(), subID)
	if err != nil {
		return nil, err
	}
	if item.PageID != pageID {
		return nil, apperror.NotFound("page subcategory", subID)
	}
	return item, nil
}
