package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"spottive/internal/core/entity"
	"spottive/internal/core/id"
	"spottive/internal/domain"
	"spottive/internal/infrastructure/http/v1/dto"
)

// catalogService is the slice of CatalogService the generic handler
// needs.
type catalogService[T entity.Validatable] interface {
	Create(ctx context.Context, item T) error
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, entityID id.ID) error
	List(ctx context.Context, filter domain.ListFilter) (*domain.ListResult[T], error)
}

// CatalogHandler serves the shared CRUD surface of one catalog entity.
// Entities marshal straight to the API shape via their json tags.
type CatalogHandler[T entity.Validatable, C any, U any] struct {
	svc        catalogService[T]
	fromCreate func(C) T
	applyPatch func(U, T)
}

// NewCatalogHandler creates a CRUD handler. fromCreate builds a new
// entity from the create request; applyPatch copies an update request
// onto a stored entity.
func NewCatalogHandler[T entity.Validatable, C any, U any](
	svc catalogService[T],
	fromCreate func(C) T,
	applyPatch func(U, T),
) *CatalogHandler[T, C, U] {
	return &CatalogHandler[T, C, U]{
		svc:        svc,
		fromCreate: fromCreate,
		applyPatch: applyPatch,
	}
}

// List serves GET /.
func (h *CatalogHandler[T, C, U]) List(c *gin.Context) {
	filter, ok := listFilter(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse[T]{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get serves GET /:id.
func (h *CatalogHandler[T, C, U]) Get(c *gin.Context) {
	entityID, ok := parseID(c, "id")
	if !ok {
		return
	}

	item, err := h.svc.GetByID(c.Request.Context(), entityID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create serves POST /.
func (h *CatalogHandler[T, C, U]) Create(c *gin.Context) {
	req, ok := bindJSON[C](c)
	if !ok {
		return
	}

	item := h.fromCreate(req)
	if err := h.svc.Create(c.Request.Context(), item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update serves PUT /:id.
func (h *CatalogHandler[T, C, U]) Update(c *gin.Context) {
	entityID, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, ok := bindJSON[U](c)
	if !ok {
		return
	}

	item, err := h.svc.GetByID(c.Request.Context(), entityID)
	if err != nil {
		fail(c, err)
		return
	}

	h.applyPatch(req, item)
	if err := h.svc.Update(c.Request.Context(), item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete serves DELETE /:id.
func (h *CatalogHandler[T, C, U]) Delete(c *gin.Context) {
	entityID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), entityID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
