package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spottive/internal/domain/catalogs/product"
	"spottive/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product endpoints. The listing is public;
// mutations sit behind auth.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	svc *product.Service
}

// NewProductHandler creates the product handler.
func NewProductHandler(svc *product.Service) *ProductHandler {
	return &ProductHandler{
		CatalogHandler: NewCatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest](
			svc,
			dto.CreateProductRequest.ToEntity,
			dto.UpdateProductRequest.ApplyTo,
		),
		svc: svc,
	}
}

// Snapshot serves GET /snapshot: the full catalog newest first, the
// same order refresh notifications use.
func (h *ProductHandler) Snapshot(c *gin.Context) {
	items, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[*product.Product]{
		Items:      items,
		TotalCount: len(items),
		Limit:      len(items),
	})
}
