package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spottive/internal/core/apperror"
	"spottive/internal/core/id"
	"spottive/internal/core/tx"
	"spottive/internal/domain"
	"spottive/internal/domain/catalogs/product"
	"spottive/internal/infrastructure/http/v1/middleware"
	"spottive/pkg/logger"
)

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn tx.TxFunc) error {
	return fn(ctx)
}

func (noopTxManager) RunInTransactionWithRetry(ctx context.Context, _ int, fn tx.TxFunc) error {
	return fn(ctx)
}

// memProductRepo is an in-memory product.Repository.
type memProductRepo struct {
	items map[id.ID]*product.Product
	order []id.ID
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: make(map[id.ID]*product.Product)}
}

func (r *memProductRepo) Create(_ context.Context, p *product.Product) error {
	r.items[p.ID] = p
	r.order = append([]id.ID{p.ID}, r.order...)
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, entityID id.ID) (*product.Product, error) {
	p, ok := r.items[entityID]
	if !ok {
		return nil, apperror.NotFound("product", entityID)
	}
	clone := *p
	return &clone, nil
}

func (r *memProductRepo) Update(_ context.Context, p *product.Product) error {
	stored, ok := r.items[p.ID]
	if !ok {
		return apperror.NotFound("product", p.ID)
	}
	if stored.Version != p.Version {
		return apperror.ConcurrentModification("product", p.ID)
	}
	p.Touch()
	r.items[p.ID] = p
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, entityID id.ID) error {
	if _, ok := r.items[entityID]; !ok {
		return apperror.NotFound("product", entityID)
	}
	delete(r.items, entityID)
	for i, stored := range r.order {
		if stored == entityID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memProductRepo) List(ctx context.Context, filter domain.ListFilter) (*domain.ListResult[*product.Product], error) {
	items, _ := r.Snapshot(ctx)
	if len(filter.IDs) > 0 {
		wanted := make(map[id.ID]struct{}, len(filter.IDs))
		for _, entityID := range filter.IDs {
			wanted[entityID] = struct{}{}
		}
		kept := items[:0]
		for _, p := range items {
			if _, ok := wanted[p.ID]; ok {
				kept = append(kept, p)
			}
		}
		items = kept
	}
	return &domain.ListResult[*product.Product]{
		Items:      items,
		TotalCount: len(items),
		Limit:      len(items),
	}, nil
}

func (r *memProductRepo) Exists(_ context.Context, entityID id.ID) (bool, error) {
	_, ok := r.items[entityID]
	return ok, nil
}

func (r *memProductRepo) Snapshot(_ context.Context) ([]*product.Product, error) {
	out := make([]*product.Product, 0, len(r.order))
	for _, entityID := range r.order {
		out = append(out, r.items[entityID])
	}
	return out, nil
}

func newProductRouter(t *testing.T) (*gin.Engine, *memProductRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemProductRepo()
	svc := product.NewService(repo, noopTxManager{}, logger.Default())
	h := NewProductHandler(svc)

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger.Default()))
	router.GET("/products", h.List)
	router.GET("/products/:id", h.Get)
	router.POST("/products", h.Create)
	router.PUT("/products/:id", h.Update)
	router.DELETE("/products/:id", h.Delete)
	return router, repo
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateProduct(t *testing.T) {
	router, repo := newProductRouter(t)

	rec := doJSON(router, http.MethodPost, "/products", gin.H{
		"name":            "Dome Camera",
		"category":        "CCTV",
		"websiteCategory": "Security Cameras",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created product.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, product.StatusActive, created.Status)
	assert.False(t, id.IsNil(created.ID))
	assert.Len(t, repo.items, 1)
}

func TestCreateProductValidation(t *testing.T) {
	router, repo := newProductRouter(t)

	rec := doJSON(router, http.MethodPost, "/products", gin.H{"name": "No Categories"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION")
	assert.Empty(t, repo.items)
}

func TestGetProductNotFound(t *testing.T) {
	router, _ := newProductRouter(t)

	rec := doJSON(router, http.MethodGet, "/products/"+id.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(router, http.MethodGet, "/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProductConflict(t *testing.T) {
	router, repo := newProductRouter(t)

	p := product.New("Dome Camera", "CCTV", "Security Cameras")
	require.NoError(t, repo.Create(context.Background(), p))

	rec := doJSON(router, http.MethodPut, "/products/"+p.ID.String(), gin.H{
		"name":            "Dome Camera v2",
		"category":        "CCTV",
		"websiteCategory": "Security Cameras",
		"version":         p.Version + 5, // stale caller
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestDeleteProduct(t *testing.T) {
	router, repo := newProductRouter(t)

	p := product.New("Dome Camera", "CCTV", "Security Cameras")
	require.NoError(t, repo.Create(context.Background(), p))

	rec := doJSON(router, http.MethodDelete, "/products/"+p.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.items)

	rec = doJSON(router, http.MethodDelete, "/products/"+p.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProducts(t *testing.T) {
	router, repo := newProductRouter(t)
	require.NoError(t, repo.Create(context.Background(), product.New("A", "CCTV", "Cams")))
	require.NoError(t, repo.Create(context.Background(), product.New("B", "CCTV", "Cams")))

	rec := doJSON(router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items      []*product.Product `json:"items"`
		TotalCount int                `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, "B", resp.Items[0].Name) // newest first
}
