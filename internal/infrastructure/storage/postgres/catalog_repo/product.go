package catalogrepo

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"spottive/internal/core/apperror"
	"spottive/internal/domain/catalogs/product"
	"spottive/internal/infrastructure/storage/postgres"
)

// ProductRepo persists products.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates the product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txManager, "products", "product",
			func() *product.Product { return &product.Product{} }),
	}
}

var _ product.Repository = (*ProductRepo)(nil)

// Snapshot returns the full catalog, newest first. Refresh
// notifications and the public listing both serve this order.
func (r *ProductRepo) Snapshot(ctx context.Context) ([]*product.Product, error) {
	query, args, err := r.builder.
		Select(r.columns...).
		From(r.table).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.Internal("failed to build snapshot", err)
	}

	items := []*product.Product{}
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, query, args...); err != nil {
		return nil, apperror.Database("failed to load product snapshot", err)
	}
	return items, nil
}
