package product

import (
	"context"

	"spottive/internal/core/tx"
	"spottive/internal/domain"
	"spottive/pkg/logger"
)

// Repository is the persistence contract for products.
type Repository interface {
	domain.CatalogRepository[*Product]
	// Snapshot returns the full catalog, newest first.
	Snapshot(ctx context.Context) ([]*Product, error)
}

// Service handles product business logic.
type Service struct {
	*domain.CatalogService[*Product]
	repo Repository
}

// NewService creates the product service.
func NewService(repo Repository, txManager tx.Manager, log *logger.Logger) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[*Product]("product", repo, txManager, log),
		repo:           repo,
	}
}

// Snapshot returns every product, newest first. This is what refresh
// notifications and the public listing serve.
func (s *Service) Snapshot(ctx context.Context) ([]*Product, error) {
	return s.repo.Snapshot(ctx)
}
