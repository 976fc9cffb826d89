package brandpage

import (
	"context"

	"spottive/internal/core/apperror"
	"spottive/internal/core/id"
	"spottive/internal/core/tx"
	"spottive/internal/domain"
	"spottive/pkg/logger"
)

// Repository is the persistence contract for brand pages.
type Repository interface {
	domain.SluggedRepository[*BrandPage]
}

// Checker verifies that a referenced entity exists.
type Checker interface {
	Exists(ctx context.Context, entityID id.ID) (bool, error)
}

// Service handles brand page business logic.
type Service struct {
	*domain.CatalogService[*BrandPage]
	repo     Repository
	products Checker
}

// NewService creates the brand page service. Slugs form public page
// URLs, so uniqueness is enforced across all brand pages. products
// verifies page-level product assignments.
func NewService(repo Repository, products Checker, txManager tx.Manager, log *logger.Logger) *Service {
	svc := &Service{
		CatalogService: domain.NewCatalogService[*BrandPage]("brand page", repo, txManager, log),
		repo:           repo,
		products:       products,
	}
	domain.GuardSlug(svc.CatalogService, repo, "brand page")
	return svc
}

// GetBySlug fetches a brand page by its slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*BrandPage, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// SetProducts replaces the page-level product list. Every referenced
// product must exist; an empty list clears the assignment.
func (s *Service) SetProducts(ctx context.Context, pageID id.ID, productIDs []id.ID) (*BrandPage, error) {
	page, err := s.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	for _, pid := range productIDs {
		ok, err := s.products.Exists(ctx, pid)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.NotFound("product", pid)
		}
	}
	page.SetProducts(productIDs)
	if err := s.Update(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}
