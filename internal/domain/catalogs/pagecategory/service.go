package pagecategory

import (
	"context"

	"spottive/internal/core/apperror"
	"spottive/internal/core/id"
	"spottive/internal/core/tx"
	"spottive/internal/domain"
	"spottive/pkg/logger"
)

// Repository is the persistence contract for page categories.
type Repository interface {
	domain.CatalogRepository[*PageCategory]
	// ListByPage returns all categories of one brand page, oldest first.
	ListByPage(ctx context.Context, pageID id.ID) ([]*PageCategory, error)
	// SlugTakenInPage reports whether another category of the same page
	// already uses the slug.
	SlugTakenInPage(ctx context.Context, pageID id.ID, slug string, excludeID id.ID) (bool, error)
}

// Checker verifies that a referenced entity exists.
type Checker interface {
	Exists(ctx context.Context, entityID id.ID) (bool, error)
}

// Service handles page category business logic.
type Service struct {
	*domain.CatalogService[*PageCategory]
	repo     Repository
	pages    Checker
	products Checker
}

// NewService creates the page category service. pages verifies the
// brand page binding, products verifies product assignments.
func NewService(repo Repository, pages, products Checker, txManager tx.Manager, log *logger.Logger) *Service {
	svc := &Service{
		CatalogService: domain.NewCatalogService[*PageCategory]("page category", repo, txManager, log),
		repo:           repo,
		pages:          pages,
		products:       products,
	}

	// Slugs are unique within one brand page, not globally.
	checkSlug := func(ctx context.Context, item *PageCategory) error {
		taken, err := repo.SlugTakenInPage(ctx, item.PageID, item.Slug, item.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperror.Duplicate("page category", "slug", item.Slug)
		}
		return nil
	}
	svc.Hooks().Register(domain.BeforeUpdate, checkSlug)
	svc.Hooks().Register(domain.BeforeCreate, func(ctx context.Context, item *PageCategory) error {
		ok, err := pages.Exists(ctx, item.PageID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NotFound("brand page", item.PageID)
		}
		return checkSlug(ctx, item)
	})

	return svc
}

// ListByPage returns all categories of a brand page.
func (s *Service) ListByPage(ctx context.Context, pageID id.ID) ([]*PageCategory, error) {
	return s.repo.ListByPage(ctx, pageID)
}

// AssignProducts adds product references to a category. Every id must
// point at an existing product.
func (s *Service) AssignProducts(ctx context.Context, categoryID id.ID, productIDs []id.ID) (*PageCategory, error) {
	cat, err := s.GetByID(ctx, categoryID)
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
	cat.AssignProducts(productIDs)
	if err := s.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// RemoveProduct drops one product reference from a category.
func (s *Service) RemoveProduct(ctx context.Context, categoryID, productID id.ID) (*PageCategory, error) {
	cat, err := s.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	cat.RemoveProduct(productID)
	if err := s.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}
