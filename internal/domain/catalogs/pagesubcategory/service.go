package pagesubcategory

import (
	"context"

	"spottive/internal/core/apperror"
	"spottive/internal/core/id"
	"spottive/internal/core/tx"
	"spottive/internal/domain"
	"spottive/pkg/logger"
)

// Repository is the persistence contract for page subcategories.
type Repository interface {
	domain.CatalogRepository[*PageSubcategory]
	// ListByPage returns all subcategories of one brand page.
	ListByPage(ctx context.Context, pageID id.ID) ([]*PageSubcategory, error)
	// ListByParent returns the subcategories nested under one page category.
	ListByParent(ctx context.Context, parentCategoryID id.ID) ([]*PageSubcategory, error)
	// SlugTakenInPage reports whether another subcategory of the same
	// page already uses the slug.
	SlugTakenInPage(ctx context.Context, pageID id.ID, slug string, excludeID id.ID) (bool, error)
}

// Checker verifies that a referenced entity exists.
type Checker interface {
	Exists(ctx context.Context, entityID id.ID) (bool, error)
}

// Service handles page subcategory business logic.
type Service struct {
	*domain.CatalogService[*PageSubcategory]
	repo     Repository
	parents  Checker
	products Checker
}

// NewService creates the page subcategory service. parents verifies
// the parent page category, products verifies product assignments.
func NewService(repo Repository, parents, products Checker, txManager tx.Manager, log *logger.Logger) *Service {
	svc := &Service{
		CatalogService: domain.NewCatalogService[*PageSubcategory]("page subcategory", repo, txManager, log),
		repo:           repo,
		parents:        parents,
		products:       products,
	}

	checkSlug := func(ctx context.Context, item *PageSubcategory) error {
		taken, err := repo.SlugTakenInPage(ctx, item.PageID, item.Slug, item.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperror.Duplicate("page subcategory", "slug", item.Slug)
		}
		return nil
	}
	svc.Hooks().Register(domain.BeforeUpdate, checkSlug)
	svc.Hooks().Register(domain.BeforeCreate, func(ctx context.Context, item *PageSubcategory) error {
		ok, err := parents.Exists(ctx, item.ParentCategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NotFound("page category", item.ParentCategoryID)
		}
		return checkSlug(ctx, item)
	})

	return svc
}

// ListByPage returns all subcategories of a brand page.
func (s *Service) ListByPage(ctx context.Context, pageID id.ID) ([]*PageSubcategory, error) {
	return s.repo.ListByPage(ctx, pageID)
}

// ListByParent returns the subcategories under one page category.
func (s *Service) ListByParent(ctx context.Context, parentCategoryID id.ID) ([]*PageSubcategory, error) {
	return s.repo.ListByParent(ctx, parentCategoryID)
}

// AssignProducts adds product references to a subcategory.
func (s *Service) AssignProducts(ctx context.Context, subcategoryID id.ID, productIDs []id.ID) (*PageSubcategory, error) {
	sub, err := s.GetByID(ctx, subcategoryID)
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
	sub.AssignProducts(productIDs)
	if err := s.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// RemoveProduct drops one product reference from a subcategory.
func (s *Service) RemoveProduct(ctx context.Context, subcategoryID, productID id.ID) (*PageSubcategory, error) {
	sub, err := s.GetByID(ctx, subcategoryID)
	if err != nil {
		return nil, err
	}
	sub.RemoveProduct(productID)
	if err := s.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}
