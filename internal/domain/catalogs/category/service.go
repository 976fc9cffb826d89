package category

import (
	"context"

	"spottive/internal/core/id"
	"spottive/internal/core/tx"
	"spottive/internal/domain"
	"spottive/pkg/logger"
)

// Repository is the persistence contract for categories.
type Repository interface {
	domain.SluggedRepository[*Category]
}

// Service handles category business logic, including the embedded
// subcategory lifecycle.
type Service struct {
	*domain.CatalogService[*Category]
	repo Repository
}

// NewService creates the category service with slug uniqueness
// enforced across all categories.
func NewService(repo Repository, txManager tx.Manager, log *logger.Logger) *Service {
	svc := &Service{
		CatalogService: domain.NewCatalogService[*Category]("category", repo, txManager, log),
		repo:           repo,
	}
	domain.GuardSlug(svc.CatalogService, repo, "category")
	return svc
}

// GetBySlug fetches a category by its slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// AddSubcategory appends a subcategory to the category and persists
// the change. Duplicate slugs within the category are rejected.
func (s *Service) AddSubcategory(ctx context.Context, categoryID id.ID, name string) (*Subcategory, error) {
	cat, err := s.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	sub, err := cat.AddSubcategory(name)
	if err != nil {
		return nil, err
	}
	if err := s.Update(ctx, cat); err != nil {
		return nil, err
	}
	return sub, nil
}

// RenameSubcategory renames a subcategory and persists the change.
func (s *Service) RenameSubcategory(ctx context.Context, categoryID, subID id.ID, name string) (*Subcategory, error) {
	cat, err := s.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	sub, err := cat.RenameSubcategory(subID, name)
	if err != nil {
		return nil, err
	}
	if err := s.Update(ctx, cat); err != nil {
		return nil, err
	}
	return sub, nil
}

// RemoveSubcategory removes a subcategory and persists the change.
func (s *Service) RemoveSubcategory(ctx context.Context, categoryID, subID id.ID) error {
	cat, err := s.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if err := cat.RemoveSubcategory(subID); err != nil {
		return err
	}
	return s.Update(ctx, cat)
}
