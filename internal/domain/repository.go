// Package domain defines the contracts shared by all catalog entities.
package domain

import (
	"context"

	"spottive/internal/core/entity"
	"spottive/internal/core/id"
)

// ListFilter narrows and pages a catalog listing.
type ListFilter struct {
	// Search matches name case-insensitively (substring).
	Search string
	// IDs restricts the result to the given ids.
	IDs []id.ID
	// OrderBy is a whitelisted column name; empty means the
	// repository default (newest first).
	OrderBy string
	// Descending inverts the sort direction.
	Descending bool

	Limit  int
	Offset int
}

// ListResult is a page of entities plus the unpaged total.
type ListResult[T entity.Validatable] struct {
	Items      []T
	TotalCount int
	Limit      int
	Offset     int
}

// CatalogRepository is the persistence contract every catalog
// repository implements.
type CatalogRepository[T entity.Validatable] interface {
	Create(ctx context.Context, item T) error
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, entityID id.ID) error
	List(ctx context.Context, filter ListFilter) (*ListResult[T], error)
	Exists(ctx context.Context, entityID id.ID) (bool, error)
}

// SluggedRepository adds slug lookup for slug-addressed entities.
type SluggedRepository[T entity.Validatable] interface {
	CatalogRepository[T]
	GetBySlug(ctx context.Context, slug string) (T, error)
	SlugTaken(ctx context.Context, slug string, excludeID id.ID) (bool, error)
}
