package domain

import (
	"context"

	"spottive/internal/core/apperror"
	"spottive/internal/core/entity"
)

// SluggedEntity is a catalog entity addressed by slug.
type SluggedEntity interface {
	entity.Validatable
	GetSlug() string
}

// GuardSlug registers create/update hooks that reject slugs already
// taken by another entity of the same type.
func GuardSlug[T SluggedEntity](svc *CatalogService[T], repo SluggedRepository[T], entityName string) {
	check := func(ctx context.Context, item T) error {
		taken, err := repo.SlugTaken(ctx, item.GetSlug(), item.GetID())
		if err != nil {
			return err
		}
		if taken {
			return apperror.Duplicate(entityName, "slug", item.GetSlug())
		}
		return nil
	}
	svc.Hooks().Register(BeforeCreate, check)
	svc.Hooks().Register(BeforeUpdate, check)
}
