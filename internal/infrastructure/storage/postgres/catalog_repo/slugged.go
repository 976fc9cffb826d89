package catalogrepo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"spottive/internal/core/apperror"
	"spottive/internal/core/id"
	"spottive/internal/domain"
	"spottive/internal/infrastructure/storage/postgres"
)

// SluggedCatalogRepo extends BaseCatalogRepo with slug lookups for
// entities carrying a unique slug column.
type SluggedCatalogRepo[T domain.SluggedEntity] struct {
	*BaseCatalogRepo[T]
}

// NewSluggedCatalogRepo creates a slug-aware repository.
func NewSluggedCatalogRepo[T domain.SluggedEntity](
	txManager *postgres.TxManager,
	table string,
	entityName string,
	newItem func() T,
) *SluggedCatalogRepo[T] {
	return &SluggedCatalogRepo[T]{
		BaseCatalogRepo: NewBaseCatalogRepo(txManager, table, entityName, newItem),
	}
}

// GetBySlug fetches one entity by its slug.
func (r *SluggedCatalogRepo[T]) GetBySlug(ctx context.Context, slug string) (T, error) {
	var zero T

	query, args, err := r.builder.
		Select(r.columns...).
		From(r.table).
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return zero, apperror.Internal("failed to build select", err)
	}

	item := r.newItem()
	if err := pgxscan.Get(ctx, r.querier(ctx), item, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperror.NotFound(r.entityName, slug)
		}
		return zero, apperror.Database("failed to fetch "+r.entityName, err)
	}
	return item, nil
}

// SlugTaken reports whether another entity already uses the slug.
func (r *SluggedCatalogRepo[T]) SlugTaken(ctx context.Context, slug string, excludeID id.ID) (bool, error) {
	query, args, err := r.builder.
		Select("1").
		From(r.table).
		Where(sq.Eq{"slug": slug}).
		Where(sq.NotEq{"id": excludeID}).
		ToSql()
	if err != nil {
		return false, apperror.Internal("failed to build slug check", err)
	}

	var one int
	err = r.querier(ctx).QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Database("failed to check slug", err)
	}
	return true, nil
}
