// Package catalogrepo implements the catalog repositories on Postgres
// using squirrel for SQL generation and scany for row mapping.
package catalogrepo

import (
	"context"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"spottive/internal/core/apperror"
	"spottive/internal/core/entity"
	"spottive/internal/core/id"
	"spottive/internal/domain"
	"spottive/internal/infrastructure/storage/postgres"
)

const (
	pgUniqueViolation = "23505"

	defaultLimit = 50
	maxLimit     = 500
)

// BaseCatalogRepo implements domain.CatalogRepository for one entity
// type. Columns are derived from the entity's db tags, so the struct
// is the single source of truth for the table shape.
type BaseCatalogRepo[T entity.Validatable] struct {
	txManager  *postgres.TxManager
	table      string
	entityName string
	columns    []string
	newItem    func() T
	builder    sq.StatementBuilderType
}

// NewBaseCatalogRepo creates a repository for one table. newItem must
// return a fresh, scannable entity.
func NewBaseCatalogRepo[T entity.Validatable](
	txManager *postgres.TxManager,
	table string,
	entityName string,
	newItem func() T,
) *BaseCatalogRepo[T] {
	return &BaseCatalogRepo[T]{
		txManager:  txManager,
		table:      table,
		entityName: entityName,
		columns:    postgres.ExtractDBColumns(newItem()),
		newItem:    newItem,
		builder:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts the entity.
func (r *BaseCatalogRepo[T]) Create(ctx context.Context, item T) error {
	values, err := postgres.StructToMap(item)
	if err != nil {
		return apperror.Internal("failed to map entity", err)
	}

	query, args, err := r.builder.
		Insert(r.table).
		SetMap(values).
		ToSql()
	if err != nil {
		return apperror.Internal("failed to build insert", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, query, args...); err != nil {
		return r.wrapWriteError(err, item.GetID())
	}
	return nil
}

// GetByID fetches one entity by id.
func (r *BaseCatalogRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	var zero T

	query, args, err := r.builder.
		Select(r.columns...).
		From(r.table).
		Where(sq.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return zero, apperror.Internal("failed to build select", err)
	}

	item := r.newItem()
	if err := pgxscan.Get(ctx, r.querier(ctx), item, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperror.NotFound(r.entityName, entityID)
		}
		return zero, apperror.Database("failed to fetch "+r.entityName, err)
	}
	return item, nil
}

// Update persists the entity with optimistic locking: the row is only
// written if its stored version matches the version the caller read.
func (r *BaseCatalogRepo[T]) Update(ctx context.Context, item T) error {
	expectedVersion := item.GetVersion()
	item.Touch()

	values, err := postgres.StructToMap(item)
	if err != nil {
		return apperror.Internal("failed to map entity", err)
	}
	delete(values, "id")
	delete(values, "created_at")

	query, args, err := r.builder.
		Update(r.table).
		SetMap(values).
		Where(sq.Eq{"id": item.GetID(), "version": expectedVersion}).
		ToSql()
	if err != nil {
		return apperror.Internal("failed to build update", err)
	}

	tag, err := r.querier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return r.wrapWriteError(err, item.GetID())
	}
	if tag.RowsAffected() == 0 {
		exists, existsErr := r.Exists(ctx, item.GetID())
		if existsErr == nil && !exists {
			return apperror.NotFound(r.entityName, item.GetID())
		}
		return apperror.ConcurrentModification(r.entityName, item.GetID())
	}
	return nil
}

// Delete removes the entity.
func (r *BaseCatalogRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	query, args, err := r.builder.
		Delete(r.table).
		Where(sq.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return apperror.Internal("failed to build delete", err)
	}

	tag, err := r.querier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperror.Database("failed to delete "+r.entityName, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound(r.entityName, entityID)
	}
	return nil
}

// List returns a filtered page plus the unpaged total.
func (r *BaseCatalogRepo[T]) List(ctx context.Context, filter domain.ListFilter) (*domain.ListResult[T], error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	base := r.builder.Select().From(r.table)
	base = r.applyFilter(base, filter)

	countQuery, countArgs, err := base.Column("count(*)").ToSql()
	if err != nil {
		return nil, apperror.Internal("failed to build count", err)
	}

	var total int
	if err := r.querier(ctx).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, apperror.Database("failed to count "+r.entityName, err)
	}

	listBuilder := r.applyFilter(r.builder.Select(r.columns...).From(r.table), filter).
		OrderBy(r.orderClause(filter)).
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, apperror.Internal("failed to build list", err)
	}

	items := []T{}
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, query, args...); err != nil {
		return nil, apperror.Database("failed to list "+r.entityName, err)
	}

	return &domain.ListResult[T]{
		Items:      items,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// Exists reports whether a row with the id exists.
func (r *BaseCatalogRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	query, args, err := r.builder.
		Select("1").
		From(r.table).
		Where(sq.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return false, apperror.Internal("failed to build exists", err)
	}

	var one int
	err = r.querier(ctx).QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Database("failed to check "+r.entityName, err)
	}
	return true, nil
}

func (r *BaseCatalogRepo[T]) applyFilter(b sq.SelectBuilder, filter domain.ListFilter) sq.SelectBuilder {
	if filter.Search != "" {
		b = b.Where(sq.ILike{"name": "%" + escapeLike(filter.Search) + "%"})
	}
	if len(filter.IDs) > 0 {
		b = b.Where(sq.Eq{"id": filter.IDs})
	}
	return b
}

// orderClause whitelists OrderBy against the entity's columns; unknown
// columns fall back to newest first.
func (r *BaseCatalogRepo[T]) orderClause(filter domain.ListFilter) string {
	column := "created_at"
	descending := true
	if filter.OrderBy != "" {
		for _, c := range r.columns {
			if c == filter.OrderBy {
				column = filter.OrderBy
				descending = filter.Descending
				break
			}
		}
	}
	if descending {
		return column + " DESC"
	}
	return column + " ASC"
}

func (r *BaseCatalogRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

func (r *BaseCatalogRepo[T]) wrapWriteError(err error, entityID id.ID) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		field := "id"
		if pgErr.ConstraintName != "" {
			field = pgErr.ConstraintName
		}
		return apperror.Duplicate(r.entityName, field, entityID)
	}
	return apperror.Database("failed to write "+r.entityName, err)
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
