package catalogrepo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"spottive/internal/core/apperror"
	"spottive/internal/core/id"
	"spottive/internal/domain/catalogs/pagecategory"
	"spottive/internal/domain/catalogs/pagesubcategory"
	"spottive/internal/infrastructure/storage/postgres"
)

// PageCategoryRepo persists brand page categories.
type PageCategoryRepo struct {
	*BaseCatalogRepo[*pagecategory.PageCategory]
}

// NewPageCategoryRepo creates the page category repository.
func NewPageCategoryRepo(txManager *postgres.TxManager) *PageCategoryRepo {
	return &PageCategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txManager, "page_categories", "page category",
			func() *pagecategory.PageCategory { return &pagecategory.PageCategory{} }),
	}
}

var _ pagecategory.Repository = (*PageCategoryRepo)(nil)

// ListByPage returns all categories of one brand page, oldest first so
// the storefront renders sections in creation order.
func (r *PageCategoryRepo) ListByPage(ctx context.Context, pageID id.ID) ([]*pagecategory.PageCategory, error) {
	query, args, err := r.builder.
		Select(r.columns...).
		From(r.table).
		Where(sq.Eq{"page_id": pageID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, apperror.Internal("failed to build list", err)
	}

	items := []*pagecategory.PageCategory{}
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, query, args...); err != nil {
		return nil, apperror.Database("failed to list page categories", err)
	}
	return items, nil
}

// SlugTakenInPage reports whether another category of the same page
// uses the slug.
func (r *PageCategoryRepo) SlugTakenInPage(ctx context.Context, pageID id.ID, slug string, excludeID id.ID) (bool, error) {
	return slugTakenInPage(ctx, r.querier(ctx), r.builder, r.table, pageID, slug, excludeID)
}

// PageSubcategoryRepo persists brand page subcategories.
type PageSubcategoryRepo struct {
	*BaseCatalogRepo[*pagesubcategory.PageSubcategory]
}

// NewPageSubcategoryRepo creates the page subcategory repository.
func NewPageSubcategoryRepo(txManager *postgres.TxManager) *PageSubcategoryRepo {
	return &PageSubcategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txManager, "page_subcategories", "page subcategory",
			func() *pagesubcategory.PageSubcategory { return &pagesubcategory.PageSubcategory{} }),
	}
}

var _ pagesubcategory.Repository = (*PageSubcategoryRepo)(nil)

// ListByPage returns all subcategories of one brand page.
func (r *PageSubcategoryRepo) ListByPage(ctx context.Context, pageID id.ID) ([]*pagesubcategory.PageSubcategory, error) {
	return r.listWhere(ctx, sq.Eq{"page_id": pageID})
}

// ListByParent returns the subcategories nested under one page category.
func (r *PageSubcategoryRepo) ListByParent(ctx context.Context, parentCategoryID id.ID) ([]*pagesubcategory.PageSubcategory, error) {
	return r.listWhere(ctx, sq.Eq{"parent_category_id": parentCategoryID})
}

// SlugTakenInPage reports whether another subcategory of the same page
// uses the slug.
func (r *PageSubcategoryRepo) SlugTakenInPage(ctx context.Context, pageID id.ID, slug string, excludeID id.ID) (bool, error) {
	return slugTakenInPage(ctx, r.querier(ctx), r.builder, r.table, pageID, slug, excludeID)
}

func (r *PageSubcategoryRepo) listWhere(ctx context.Context, cond sq.Eq) ([]*pagesubcategory.PageSubcategory, error) {
	query, args, err := r.builder.
		Select(r.columns...).
		From(r.table).
		Where(cond).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, apperror.Internal("failed to build list", err)
	}

	items := []*pagesubcategory.PageSubcategory{}
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, query, args...); err != nil {
		return nil, apperror.Database("failed to list page subcategories", err)
	}
	return items, nil
}

func slugTakenInPage(
	ctx context.Context,
	q postgres.Querier,
	builder sq.StatementBuilderType,
	table string,
	pageID id.ID,
	slug string,
	excludeID id.ID,
) (bool, error) {
	query, args, err := builder.
		Select("1").
		From(table).
		Where(sq.Eq{"page_id": pageID, "slug": slug}).
		Where(sq.NotEq{"id": excludeID}).
		ToSql()
	if err != nil {
		return false, apperror.Internal("failed to build slug check", err)
	}

	var one int
	err = q.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Database("failed to check slug", err)
	}
	return true, nil
}
