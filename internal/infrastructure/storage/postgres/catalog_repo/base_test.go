package catalogrepo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spottive/internal/core/id"
	"spottive/internal/domain"
	"spottive/internal/domain/catalogs/product"
)

func newTestRepo() *BaseCatalogRepo[*product.Product] {
	// txManager is only needed at query time; SQL generation is pure.
	return NewBaseCatalogRepo(nil, "products", "product",
		func() *product.Product { return &product.Product{} })
}

func TestColumnsDerivedFromTags(t *testing.T) {
	r := newTestRepo()
	assert.Contains(t, r.columns, "website_category")
	assert.Contains(t, r.columns, "subcategory_id")
	assert.Equal(t, "id", r.columns[0])
}

func TestOrderClause(t *testing.T) {
	r := newTestRepo()

	t.Run("default is newest first", func(t *testing.T) {
		assert.Equal(t, "created_at DESC", r.orderClause(domain.ListFilter{}))
	})

	t.Run("whitelisted column", func(t *testing.T) {
		assert.Equal(t, "name ASC", r.orderClause(domain.ListFilter{OrderBy: "name"}))
		assert.Equal(t, "name DESC", r.orderClause(domain.ListFilter{OrderBy: "name", Descending: true}))
	})

	t.Run("unknown column falls back", func(t *testing.T) {
		got := r.orderClause(domain.ListFilter{OrderBy: "name; DROP TABLE products"})
		assert.Equal(t, "created_at DESC", got)
	})
}

func TestApplyFilterSQL(t *testing.T) {
	r := newTestRepo()

	t.Run("search becomes escaped ILIKE", func(t *testing.T) {
		b := r.applyFilter(r.builder.Select("id").From("products"),
			domain.ListFilter{Search: "50% dome"})
		sql, args, err := b.ToSql()
		require.NoError(t, err)
		assert.True(t, strings.Contains(sql, "name ILIKE"), "sql: %s", sql)
		require.Len(t, args, 1)
		assert.Equal(t, `%50\% dome%`, args[0])
	})

	t.Run("id filter", func(t *testing.T) {
		ids := []id.ID{id.New(), id.New()}
		b := r.applyFilter(r.builder.Select("id").From("products"),
			domain.ListFilter{IDs: ids})
		sql, args, err := b.ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "id IN")
		assert.Len(t, args, 2)
	})
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `\%\_\\`, escapeLike(`%_\`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
