package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spottive/internal/domain/catalogs/product"
)

func TestStructToMap(t *testing.T) {
	p := product.New("Dome Camera", "CCTV", "Security Cameras")
	desc := "4MP fixed dome"
	p.Description = &desc

	m, err := StructToMap(p)
	require.NoError(t, err)

	assert.Equal(t, p.ID, m["id"])
	assert.Equal(t, 1, m["version"])
	assert.Equal(t, "Dome Camera", m["name"])
	assert.Equal(t, "CCTV", m["category"])
	assert.Equal(t, "Security Cameras", m["website_category"])
	assert.Equal(t, &desc, m["description"])
	// untagged and json-only fields never leak into SQL
	assert.NotContains(t, m, "Name")
}

func TestStructToMapRejectsNonStruct(t *testing.T) {
	_, err := StructToMap(42)
	assert.Error(t, err)

	var p *product.Product
	_, err = StructToMap(p)
	assert.Error(t, err)
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns(&product.Product{})

	// embedded Base columns come first, in declaration order
	require.GreaterOrEqual(t, len(cols), 4)
	assert.Equal(t, []string{"id", "version", "created_at", "updated_at"}, cols[:4])
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "website_category")
	assert.Contains(t, cols, "asset_id")
}
