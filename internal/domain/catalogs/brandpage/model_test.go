package brandpage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spottive/internal/core/id"
)

func TestSetProductsReplaces(t *testing.T) {
	page := New("Hikvision")
	first, second, third := id.New(), id.New(), id.New()

	page.SetProducts([]id.ID{first, second})
	assert.Equal(t, []id.ID{first, second}, page.Products)

	page.SetProducts([]id.ID{third})
	assert.Equal(t, []id.ID{third}, page.Products)

	page.SetProducts(nil)
	assert.Empty(t, page.Products)
}

func TestSetProductsDropsDuplicates(t *testing.T) {
	page := New("Dahua")
	pid := id.New()

	page.SetProducts([]id.ID{pid, pid, pid})
	assert.Equal(t, []id.ID{pid}, page.Products)
}
