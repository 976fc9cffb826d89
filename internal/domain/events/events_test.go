package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spottive/internal/core/id"
	"spottive/internal/domain/catalogs/product"
)

func TestChangeWireFormat(t *testing.T) {
	p := product.New("Bullet Camera", "CCTV", "Security Cameras")

	t.Run("created carries the item", func(t *testing.T) {
		data, err := json.Marshal(Created(p))
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, KindCreated, got.Kind)
		require.NotNil(t, got.Item)
		assert.Equal(t, p.ID, got.Item.ID)
		assert.Equal(t, "Bullet Camera", got.Item.Name)
		assert.Nil(t, got.ID)
		assert.Nil(t, got.Items)
	})

	t.Run("deleted carries only the id", func(t *testing.T) {
		data, err := json.Marshal(Deleted(p.ID))
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, KindDeleted, got.Kind)
		require.NotNil(t, got.ID)
		assert.Equal(t, p.ID, *got.ID)
		assert.Nil(t, got.Item)
	})

	t.Run("refresh carries the snapshot", func(t *testing.T) {
		other := product.New("NVR 8ch", "Recorders", "Recorders")
		data, err := json.Marshal(Refresh([]*product.Product{other, p}))
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, KindRefresh, got.Kind)
		require.Len(t, got.Items, 2)
		assert.Equal(t, other.ID, got.Items[0].ID)
	})

	t.Run("empty refresh stays decodable", func(t *testing.T) {
		data, err := json.Marshal(Refresh(nil))
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		assert.NotNil(t, got.Items)
		assert.Len(t, got.Items, 0)
	})
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"unknown kind":         `{"kind":"archived"}`,
		"created without item": `{"kind":"created"}`,
		"deleted without id":   `{"kind":"deleted"}`,
		"not json":             `{kind}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestValidateDeletedNilID(t *testing.T) {
	nilID := id.Nil
	c := Change{Kind: KindDeleted, ID: &nilID}
	assert.Error(t, c.Validate())
}
