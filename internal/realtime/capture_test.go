package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spottive/internal/core/id"
	"spottive/internal/domain/events"
	"spottive/internal/infrastructure/storage/postgres"
)

func TestEntryToChange(t *testing.T) {
	p := testProduct("PTZ Camera")
	payload, err := json.Marshal(p)
	require.NoError(t, err)

	t.Run("created", func(t *testing.T) {
		change, err := entryToChange(postgres.OutboxEntry{
			Kind:     postgres.OutboxCreated,
			EntityID: p.ID,
			Payload:  payload,
		})
		require.NoError(t, err)
		assert.Equal(t, events.KindCreated, change.Kind)
		require.NotNil(t, change.Item)
		assert.Equal(t, p.ID, change.Item.ID)
		assert.Equal(t, "PTZ Camera", change.Item.Name)
	})

	t.Run("updated", func(t *testing.T) {
		change, err := entryToChange(postgres.OutboxEntry{
			Kind:     postgres.OutboxUpdated,
			EntityID: p.ID,
			Payload:  payload,
		})
		require.NoError(t, err)
		assert.Equal(t, events.KindUpdated, change.Kind)
		require.NotNil(t, change.Item)
	})

	t.Run("deleted carries only the id", func(t *testing.T) {
		deletedID := id.New()
		change, err := entryToChange(postgres.OutboxEntry{
			Kind:     postgres.OutboxDeleted,
			EntityID: deletedID,
		})
		require.NoError(t, err)
		assert.Equal(t, events.KindDeleted, change.Kind)
		require.NotNil(t, change.ID)
		assert.Equal(t, deletedID, *change.ID)
		assert.Nil(t, change.Item)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := entryToChange(postgres.OutboxEntry{
			Kind:    postgres.OutboxCreated,
			Payload: []byte("{not json"),
		})
		assert.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := entryToChange(postgres.OutboxEntry{Kind: "truncated"})
		assert.Error(t, err)
	})
}
