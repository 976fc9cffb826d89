package livefeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spottive/internal/core/id"
	"spottive/internal/domain/catalogs/product"
	"spottive/internal/domain/events"
)

func testProduct(name string) *product.Product {
	return product.New(name, "CCTV", "Security Cameras")
}

func names(items []*product.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Name
	}
	return out
}

func TestCreatedPrepends(t *testing.T) {
	l := NewList()
	l.SetSnapshot([]*product.Product{testProduct("old")})

	l.Apply(events.Created(testProduct("new")))

	assert.Equal(t, []string{"new", "old"}, names(l.Items()))
}

func TestCreatedDoesNotDeduplicate(t *testing.T) {
	l := NewList()
	p := testProduct("camera")
	l.SetSnapshot([]*product.Product{p})

	// The same creation delivered twice appears twice; the next
	// refresh collapses the duplicate.
	l.Apply(events.Created(p))
	assert.Equal(t, 2, l.Len())

	l.Apply(events.Refresh([]*product.Product{p}))
	assert.Equal(t, 1, l.Len())
}

func TestUpdatedReplacesMatch(t *testing.T) {
	l := NewList()
	p := testProduct("camera")
	other := testProduct("recorder")
	l.SetSnapshot([]*product.Product{other, p})

	renamed := *p
	renamed.Name = "camera v2"
	l.Apply(events.Updated(&renamed))

	assert.Equal(t, []string{"recorder", "camera v2"}, names(l.Items()))
}

func TestUpdatedWithoutMatchIsDropped(t *testing.T) {
	l := NewList()
	l.SetSnapshot([]*product.Product{testProduct("camera")})

	l.Apply(events.Updated(testProduct("unknown")))

	assert.Equal(t, []string{"camera"}, names(l.Items()))
}

func TestDeletedRemovesMatch(t *testing.T) {
	l := NewList()
	p := testProduct("camera")
	other := testProduct("recorder")
	l.SetSnapshot([]*product.Product{other, p})

	l.Apply(events.Deleted(p.ID))
	assert.Equal(t, []string{"recorder"}, names(l.Items()))

	// Unknown id is a no-op.
	l.Apply(events.Deleted(id.New()))
	assert.Equal(t, []string{"recorder"}, names(l.Items()))
}

func TestRefreshReplacesEverything(t *testing.T) {
	l := NewList()
	l.SetSnapshot([]*product.Product{testProduct("stale-a"), testProduct("stale-b")})

	fresh := []*product.Product{testProduct("fresh")}
	l.Apply(events.Refresh(fresh))

	assert.Equal(t, []string{"fresh"}, names(l.Items()))
}

func TestLoadingClearsOnFirstSnapshot(t *testing.T) {
	l := NewList()
	assert.True(t, l.Loading())

	l.Apply(events.Created(testProduct("early"))) // granular changes don't end loading
	assert.True(t, l.Loading())

	l.Apply(events.Refresh(nil))
	assert.False(t, l.Loading())
}

// A deletion lost on a congested feed leaves the list stale until the
// refresh after the next change converges it.
func TestMissedDeletionConvergesOnNextRefresh(t *testing.T) {
	l := NewList()
	ghost := testProduct("ghost")
	survivor := testProduct("survivor")
	l.SetSnapshot([]*product.Product{survivor, ghost})

	// The deleted(ghost) change is never delivered. The next change's
	// trailing refresh carries the authoritative state.
	created := testProduct("brand-new")
	l.Apply(events.Created(created))
	l.Apply(events.Refresh([]*product.Product{created, survivor}))

	got := names(l.Items())
	require.Equal(t, []string{"brand-new", "survivor"}, got)
	assert.NotContains(t, got, "ghost")
}

func TestItemsReturnsCopy(t *testing.T) {
	l := NewList()
	l.SetSnapshot([]*product.Product{testProduct("camera")})

	items := l.Items()
	items[0] = testProduct("mutated")

	assert.Equal(t, []string{"camera"}, names(l.Items()))
}

func TestSeedSnapshotAppliesWhileLoading(t *testing.T) {
	l := NewList()

	applied := l.SeedSnapshot([]*product.Product{testProduct("camera")})

	assert.True(t, applied)
	assert.False(t, l.Loading())
	assert.Equal(t, []string{"camera"}, names(l.Items()))
}

// A slow initial fetch finishing after a live refresh must not roll
// the list back to the older snapshot.
func TestSeedSnapshotSkippedAfterRefresh(t *testing.T) {
	l := NewList()
	l.Apply(events.Refresh([]*product.Product{testProduct("fresh")}))

	applied := l.SeedSnapshot([]*product.Product{testProduct("stale")})

	assert.False(t, applied)
	assert.Equal(t, []string{"fresh"}, names(l.Items()))
}
