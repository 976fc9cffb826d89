package livefeed

import (
	"sync"

	"spottive/internal/domain/catalogs/product"
	"spottive/internal/domain/events"
)

// List is a local product list kept converged with the server by
// applying feed changes. It is safe for concurrent use.
type List struct {
	mu      sync.RWMutex
	items   []*product.Product
	loading bool
}

// NewList creates a List in the loading state. It leaves loading once
// the first snapshot arrives, either from the initial fetch or from a
// refresh notification.
func NewList() *List {
	return &List{loading: true}
}

// SetSnapshot replaces the whole list, e.g. with the initial fetch.
func (l *List) SetSnapshot(items []*product.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]*product.Product(nil), items...)
	l.loading = false
}

// SeedSnapshot installs the initial snapshot only while the list is
// still loading, reporting whether it was applied. A slow initial
// fetch must not roll back state a live refresh already delivered.
func (l *List) SeedSnapshot(items []*product.Product) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loading {
		return false
	}
	l.items = append([]*product.Product(nil), items...)
	l.loading = false
	return true
}

// Apply reconciles one feed change into the list:
//   - created prepends the product, keeping newest-first order;
//   - updated replaces the matching product and drops the change when
//     nothing matches;
//   - deleted removes the matching product and is a no-op otherwise;
//   - refresh replaces the whole list with the snapshot.
func (l *List) Apply(change events.Change) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch change.Kind {
	case events.KindCreated:
		if change.Item != nil {
			l.items = append([]*product.Product{change.Item}, l.items...)
		}
	case events.KindUpdated:
		if change.Item == nil {
			return
		}
		for i, item := range l.items {
			if item.ID == change.Item.ID {
				l.items[i] = change.Item
			}
		}
	case events.KindDeleted:
		if change.ID == nil {
			return
		}
		kept := l.items[:0]
		for _, item := range l.items {
			if item.ID != *change.ID {
				kept = append(kept, item)
			}
		}
		l.items = kept
	case events.KindRefresh:
		l.items = append([]*product.Product(nil), change.Items...)
		l.loading = false
	}
}

// Items returns a copy of the current list.
func (l *List) Items() []*product.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*product.Product(nil), l.items...)
}

// Len returns the current list length.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Loading reports whether the list is still waiting for its first
// snapshot.
func (l *List) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}
