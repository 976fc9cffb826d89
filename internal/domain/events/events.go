// Package events defines the change notifications that flow from the
// store mutation log, through the fan-out hub, to connected clients.
package events

import (
	"encoding/json"
	"fmt"

	"spottive/internal/core/id"
	"spottive/internal/domain/catalogs/product"
)

// Kind discriminates the change union.
type Kind string

const (
	// KindCreated carries the newly created product.
	KindCreated Kind = "created"
	// KindUpdated carries the full post-update product.
	KindUpdated Kind = "updated"
	// KindDeleted carries only the deleted product's id.
	KindDeleted Kind = "deleted"
	// KindRefresh carries a full catalog snapshot, newest first.
	KindRefresh Kind = "refresh"
)

// Change is one notification on the live feed. Exactly the fields
// implied by Kind are set; the rest are zero.
type Change struct {
	Kind  Kind               `json:"kind"`
	Item  *product.Product   `json:"item,omitempty"`
	ID    *id.ID             `json:"id,omitempty"`
	Items []*product.Product `json:"items,omitempty"`
}

// MarshalJSON writes only the fields implied by Kind. A refresh always
// carries "items", even when the snapshot is empty.
func (c Change) MarshalJSON() ([]byte, error) {
	type wire struct {
		Kind  Kind               `json:"kind"`
		Item  *product.Product   `json:"item,omitempty"`
		ID    *id.ID             `json:"id,omitempty"`
		Items []*product.Product `json:"items"`
	}
	if c.Kind == KindRefresh {
		items := c.Items
		if items == nil {
			items = []*product.Product{}
		}
		return json.Marshal(wire{Kind: c.Kind, Items: items})
	}
	type slim struct {
		Kind Kind             `json:"kind"`
		Item *product.Product `json:"item,omitempty"`
		ID   *id.ID           `json:"id,omitempty"`
	}
	return json.Marshal(slim{Kind: c.Kind, Item: c.Item, ID: c.ID})
}

// Created builds a creation notification.
func Created(p *product.Product) Change {
	return Change{Kind: KindCreated, Item: p}
}

// Updated builds an update notification with the post-update state.
func Updated(p *product.Product) Change {
	return Change{Kind: KindUpdated, Item: p}
}

// Deleted builds a deletion notification.
func Deleted(productID id.ID) Change {
	return Change{Kind: KindDeleted, ID: &productID}
}

// Refresh builds a full-snapshot notification. Items must already be
// sorted newest first.
func Refresh(items []*product.Product) Change {
	if items == nil {
		items = []*product.Product{}
	}
	return Change{Kind: KindRefresh, Items: items}
}

// Validate checks that the change is well-formed for its kind.
func (c Change) Validate() error {
	switch c.Kind {
	case KindCreated, KindUpdated:
		if c.Item == nil {
			return fmt.Errorf("%s change without item", c.Kind)
		}
	case KindDeleted:
		if c.ID == nil || id.IsNil(*c.ID) {
			return fmt.Errorf("deleted change without id")
		}
	case KindRefresh:
		if c.Items == nil {
			return fmt.Errorf("refresh change without items")
		}
	default:
		return fmt.Errorf("unknown change kind %q", c.Kind)
	}
	return nil
}

// Decode parses a change from its wire form and validates it.
func Decode(data []byte) (Change, error) {
	var c Change
	if err := json.Unmarshal(data, &c); err != nil {
		return Change{}, fmt.Errorf("decode change: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Change{}, err
	}
	return c, nil
}
