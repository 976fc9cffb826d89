// Package brandpage defines manufacturer landing pages (e.g. a page
// per CCTV brand) that page categories hang off.
package brandpage

import (
	"spottive/internal/core/entity"
	"spottive/internal/core/id"
)

// BrandPage is a storefront landing page for one brand. Its slug is
// globally unique and forms the page URL. Products holds the ids
// featured directly on the page, outside any section.
type BrandPage struct {
	entity.Slugged
	Products []id.ID `db:"products" json:"products"`
}

// New creates a brand page with a derived slug.
func New(name string) *BrandPage {
	return &BrandPage{
		Slugged:  entity.NewSlugged(name),
		Products: []id.ID{},
	}
}

// SetProducts replaces the page-level product list, dropping
// duplicates while keeping first-seen order.
func (p *BrandPage) SetProducts(productIDs []id.ID) {
	seen := make(map[id.ID]struct{}, len(productIDs))
	next := make([]id.ID, 0, len(productIDs))
	for _, pid := range productIDs {
		if _, dup := seen[pid]; dup {
			continue
		}
		seen[pid] = struct{}{}
		next = append(next, pid)
	}
	p.Products = next
}
