package entity

import (
	"context"

	"spottive/internal/core/apperror"
	"spottive/internal/core/slug"
)

// Slugged is embedded in entities addressed by a URL slug derived
// from their display name (categories, brand pages, page sections).
type Slugged struct {
	Base
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// NewSlugged creates a Slugged base from a display name. The slug is
// derived immediately so callers never persist an entity without one.
func NewSlugged(name string) Slugged {
	return Slugged{
		Base: NewBase(),
		Name: name,
		Slug: slug.Make(name),
	}
}

// Rename updates the name and re-derives the slug.
func (s *Slugged) Rename(name string) {
	s.Name = name
	s.Slug = slug.Make(name)
}

// GetSlug returns the slug.
func (s *Slugged) GetSlug() string {
	return s.Slug
}

// Validate checks the invariants shared by all slugged entities.
func (s *Slugged) Validate(_ context.Context) error {
	if s.Name == "" {
		return apperror.Validation("name is required")
	}
	if s.Slug == "" {
		return apperror.Validation("name must contain at least one letter or digit")
	}
	return nil
}
