// Package entity holds the shared building blocks of catalog entities.
package entity

import (
	"context"
	"time"

	"spottive/internal/core/id"
)

// Base is embedded in every persisted entity.
type Base struct {
	ID        id.ID     `db:"id" json:"id"`
	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBase creates a Base with a fresh id and timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID returns the entity id.
func (b *Base) GetID() id.ID {
	return b.ID
}

// GetVersion returns the optimistic-locking version.
func (b *Base) GetVersion() int {
	return b.Version
}

// Touch bumps the version and update timestamp before a write.
func (b *Base) Touch() {
	b.Version++
	b.UpdatedAt = time.Now().UTC()
}

// Identifiable is implemented by anything carrying a Base.
type Identifiable interface {
	GetID() id.ID
	GetVersion() int
	Touch()
}

// Validatable is implemented by entities that validate themselves
// before persistence.
type Validatable interface {
	Identifiable
	Validate(ctx context.Context) error
}
