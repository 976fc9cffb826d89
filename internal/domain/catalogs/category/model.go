// Package category defines back-office product categories and their
// embedded subcategories.
package category

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"spottive/internal/core/apperror"
	"spottive/internal/core/entity"
	"spottive/internal/core/id"
	"spottive/internal/core/slug"
)

// Subcategory is a named subdivision of a category. Subcategories are
// embedded in their category row, not stored separately.
type Subcategory struct {
	ID   id.ID  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SubcategoryList is stored as a JSONB column.
type SubcategoryList []Subcategory

// Value implements driver.Valuer.
func (l SubcategoryList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *SubcategoryList) Scan(src any) error {
	if src == nil {
		*l = SubcategoryList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SubcategoryList", src)
	}
	return json.Unmarshal(data, l)
}

// Category groups products in the back office.
type Category struct {
	entity.Slugged
	Description   *string         `db:"description" json:"description,omitempty"`
	Subcategories SubcategoryList `db:"subcategories" json:"subcategories"`
}

// New creates a category with a derived slug and no subcategories.
func New(name string) *Category {
	return &Category{
		Slugged:       entity.NewSlugged(name),
		Subcategories: SubcategoryList{},
	}
}

// Validate checks the category and its subcategories.
func (c *Category) Validate(ctx context.Context) error {
	if err := c.Slugged.Validate(ctx); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.Subcategories))
	for _, sub := range c.Subcategories {
		if sub.Name == "" {
			return apperror.Validation("subcategory name is required")
		}
		if _, dup := seen[sub.Slug]; dup {
			return apperror.Duplicate("subcategory", "slug", sub.Slug)
		}
		seen[sub.Slug] = struct{}{}
	}
	return nil
}

// AddSubcategory appends a subcategory, rejecting duplicate slugs
// within the category.
func (c *Category) AddSubcategory(name string) (*Subcategory, error) {
	if name == "" {
		return nil, apperror.Validation("subcategory name is required")
	}
	newSlug := slug.Make(name)
	for _, sub := range c.Subcategories {
		if sub.Slug == newSlug {
			return nil, apperror.Duplicate("subcategory", "slug", newSlug)
		}
	}
	sub := Subcategory{ID: id.New(), Name: name, Slug: newSlug}
	c.Subcategories = append(c.Subcategories, sub)
	return &sub, nil
}

// RenameSubcategory renames a subcategory and re-derives its slug,
// rejecting a slug already taken by a sibling.
func (c *Category) RenameSubcategory(subID id.ID, name string) (*Subcategory, error) {
	if name == "" {
		return nil, apperror.Validation("subcategory name is required")
	}
	sub := c.FindSubcategory(subID)
	if sub == nil {
		return nil, apperror.NotFound("subcategory", subID)
	}
	newSlug := slug.Make(name)
	for _, other := range c.Subcategories {
		if other.ID != subID && other.Slug == newSlug {
			return nil, apperror.Duplicate("subcategory", "slug", newSlug)
		}
	}
	sub.Name = name
	sub.Slug = newSlug
	return sub, nil
}

// RemoveSubcategory removes the subcategory with the given id.
func (c *Category) RemoveSubcategory(subID id.ID) error {
	for i, sub := range c.Subcategories {
		if sub.ID == subID {
			c.Subcategories = append(c.Subcategories[:i], c.Subcategories[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("subcategory", subID)
}

// FindSubcategory returns the subcategory with the given id, or nil.
func (c *Category) FindSubcategory(subID id.ID) *Subcategory {
	for i := range c.Subcategories {
		if c.Subcategories[i].ID == subID {
			return &c.Subcategories[i]
		}
	}
	return nil
}
