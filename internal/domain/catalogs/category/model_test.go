package category

import (
	"context"
	"testing"

	"spottive/internal/core/apperror"
	"spottive/internal/core/id"
)

func TestAddSubcategory(t *testing.T) {
	c := New("CCTV")

	sub, err := c.AddSubcategory("Dome Cameras")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Slug != "dome-cameras" {
		t.Errorf("slug = %q, want dome-cameras", sub.Slug)
	}
	if len(c.Subcategories) != 1 {
		t.Fatalf("expected 1 subcategory, got %d", len(c.Subcategories))
	}

	// Same name again collides on slug.
	_, err = c.AddSubcategory("Dome  Cameras!")
	if !apperror.IsCode(err, apperror.CodeDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if len(c.Subcategories) != 1 {
		t.Errorf("duplicate add must not grow the list")
	}
}

func TestRemoveSubcategory(t *testing.T) {
	c := New("CCTV")
	sub, _ := c.AddSubcategory("Dome Cameras")
	c.AddSubcategory("Bullet Cameras")

	if err := c.RemoveSubcategory(sub.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Subcategories) != 1 {
		t.Fatalf("expected 1 subcategory after removal, got %d", len(c.Subcategories))
	}
	if c.FindSubcategory(sub.ID) != nil {
		t.Error("removed subcategory still findable")
	}

	if err := c.RemoveSubcategory(id.New()); !apperror.IsCode(err, apperror.CodeNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCategoryValidate(t *testing.T) {
	ctx := context.Background()

	c := New("")
	if err := c.Validate(ctx); !apperror.IsCode(err, apperror.CodeValidation) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}

	c = New("Networking")
	c.Subcategories = SubcategoryList{
		{ID: id.New(), Name: "Switches", Slug: "switches"},
		{ID: id.New(), Name: "Switches Again", Slug: "switches"},
	}
	if err := c.Validate(ctx); !apperror.IsCode(err, apperror.CodeDuplicate) {
		t.Errorf("expected duplicate error, got %v", err)
	}
}
