package product

import (
	"context"
	"testing"

	"spottive/internal/core/apperror"
)

func TestProductValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid product", func(t *testing.T) {
		p := New("Dome Camera 4MP", "CCTV", "Security Cameras")
		if err := p.Validate(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != StatusActive {
			t.Errorf("expected default status Active, got %s", p.Status)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		p := New("", "CCTV", "Security Cameras")
		err := p.Validate(ctx)
		if !apperror.IsCode(err, apperror.CodeValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("missing category", func(t *testing.T) {
		p := New("Dome Camera", "", "Security Cameras")
		if err := p.Validate(ctx); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("missing website category", func(t *testing.T) {
		p := New("Dome Camera", "CCTV", "")
		if err := p.Validate(ctx); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("empty status defaults to active", func(t *testing.T) {
		p := New("Dome Camera", "CCTV", "Security Cameras")
		p.Status = ""
		if err := p.Validate(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != StatusActive {
			t.Errorf("expected Active, got %s", p.Status)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		p := New("Dome Camera", "CCTV", "Security Cameras")
		p.Status = "Archived"
		if err := p.Validate(ctx); err == nil {
			t.Fatal("expected validation error")
		}
	})
}
