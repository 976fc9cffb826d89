// Command seed creates the database schema and loads a starter
// catalog for local development.
package main

import (
	"context"
	"os"
	"time"

	"spottive/internal/domain/catalogs/brandpage"
	"spottive/internal/domain/catalogs/category"
	"spottive/internal/domain/catalogs/pagecategory"
	"spottive/internal/domain/catalogs/product"
	"spottive/internal/infrastructure/storage/postgres"
	catalogrepo "spottive/internal/infrastructure/storage/postgres/catalog_repo"
	"spottive/pkg/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		website_category TEXT NOT NULL,
		subcategory_id TEXT,
		status TEXT NOT NULL DEFAULT 'Active',
		description TEXT,
		image_url TEXT,
		asset_id TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_created_at ON products (created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		description TEXT,
		subcategories JSONB NOT NULL DEFAULT '[]'
	)`,

	`CREATE TABLE IF NOT EXISTS brand_pages (
		id UUID PRIMARY KEY,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		products UUID[] NOT NULL DEFAULT '{}'
	)`,

	`CREATE TABLE IF NOT EXISTS page_categories (
		id UUID PRIMARY KEY,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		page_id UUID NOT NULL REFERENCES brand_pages (id) ON DELETE CASCADE,
		description TEXT,
		products UUID[] NOT NULL DEFAULT '{}',
		UNIQUE (page_id, slug)
	)`,

	`CREATE TABLE IF NOT EXISTS page_subcategories (
		id UUID PRIMARY KEY,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		page_id UUID NOT NULL REFERENCES brand_pages (id) ON DELETE CASCADE,
		parent_category_id UUID NOT NULL REFERENCES page_categories (id) ON DELETE CASCADE,
		products UUID[] NOT NULL DEFAULT '{}',
		UNIQUE (page_id, slug)
	)`,

	`CREATE TABLE IF NOT EXISTS catalog_outbox (
		seq BIGSERIAL PRIMARY KEY,
		kind TEXT NOT NULL,
		entity_id UUID NOT NULL,
		payload JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		consumed_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_catalog_outbox_pending
		ON catalog_outbox (seq) WHERE consumed_at IS NULL`,

	`CREATE TABLE IF NOT EXISTS catalog_audit (
		id UUID PRIMARY KEY,
		entity_type TEXT NOT NULL,
		entity_id UUID NOT NULL,
		action TEXT NOT NULL,
		username TEXT NOT NULL,
		snapshot BYTEA,
		compressed BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_catalog_audit_created_at ON catalog_audit (created_at DESC)`,
}

func main() {
	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatalw("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{DSN: dsn})
	if err != nil {
		log.Fatalw("database connection failed", "error", err)
	}
	defer pool.Close()

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalw("schema statement failed", "error", err, "stmt", stmt[:60])
		}
	}
	log.Infow("schema ready")

	if os.Getenv("SEED_DATA") == "false" {
		return
	}

	txManager := postgres.NewTxManager(pool, postgres.TxManagerConfig{}, log)
	productRepo := catalogrepo.NewProductRepo(txManager)
	categoryRepo := catalogrepo.NewCategoryRepo(txManager)
	brandPageRepo := catalogrepo.NewBrandPageRepo(txManager)
	pageCategoryRepo := catalogrepo.NewPageCategoryRepo(txManager)

	// Idempotent: skip seeding when products already exist.
	existing, err := productRepo.Snapshot(ctx)
	if err != nil {
		log.Fatalw("seed check failed", "error", err)
	}
	if len(existing) > 0 {
		log.Infow("catalog already populated, skipping seed", "products", len(existing))
		return
	}

	err = txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		cctv := category.New("CCTV")
		if _, err := cctv.AddSubcategory("Dome Cameras"); err != nil {
			return err
		}
		if _, err := cctv.AddSubcategory("Bullet Cameras"); err != nil {
			return err
		}
		networking := category.New("Networking")
		if _, err := networking.AddSubcategory("Switches"); err != nil {
			return err
		}
		for _, c := range []*category.Category{cctv, networking} {
			if err := categoryRepo.Create(txCtx, c); err != nil {
				return err
			}
		}

		for _, name := range []string{"Hikvision", "Dahua", "Uniview"} {
			page := brandpage.New(name)
			if err := brandPageRepo.Create(txCtx, page); err != nil {
				return err
			}
			section := pagecategory.New("Featured Products", page.ID)
			if err := pageCategoryRepo.Create(txCtx, section); err != nil {
				return err
			}
		}

		samples := []*product.Product{
			product.New("4MP Fixed Dome Camera", "CCTV", "Security Cameras"),
			product.New("8MP Bullet Camera", "CCTV", "Security Cameras"),
			product.New("16-Channel NVR", "CCTV", "Recorders"),
			product.New("24-Port PoE Switch", "Networking", "Switches"),
		}
		samples[0].Status = product.StatusFeatured
		samples[1].Status = product.StatusNew
		for _, p := range samples {
			if err := productRepo.Create(txCtx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalw("seed failed", "error", err)
	}
	log.Infow("seed complete")
}
