package catalogrepo

import (
	"spottive/internal/domain/catalogs/brandpage"
	"spottive/internal/domain/catalogs/category"
	"spottive/internal/infrastructure/storage/postgres"
)

// CategoryRepo persists back-office categories with their embedded
// subcategories.
type CategoryRepo struct {
	*SluggedCatalogRepo[*category.Category]
}

// NewCategoryRepo creates the category repository.
func NewCategoryRepo(txManager *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		SluggedCatalogRepo: NewSluggedCatalogRepo(txManager, "categories", "category",
			func() *category.Category { return &category.Category{} }),
	}
}

var _ category.Repository = (*CategoryRepo)(nil)

// BrandPageRepo persists brand pages.
type BrandPageRepo struct {
	*SluggedCatalogRepo[*brandpage.BrandPage]
}

// NewBrandPageRepo creates the brand page repository.
func NewBrandPageRepo(txManager *postgres.TxManager) *BrandPageRepo {
	return &BrandPageRepo{
		SluggedCatalogRepo: NewSluggedCatalogRepo(txManager, "brand_pages", "brand page",
			func() *brandpage.BrandPage { return &brandpage.BrandPage{} }),
	}
}

var _ brandpage.Repository = (*BrandPageRepo)(nil)
