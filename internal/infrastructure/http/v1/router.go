// Package v1 wires the HTTP API: middleware chain, route table and
// the public/authenticated split.
package v1

import (
	"github.com/gin-gonic/gin"

	"spottive/internal/infrastructure/http/v1/handlers"
	"spottive/internal/infrastructure/http/v1/middleware"
	"spottive/pkg/logger"
)

// RouterConfig bundles everything the route table needs.
type RouterConfig struct {
	Logger *logger.Logger
	Auth   middleware.TokenValidator

	Products   *handlers.ProductHandler
	Categories *handlers.CategoryHandler
	BrandPages *handlers.BrandPageHandler
	Pages      *handlers.PageHandler
	AuthH      *handlers.AuthHandler
	Upload     *handlers.UploadHandler
	Health     *handlers.HealthHandler
	Audit      *handlers.AuditHandler
	Live       *handlers.LiveHandler
}

// NewRouter builds the gin engine. Reads and the live feed are public;
// every mutation requires a bearer token.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(cfg.Logger),
		middleware.Trace(),
		middleware.Logger(cfg.Logger),
		middleware.ErrorHandler(cfg.Logger),
	)

	authed := middleware.Auth(cfg.Auth)

	router.GET("/health/live", cfg.Health.Live)
	router.GET("/health/ready", cfg.Health.Ready)
	router.GET("/health/info", cfg.Health.Info)

	api := router.Group("/api/v1")

	api.POST("/auth/login", cfg.AuthH.Login)
	api.GET("/live", cfg.Live.Serve)

	products := api.Group("/products")
	{
		products.GET("", cfg.Products.List)
		products.GET("/snapshot", cfg.Products.Snapshot)
		products.GET("/:id", cfg.Products.Get)
		products.POST("", authed, cfg.Products.Create)
		products.PUT("/:id", authed, cfg.Products.Update)
		products.DELETE("/:id", authed, cfg.Products.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", cfg.Categories.List)
		categories.GET("/slug/:slug", cfg.Categories.GetBySlug)
		categories.GET("/:id", cfg.Categories.Get)
		categories.POST("", authed, cfg.Categories.Create)
		categories.PUT("/:id", authed, cfg.Categories.Update)
		categories.DELETE("/:id", authed, cfg.Categories.Delete)
		categories.POST("/:id/subcategories", authed, cfg.Categories.AddSubcategory)
		categories.PUT("/:id/subcategories/:subId", authed, cfg.Categories.UpdateSubcategory)
		categories.DELETE("/:id/subcategories/:subId", authed, cfg.Categories.RemoveSubcategory)
	}

	brandPages := api.Group("/brand-pages")
	{
		brandPages.GET("", cfg.BrandPages.List)
		brandPages.GET("/slug/:slug", cfg.BrandPages.GetBySlug)
		brandPages.GET("/:id", cfg.BrandPages.Get)
		brandPages.POST("", authed, cfg.BrandPages.Create)
		brandPages.PUT("/:id", authed, cfg.BrandPages.Update)
		brandPages.DELETE("/:id", authed, cfg.BrandPages.Delete)
	}

	pages := api.Group("/pages/:pageId")
	{
		pages.GET("/products", cfg.Pages.ListProducts)
		pages.POST("/products", authed, cfg.Pages.SetProducts)

		pages.GET("/categories", cfg.Pages.ListCategories)
		pages.POST("/categories", authed, cfg.Pages.CreateCategory)
		pages.PUT("/categories/:id", authed, cfg.Pages.UpdateCategory)
		pages.DELETE("/categories/:id", authed, cfg.Pages.DeleteCategory)
		pages.POST("/categories/:id/products", authed, cfg.Pages.AssignCategoryProducts)
		pages.DELETE("/categories/:id/products/:productId", authed, cfg.Pages.RemoveCategoryProduct)

		pages.GET("/subcategories", cfg.Pages.ListSubcategories)
		pages.POST("/subcategories", authed, cfg.Pages.CreateSubcategory)
		pages.PUT("/subcategories/:id", authed, cfg.Pages.UpdateSubcategory)
		pages.DELETE("/subcategories/:id", authed, cfg.Pages.DeleteSubcategory)
		pages.POST("/subcategories/:id/products", authed, cfg.Pages.AssignSubcategoryProducts)
		pages.DELETE("/subcategories/:id/products/:productId", authed, cfg.Pages.RemoveSubcategoryProduct)
	}

	api.POST("/upload", authed, cfg.Upload.Upload)
	api.GET("/audit", authed, cfg.Audit.List)

	return router
}
