// Command server runs the catalog API: REST endpoints for the back
// office and storefront, plus the live change feed.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"spottive/internal/core/entity"
	"spottive/internal/domain"
	"spottive/internal/domain/auth"
	"spottive/internal/domain/catalogs/brandpage"
	"spottive/internal/domain/catalogs/category"
	"spottive/internal/domain/catalogs/pagecategory"
	"spottive/internal/domain/catalogs/pagesubcategory"
	"spottive/internal/domain/catalogs/product"
	"spottive/internal/infrastructure/assets"
	v1 "spottive/internal/infrastructure/http/v1"
	"spottive/internal/infrastructure/http/v1/handlers"
	"spottive/internal/infrastructure/storage/postgres"
	catalogrepo "spottive/internal/infrastructure/storage/postgres/catalog_repo"
	"spottive/internal/realtime"
	"spottive/pkg/logger"
)

type config struct {
	httpAddr        string
	databaseURL     string
	logLevel        string
	logDev          bool
	jwtSecret       string
	tokenTTL        time.Duration
	adminUsername   string
	adminPassword   string
	captureAttempts int
	shutdownTimeout time.Duration

	assetCloudName string
	assetAPIKey    string
	assetAPISecret string
	assetFolder    string
}

func loadConfig() config {
	return config{
		httpAddr:        getEnv("HTTP_ADDR", ":8080"),
		databaseURL:     mustEnv("DATABASE_URL"),
		logLevel:        getEnv("LOG_LEVEL", "info"),
		logDev:          getEnvBool("LOG_DEV", false),
		jwtSecret:       mustEnv("JWT_SECRET"),
		tokenTTL:        getEnvDuration("TOKEN_TTL", 12*time.Hour),
		adminUsername:   getEnv("ADMIN_USERNAME", "adeeb"),
		adminPassword:   getEnv("ADMIN_PASSWORD", "123"),
		captureAttempts: getEnvInt("CAPTURE_MAX_ATTEMPTS", 5),
		shutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),

		assetCloudName: getEnv("ASSET_CLOUD_NAME", ""),
		assetAPIKey:    getEnv("ASSET_API_KEY", ""),
		assetAPISecret: getEnv("ASSET_API_SECRET", ""),
		assetFolder:    getEnv("ASSET_FOLDER", "spottive"),
	}
}

func main() {
	cfg := loadConfig()

	log, err := logger.New(logger.Config{Level: cfg.logLevel, Development: cfg.logDev})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if !cfg.logDev {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{DSN: cfg.databaseURL})
	if err != nil {
		log.Fatalw("database connection failed", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool, postgres.TxManagerConfig{}, log)
	outbox := postgres.NewOutbox(txManager, log)
	audit := postgres.NewAudit(txManager, log)

	// Asset host is optional: without credentials, uploads return 503
	// and product deletion skips the remote cleanup.
	var assetClient *assets.Client
	if cfg.assetCloudName != "" {
		assetClient, err = assets.NewClient(assets.Config{
			CloudName: cfg.assetCloudName,
			APIKey:    cfg.assetAPIKey,
			APISecret: cfg.assetAPISecret,
			Folder:    cfg.assetFolder,
		}, log)
		if err != nil {
			log.Fatalw("asset host configuration invalid", "error", err)
		}
	} else {
		log.Warnw("asset host not configured, image uploads disabled")
	}

	productRepo := catalogrepo.NewProductRepo(txManager)
	categoryRepo := catalogrepo.NewCategoryRepo(txManager)
	brandPageRepo := catalogrepo.NewBrandPageRepo(txManager)
	pageCategoryRepo := catalogrepo.NewPageCategoryRepo(txManager)
	pageSubcategoryRepo := catalogrepo.NewPageSubcategoryRepo(txManager)

	productSvc := product.NewService(productRepo, txManager, log)
	categorySvc := category.NewService(categoryRepo, txManager, log)
	brandPageSvc := brandpage.NewService(brandPageRepo, productRepo, txManager, log)
	pageCategorySvc := pagecategory.NewService(pageCategoryRepo, brandPageRepo, productRepo, txManager, log)
	pageSubcategorySvc := pagesubcategory.NewService(pageSubcategoryRepo, pageCategoryRepo, productRepo, txManager, log)

	wireProductHooks(productSvc, outbox, audit, assetClient, log)
	registerAudit(categorySvc.CatalogService, audit, "category")
	registerAudit(brandPageSvc.CatalogService, audit, "brand_page")
	registerAudit(pageCategorySvc.CatalogService, audit, "page_category")
	registerAudit(pageSubcategorySvc.CatalogService, audit, "page_subcategory")

	creds, err := auth.NewCredentials(cfg.adminUsername, cfg.adminPassword)
	if err != nil {
		log.Fatalw("credential setup failed", "error", err)
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{Secret: cfg.jwtSecret, TokenTTL: cfg.tokenTTL})
	authSvc := auth.NewService(creds, jwtService, log)

	// One hub per process; everything that fans out goes through it.
	hub := realtime.NewHub(log)
	capture := realtime.NewCapture(pool, outbox, productRepo, hub, realtime.CaptureConfig{
		MaxAttempts: cfg.captureAttempts,
	}, log)
	go capture.Run(ctx)

	router := v1.NewRouter(v1.RouterConfig{
		Logger:     log,
		Auth:       jwtService,
		Products:   handlers.NewProductHandler(productSvc),
		Categories: handlers.NewCategoryHandler(categorySvc),
		BrandPages: handlers.NewBrandPageHandler(brandPageSvc),
		Pages:      handlers.NewPageHandler(brandPageSvc, pageCategorySvc, pageSubcategorySvc, productSvc),
		AuthH:      handlers.NewAuthHandler(authSvc),
		Upload:     handlers.NewUploadHandler(assetClient),
		Health:     handlers.NewHealthHandler(pool, hub),
		Audit:      handlers.NewAuditHandler(audit),
		Live:       handlers.NewLiveHandler(hub, log),
	})

	server := &http.Server{
		Addr:              cfg.httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("server listening", "addr", cfg.httpAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown incomplete", "error", err)
	}
}

// wireProductHooks attaches the mutation log, audit trail and asset
// cleanup to the product lifecycle. Outbox and audit run inside the
// mutating transaction; the asset cleanup runs after commit because a
// remote delete cannot be rolled back.
func wireProductHooks(
	svc *product.Service,
	outbox *postgres.Outbox,
	audit *postgres.Audit,
	assetClient *assets.Client,
	log *logger.Logger,
) {
	hooks := svc.Hooks()

	hooks.Register(domain.OnCreateTx, func(ctx context.Context, p *product.Product) error {
		if err := audit.Record(ctx, "create", "product", p.ID, p); err != nil {
			return err
		}
		return outbox.Append(ctx, postgres.OutboxCreated, p.ID, p)
	})
	hooks.Register(domain.OnUpdateTx, func(ctx context.Context, p *product.Product) error {
		if err := audit.Record(ctx, "update", "product", p.ID, p); err != nil {
			return err
		}
		return outbox.Append(ctx, postgres.OutboxUpdated, p.ID, p)
	})
	hooks.Register(domain.OnDeleteTx, func(ctx context.Context, p *product.Product) error {
		if err := audit.Record(ctx, "delete", "product", p.ID, p); err != nil {
			return err
		}
		return outbox.Append(ctx, postgres.OutboxDeleted, p.ID, nil)
	})

	hooks.Register(domain.AfterDelete, func(ctx context.Context, p *product.Product) error {
		if assetClient == nil || p.AssetID == nil {
			return nil
		}
		if err := assetClient.Destroy(ctx, *p.AssetID); err != nil {
			// The product is already gone; an orphaned image is not
			// worth failing over.
			log.WithContext(ctx).Warnw("asset cleanup failed",
				"asset_id", *p.AssetID,
				"error", err,
			)
		}
		return nil
	})
}

// registerAudit wires the audit trail into an entity lifecycle.
func registerAudit[T entity.Validatable](svc *domain.CatalogService[T], audit *postgres.Audit, entityType string) {
	svc.Hooks().Register(domain.OnCreateTx, func(ctx context.Context, item T) error {
		return audit.Record(ctx, "create", entityType, item.GetID(), item)
	})
	svc.Hooks().Register(domain.OnUpdateTx, func(ctx context.Context, item T) error {
		return audit.Record(ctx, "update", entityType, item.GetID(), item)
	})
	svc.Hooks().Register(domain.OnDeleteTx, func(ctx context.Context, item T) error {
		return audit.Record(ctx, "delete", entityType, item.GetID(), item)
	})
}

// --- env helpers ---

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
