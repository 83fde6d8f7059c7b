package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/catalog"
	financeapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/finance"
	partnerapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/partner"
	printapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/printing"
	settingsapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/settings"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/auth"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/cache"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/config"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/logger"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/messaging"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/persistence"
	printinfra "github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/printing"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/storage"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/telemetry"
	"github.com/ceodigitcare/fastflow01-sub002/internal/interfaces/http/handler"
	"github.com/ceodigitcare/fastflow01-sub002/internal/interfaces/http/middleware"
	"github.com/ceodigitcare/fastflow01-sub002/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	_ "github.com/ceodigitcare/fastflow01-sub002/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Storefront Finance API
//	@version		1.0
//	@description	Catalog, contacts, ledger accounts, invoices and bills for small online stores

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.ConfigFor(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("Server exited gracefully")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return err
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx := context.Background()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Meter provider shutdown failed", zap.Error(err))
		}
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Tracer provider shutdown failed", zap.Error(err))
		}
	}()
	meter := meterProvider.Meter(cfg.Telemetry.ServiceName)

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log).Register(db.DB); err != nil {
		return err
	}
	log.Info("Database connected successfully")

	stores, err := cache.NewStoresFactory(cfg.Redis, cache.WithLogger(log)).Create(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Warn("Error closing cache stores", zap.Error(err))
		}
	}()

	var publisher shared.EventPublisher = shared.NoopPublisher{}
	if cfg.Messaging.Enabled {
		amqp := messaging.NewAMQPPublisher(cfg.Messaging.URL, cfg.Messaging.Exchange, messaging.WithLogger(log))
		defer func() {
			if err := amqp.Close(); err != nil {
				log.Warn("Error closing AMQP publisher", zap.Error(err))
			}
		}()
		instrumented, err := telemetry.NewInstrumentedPublisher(amqp, meter)
		if err != nil {
			return err
		}
		publisher = instrumented
	}

	tag, err := language.Parse(cfg.Printing.Language)
	if err != nil {
		log.Warn("Unknown printing language, using en-US", zap.String("language", cfg.Printing.Language))
		tag = language.AmericanEnglish
	}
	templates, err := printinfra.NewTemplateEngine(printinfra.WithLanguage(tag))
	if err != nil {
		return err
	}
	printOpts := []printapp.PrintServiceOption{printapp.WithLogger(log)}
	if cfg.Printing.PDFEnabled {
		renderer := printinfra.NewChromedpRenderer(&printinfra.ChromedpConfig{
			DefaultTimeout: cfg.Printing.RenderTimeout,
			RemoteURL:      cfg.Printing.ChromeURL,
			NoSandbox:      cfg.Printing.NoSandbox,
			Logger:         log,
		})
		defer func() {
			_ = renderer.Close()
		}()
		printOpts = append(printOpts, printapp.WithRenderer(renderer))
	}
	if cfg.Storage.Enabled {
		objects, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			return err
		}
		if err := objects.EnsureBucket(ctx); err != nil {
			return err
		}
		printOpts = append(printOpts, printapp.WithArchive(printinfra.NewReportArchive(objects,
			printinfra.WithArchiveLogger(log),
			printinfra.WithLinkExpiration(cfg.Storage.PresignExpiration),
		)))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	txnRepo := persistence.NewGormTransactionRepository(db.DB)
	docRepo := persistence.NewGormDocumentRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	contactService := partnerapp.NewContactService(contactRepo)
	settingsService := settingsapp.NewSettingsService(settingsRepo, log,
		settingsapp.WithDefaultCurrency(valueobject.Currency(cfg.Finance.DefaultCurrency)))
	accountService := financeapp.NewAccountService(accountRepo, txnRepo, stores.ChartCache, log)
	txnService := financeapp.NewTransactionService(txnRepo, accountRepo, accountService)
	docService := financeapp.NewDocumentService(docRepo, contactRepo, productRepo, settingsService,
		financeapp.WithIdempotencyStore(stores.Idempotency),
		financeapp.WithIdempotencyTTL(cfg.Idempotency.TTL),
		financeapp.WithEventPublisher(publisher),
		financeapp.WithLogger(log),
	)
	calculatorService := financeapp.NewCalculatorService(productService)
	printService := printapp.NewPrintService(accountService, docService, contactRepo, settingsService, templates, printOpts...)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return err
		}
	} else if err := engine.SetTrustedProxies(nil); err != nil {
		return err
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.Timeout(cfg.HTTP.WriteTimeout),
		middleware.HTTPMetrics(meter),
	)
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Close()
		engine.Use(middleware.RateLimit(limiter))
	}

	systemHandler := handler.NewSystemHandler(version, map[string]handler.HealthCheck{
		"database": db.Ping,
		"cache":    stores.Ping,
	})
	engine.GET("/health", systemHandler.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	jwtConfig := middleware.DefaultJWTConfig(auth.NewVerifier(cfg.JWT), cfg.JWT.Required)
	jwtConfig.Logger = log
	storeConfig := middleware.DefaultStoreConfig(!cfg.JWT.Required)
	storeConfig.Logger = log

	router.NewRouter(engine).
		Use(
			middleware.JWTAuthMiddlewareWithConfig(jwtConfig),
			middleware.StoreMiddleware(storeConfig),
			middleware.TracingAttributeInjector(),
			middleware.SpanErrorMarker(),
		).
		Register(router.NewAPIGroups(router.Handlers{
			Products:     handler.NewProductHandler(productService),
			Contacts:     handler.NewContactHandler(contactService),
			Accounts:     handler.NewAccountHandler(accountService, printService),
			Transactions: handler.NewTransactionHandler(txnService),
			Invoices:     handler.NewDocumentHandler(finance.KindInvoice, docService, printService),
			Bills:        handler.NewDocumentHandler(finance.KindBill, docService, printService),
			Calculator:   handler.NewCalculatorHandler(calculatorService, settingsService, tag),
			Settings:     handler.NewSettingsHandler(settingsService),
			System:       systemHandler,
		}, middleware.RequireAnyRole(middleware.RoleConfig{
			AllowAnonymous: !cfg.JWT.Required,
			Logger:         log,
		}, "owner", "admin"))...).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Finance.OverdueInterval > 0 {
		g.Go(func() error {
			sweepOverdue(gctx, docService, cfg.Finance.OverdueInterval, log)
			return nil
		})
	}
	return g.Wait()
}

// sweepOverdue marks past-due invoices and bills on every tick until ctx ends
func sweepOverdue(ctx context.Context, docs *financeapp.DocumentService, every time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		for _, kind := range []finance.DocumentKind{finance.KindInvoice, finance.KindBill} {
			changed, err := docs.SweepOverdue(ctx, kind)
			if err != nil {
				log.Warn("Overdue sweep failed", zap.String("kind", string(kind)), zap.Error(err))
				continue
			}
			if changed > 0 {
				log.Info("Marked documents overdue", zap.String("kind", string(kind)), zap.Int("count", changed))
			}
		}
	}
}
