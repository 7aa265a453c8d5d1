package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	activityapp "github.com/stocker/backend/internal/application/activity"
	"github.com/stocker/backend/internal/application/bulk"
	catalogapp "github.com/stocker/backend/internal/application/catalog"
	identityapp "github.com/stocker/backend/internal/application/identity"
	inventoryapp "github.com/stocker/backend/internal/application/inventory"
	partnerapp "github.com/stocker/backend/internal/application/partner"
	tradeapp "github.com/stocker/backend/internal/application/trade"
	"github.com/stocker/backend/internal/infrastructure/auth"
	"github.com/stocker/backend/internal/infrastructure/cache"
	"github.com/stocker/backend/internal/infrastructure/config"
	"github.com/stocker/backend/internal/infrastructure/logger"
	"github.com/stocker/backend/internal/infrastructure/mail"
	"github.com/stocker/backend/internal/infrastructure/persistence"
	"github.com/stocker/backend/internal/infrastructure/telemetry"
	"github.com/stocker/backend/internal/interfaces/http/handler"
	"github.com/stocker/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting stocker backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	db, err := persistence.NewDatabase(cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Token blacklist: redis when reachable, in-memory otherwise
	var blacklist identityapp.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() { _ = redisBlacklist.Close() }()
		blacklist = redisBlacklist
	}

	// Repositories outside transaction scope, for reads
	userRepo := persistence.NewGormUserRepository(db)
	itemRepo := persistence.NewGormItemRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	supplierRepo := persistence.NewGormSupplierRepository(db)
	clientRepo := persistence.NewGormClientRepository(db)
	locationRepo := persistence.NewGormLocationRepository(db)
	sourceRepo := persistence.NewGormAcquisitionSourceRepository(db)
	countryRepo := persistence.NewGormCountryRepository(db)
	cityRepo := persistence.NewGormCityRepository(db)
	supplierOrderRepo := persistence.NewGormSupplierOrderRepository(db)
	clientOrderRepo := persistence.NewGormClientOrderRepository(db)
	saleRepo := persistence.NewGormSaleRepository(db)
	activityRepo := persistence.NewGormActivityRepository(db)
	statusRepo := persistence.NewGormStatusRepository(db)
	scope := persistence.NewGormTransactionScope(db)

	// Telemetry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := telemetry.NewMetrics(registry)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	hasher := auth.NewBcryptHasher(0)
	resetTokens := auth.NewResetTokenCodec(cfg.JWT.Secret, 0)
	mailSender := mail.NewLogSender(cfg.Mail.HostUser, log)
	statusCache := cache.NewStatusCache(statusRepo)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, hasher,
		blacklist, mailSender, resetTokens, cfg.Mail.FrontendBaseURL, log)
	referenceService := catalogapp.NewReferenceService(categoryRepo, sourceRepo,
		locationRepo, countryRepo, cityRepo)
	itemService := inventoryapp.NewItemService(itemRepo, scope, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, referenceService, scope, log)
	clientService := partnerapp.NewClientService(clientRepo, referenceService, scope, log)
	supplierOrderService := tradeapp.NewSupplierOrderService(supplierOrderRepo, scope, metrics, log)
	clientOrderService := tradeapp.NewClientOrderService(clientOrderRepo, referenceService, scope, metrics, log)
	saleService := tradeapp.NewSaleService(saleRepo, scope, metrics, log)
	activityService := activityapp.NewActivityService(activityRepo)
	bulkService := bulk.NewBulkService(scope, log)

	engine := router.New(router.Dependencies{
		Config:    cfg,
		Logger:    log,
		Metrics:   metrics,
		Registry:  registry,
		Tokens:    jwtService,
		Blacklist: blacklist,
	}, router.Handlers{
		Auth:           handler.NewAuthHandler(authService, cfg.Cookie),
		Items:          handler.NewItemHandler(itemService, bulkService, metrics),
		Suppliers:      handler.NewSupplierHandler(supplierService, bulkService, metrics),
		Clients:        handler.NewClientHandler(clientService, bulkService, metrics),
		SupplierOrders: handler.NewSupplierOrderHandler(supplierOrderService, bulkService, metrics),
		ClientOrders:   handler.NewClientOrderHandler(clientOrderService, bulkService, metrics),
		Sales:          handler.NewSaleHandler(saleService, bulkService, metrics),
		Activities:     handler.NewActivityHandler(activityService),
		References:     handler.NewReferenceHandler(referenceService, statusCache),
		System:         handler.NewSystemHandler(db, cfg.App.Name, version),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()
	log.Info("server listening", zap.String("addr", server.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("stopped")
}
