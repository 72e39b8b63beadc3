package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Pesokrava/storefront/internal/config"
	"github.com/Pesokrava/storefront/internal/delivery/events"
	httpDelivery "github.com/Pesokrava/storefront/internal/delivery/http"
	"github.com/Pesokrava/storefront/internal/delivery/http/handler"
	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/cache"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	cacheRepo "github.com/Pesokrava/storefront/internal/repository/cache"
	"github.com/Pesokrava/storefront/internal/repository/remote"
	"github.com/Pesokrava/storefront/internal/usecase/cart"
	"github.com/Pesokrava/storefront/internal/usecase/catalog"
	"github.com/Pesokrava/storefront/internal/usecase/wishlist"
	"github.com/Pesokrava/storefront/internal/worker"

	_ "github.com/Pesokrava/storefront/docs"
)

// @title Storefront API
// @version 1.0
// @description Client-side state for a storefront: a paged, searchable catalog view over a remote product API, a cart and a wishlist.

// @contact.name API Support
// @contact.url http://github.com/Pesokrava/storefront

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @tag.name Catalog
// @tag.description Catalog query and refresh endpoints

// @tag.name Products
// @tag.description Product details

// @tag.name Cart
// @tag.description Cart endpoints

// @tag.name Wishlist
// @tag.description Wishlist endpoints

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		appLogger.Fatal("Failed to set log level", err)
	}
	appLogger.Info("Starting Storefront API...")

	var catalogRepo domain.CatalogRepository = remote.NewCatalogClient(cfg.Catalog.BaseURL, cfg.Catalog.RequestTimeout)
	appLogger.Infof("Remote catalog at %s", cfg.Catalog.BaseURL)

	if cfg.Redis.Enabled {
		appLogger.Info("Connecting to Redis...")
		redisClient, err := cache.WaitForRedis(cfg, 10, 2*time.Second)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", err)
		}
		defer redisClient.Close()
		appLogger.Info("Connected to Redis successfully")

		catalogRepo = cacheRepo.NewRedisCache(
			catalogRepo,
			redisClient,
			cfg.Cache.ProductsTTL,
			cfg.Cache.CategoriesTTL,
			appLogger.Component("cache"),
		)
	}

	broadcaster := events.NewBroadcaster(appLogger)
	var publisher catalog.EventPublisher = broadcaster

	if cfg.NATS.Enabled {
		appLogger.Info("Connecting to NATS...")
		natsPublisher, err := events.NewPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create NATS publisher", err)
		}
		defer natsPublisher.Close()
		publisher = events.Multi{broadcaster, natsPublisher}
	}

	catalogService := catalog.NewService(catalogRepo, publisher, cfg.Catalog.PageLimit, appLogger.Component("catalog"))
	cartService := cart.NewService(publisher, appLogger.Component("cart"))
	wishlistService := wishlist.NewService(publisher, appLogger.Component("wishlist"))

	refreshWorker := worker.NewRefreshWorker(
		catalogService,
		cfg.Catalog.RefreshDebounce,
		cfg.Catalog.RequestTimeout,
		appLogger,
	)
	queryChanges, unsubscribe := broadcaster.SubscribeLatest(domain.SubjectCatalogQuery)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	go refreshWorker.Run(workerCtx, queryChanges)

	loadInitialCatalog(catalogService, cfg.Catalog.RequestTimeout, appLogger)

	catalogHandler := handler.NewCatalogHandler(catalogService, appLogger)
	cartHandler := handler.NewCartHandler(cartService, catalogService, appLogger)
	wishlistHandler := handler.NewWishlistHandler(wishlistService, catalogService, appLogger)

	router := httpDelivery.NewRouter(catalogHandler, cartHandler, wishlistHandler, cfg, appLogger)
	httpHandler := router.Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	stopWorker()
	unsubscribe()
	if err := refreshWorker.Shutdown(ctx); err != nil {
		appLogger.Error("Refresh worker forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}

// loadInitialCatalog fetches the first page and the category list concurrently.
// Failures are logged; the API still starts and a later refresh can recover.
func loadInitialCatalog(service *catalog.Service, timeout time.Duration, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		_, err := service.Refresh(ctx)
		return err
	})
	g.Go(func() error {
		_, err := service.RefreshCategories(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Warnf("Initial catalog load incomplete: %v", err)
		return
	}
	log.Info("Initial catalog loaded")
}
