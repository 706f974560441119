package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodhub/config"
	httpapi "foodhub/storefront-svc/internal/api/http"
	"foodhub/storefront-svc/internal/domain"
	"foodhub/storefront-svc/internal/service"
	"foodhub/storefront-svc/internal/storage"
)

type seedSource interface {
	LoadSeed(ctx context.Context) (domain.Seed, error)
}

// loadSeed picks the Postgres catalog when DB_* is set, the SEED_FILE
// document otherwise, and starts empty when neither is configured.
func loadSeed(ctx context.Context, cfg *config.Config) domain.Seed {
	var src seedSource
	switch {
	case config.PostgresConfigured():
		db := config.MustInitPostgres()
		defer db.Close()
		src = storage.NewPostgresSeedSource(db, cfg.Location)
	case cfg.SeedFile != "":
		src = storage.NewFileSeedSource(cfg.SeedFile, cfg.Location)
	default:
		log.Println("No seed source configured, starting with an empty catalog")
		return domain.Seed{}
	}

	seed, err := src.LoadSeed(ctx)
	if err != nil {
		log.Fatal("Failed to load seed data:", err)
	}
	log.Printf("Loaded %d restaurants, %d foods, %d orders", len(seed.Restaurants), len(seed.Foods), len(seed.Orders))
	return seed
}

type services struct {
	catalog   *service.CatalogService
	pricing   *service.PricingService
	orders    *service.OrderService
	analytics *service.AnalyticsService
}

func newServices(cfg *config.Config, store *storage.MemoryStore, cache service.ReviewCache, publisher service.EventPublisher) services {
	clock := func() time.Time { return time.Now().In(cfg.Location) }

	pricing := service.NewPricingService(store, cfg.DeliveryFee)
	catalog := service.NewCatalogService(store, publisher)
	catalog.Now = clock
	orders := service.NewOrderService(store, pricing, cache, publisher, service.ReviewQRGenerator{BaseURL: cfg.PublicBaseURL})
	orders.Now = clock
	analytics := service.NewAnalyticsService(store)
	analytics.Now = clock

	return services{catalog: catalog, pricing: pricing, orders: orders, analytics: analytics}
}

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := storage.NewMemoryStore(loadSeed(ctx, cfg))

	var cache service.ReviewCache
	if config.RedisConfigured() {
		rdb := config.MustInitRedis()
		defer rdb.Close()
		cache = storage.NewRedisReviewCache(rdb, cfg.ReviewMarkerTTL)
	}

	var publisher service.EventPublisher
	if config.KafkaConfigured() {
		writer := config.NewKafkaWriter(cfg.KafkaTopic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	svcs := newServices(cfg, store, cache, publisher)
	handler := httpapi.NewHandler(svcs.catalog, svcs.pricing, svcs.orders, svcs.analytics)
	server := httpapi.NewServer(":"+cfg.Port, httpapi.NewRouter(handler))

	go func() {
		log.Printf("Storefront Service starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down Storefront Service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
