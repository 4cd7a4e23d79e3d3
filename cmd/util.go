package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"stocksvc/api"
	"stocksvc/internal"
	"stocksvc/internal/cache"
	"stocksvc/internal/calendar"
	"stocksvc/internal/logger"
	"stocksvc/internal/repository"
	"stocksvc/internal/service"
	"stocksvc/pkg/marketwatch"
	"stocksvc/pkg/polygon"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler, db *sql.DB) {
	if err := db.Close(); err != nil {
		handler.Logger.Errorf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, *sql.DB, error) {
	log := logger.New()

	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	clock := calendar.NewClock()

	var stockCache cache.StockCache = cache.NewMemoryCache(clock)
	if secrets.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		redisCache, err := cache.NewRedisCache(ctx, secrets.Redis.Addr, secrets.Redis.Password, secrets.Redis.Db)
		if err != nil {
			log.Warnf("redis unavailable, falling back to in-memory cache: %v", err)
		} else {
			stockCache = redisCache
		}
	}

	polygonClient := polygon.Client{
		HttpClient: http.DefaultClient,
		ApiKey:     secrets.PolygonApiKey,
	}
	marketWatchClient := marketwatch.Client{
		HttpClient: http.DefaultClient,
		Cookie:     secrets.MarketWatchCookie,
		Jitter:     750 * time.Millisecond,
	}

	purchaseRepository := repository.NewPurchaseRepository(dbConn)
	priceRepository := repository.NewPriceRepository(polygonClient)
	performanceRepository := repository.NewPerformanceRepository(marketWatchClient)

	cacheTTL := service.DefaultCacheTTL
	if secrets.CacheTTLSeconds > 0 {
		cacheTTL = time.Duration(secrets.CacheTTLSeconds) * time.Second
	}

	stockService := service.NewStockService(
		priceRepository,
		performanceRepository,
		purchaseRepository,
		stockCache,
		clock,
		cacheTTL,
		service.DefaultUpstreamTimeout,
	)
	purchaseService := service.NewPurchaseService(purchaseRepository, stockCache)
	healthService := service.NewHealthService(priceRepository, performanceRepository, clock)

	apiHandler := &api.ApiHandler{
		StockService:    stockService,
		PurchaseService: purchaseService,
		HealthService:   healthService,
		Logger:          log,
	}

	return apiHandler, dbConn, nil
}
