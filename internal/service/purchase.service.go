package service

import (
	"context"
	"errors"
	"fmt"

	"stocksvc/internal/cache"
	"stocksvc/internal/db/models/postgres/public/model"
	"stocksvc/internal/domain"
	"stocksvc/internal/logger"
	"stocksvc/internal/repository"
)

// PurchaseService records purchase amounts and keeps the quote cache
// consistent with them.
type PurchaseService interface {
	RecordPurchase(ctx context.Context, symbol string, amount int64) (*model.StockPurchase, error)
}

type purchaseServiceHandler struct {
	PurchaseRepository repository.PurchaseRepository
	Cache              cache.StockCache
}

func NewPurchaseService(purchaseRepository repository.PurchaseRepository, stockCache cache.StockCache) PurchaseService {
	return purchaseServiceHandler{
		PurchaseRepository: purchaseRepository,
		Cache:              stockCache,
	}
}

func (h purchaseServiceHandler) RecordPurchase(ctx context.Context, symbol string, amount int64) (*model.StockPurchase, error) {
	sym := domain.NormalizeSymbol(symbol)
	if sym == "" {
		return nil, domain.ErrInvalidSymbol
	}
	if amount < 0 {
		return nil, fmt.Errorf("amount must be >= 0, got %d", amount)
	}

	row, err := h.PurchaseRepository.Upsert(ctx, sym, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	// Invalidation runs strictly after the upsert committed: a racing read
	// that rebuilds right after the delete can only ever recache the new
	// amount. Cache trouble never fails an acknowledged write.
	h.invalidate(ctx, sym)

	return row, nil
}

func (h purchaseServiceHandler) invalidate(ctx context.Context, sym string) {
	log := logger.FromContext(ctx)

	deleted, err := h.Cache.DeleteByPrefix(ctx, cache.StockPrefix(sym))
	if errors.Is(err, cache.ErrPrefixDeleteUnsupported) {
		log.Warnf("cache backend cannot delete by prefix; stale %s quotes remain until TTL expiry", sym)
		return
	}
	if err != nil {
		log.Warnf("cache invalidation for %s failed: %v", sym, err)
		return
	}
	log.Infof("invalidated %d cached quotes for %s", deleted, sym)
}
