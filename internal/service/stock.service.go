package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stocksvc/internal/cache"
	"stocksvc/internal/calendar"
	"stocksvc/internal/domain"
	"stocksvc/internal/logger"
	"stocksvc/internal/repository"
)

const (
	DefaultCacheTTL        = 300 * time.Second
	DefaultUpstreamTimeout = 10 * time.Second
)

// StockService builds composite quotes: cached when possible, otherwise
// assembled from both upstreams fetched concurrently, with the locally
// recorded purchase amount stamped on.
type StockService interface {
	GetStock(ctx context.Context, symbol string, explicitDate string) (*domain.CompositeQuote, error)
}

type stockServiceHandler struct {
	PriceRepository       repository.PriceRepository
	PerformanceRepository repository.PerformanceRepository
	PurchaseRepository    repository.PurchaseRepository
	Cache                 cache.StockCache
	Clock                 calendar.Clock

	cacheTTL        time.Duration
	upstreamTimeout time.Duration
}

func NewStockService(
	priceRepository repository.PriceRepository,
	performanceRepository repository.PerformanceRepository,
	purchaseRepository repository.PurchaseRepository,
	stockCache cache.StockCache,
	clock calendar.Clock,
	cacheTTL time.Duration,
	upstreamTimeout time.Duration,
) StockService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	if upstreamTimeout <= 0 {
		upstreamTimeout = DefaultUpstreamTimeout
	}
	return stockServiceHandler{
		PriceRepository:       priceRepository,
		PerformanceRepository: performanceRepository,
		PurchaseRepository:    purchaseRepository,
		Cache:                 stockCache,
		Clock:                 clock,
		cacheTTL:              cacheTTL,
		upstreamTimeout:       upstreamTimeout,
	}
}

func (h stockServiceHandler) GetStock(ctx context.Context, symbol string, explicitDate string) (*domain.CompositeQuote, error) {
	sym := domain.NormalizeSymbol(symbol)
	if sym == "" {
		return nil, domain.ErrInvalidSymbol
	}

	date, err := calendar.Resolve(h.Clock, explicitDate)
	if err != nil {
		return nil, err
	}

	key := cache.StockKey(sym, date)
	if raw, ok := h.Cache.Get(ctx, key); ok {
		quote := domain.CompositeQuote{}
		if err := json.Unmarshal(raw, &quote); err == nil {
			return &quote, nil
		}
		logger.FromContext(ctx).Warnf("discarding undecodable cache entry %s", key)
	}

	// The rebuild runs on a detached context: a caller that gives up while
	// the upstreams are in flight does not waste the fetch, the result is
	// still cached for the next request.
	type buildResult struct {
		quote *domain.CompositeQuote
		err   error
	}
	resultCh := make(chan buildResult, 1)
	go func() {
		quote, err := h.build(context.WithoutCancel(ctx), sym, date, key)
		resultCh <- buildResult{quote: quote, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultCh:
		return res.quote, res.err
	}
}

type priceOutcome struct {
	snapshot *domain.PriceSnapshot
	err      error
}

type performanceOutcome struct {
	report *domain.PerformanceReport
	err    error
}

func (h stockServiceHandler) build(ctx context.Context, sym string, date time.Time, key string) (*domain.CompositeQuote, error) {
	// fan out to both upstreams; each gets its own timeout so one slow
	// source cannot eat the other's budget
	priceCh := make(chan priceOutcome, 1)
	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, h.upstreamTimeout)
		defer cancel()
		snapshot, err := h.PriceRepository.GetOHLC(fetchCtx, sym, date)
		priceCh <- priceOutcome{snapshot: snapshot, err: err}
	}()

	performanceCh := make(chan performanceOutcome, 1)
	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, h.upstreamTimeout)
		defer cancel()
		report, err := h.PerformanceRepository.GetReport(fetchCtx, sym)
		performanceCh <- performanceOutcome{report: report, err: err}
	}()

	price := <-priceCh
	performance := <-performanceCh

	if price.err != nil && performance.err != nil {
		reason := domain.MoreSevere(domain.ReasonOf(price.err), domain.ReasonOf(performance.err))
		return nil, fmt.Errorf("%s: price source failed (%v) and performance source failed (%v)", reason, price.err, performance.err)
	}

	quote := &domain.CompositeQuote{
		Status:   domain.QuoteStatusOK,
		Symbol:   sym,
		AsOfDate: date.Format(time.DateOnly),
	}

	if price.err != nil {
		reason := domain.ReasonOf(price.err)
		quote.Status = domain.QuoteStatusPartial
		quote.PriceFailure = &reason
		logger.FromContext(ctx).Warnf("price source failed for %s, serving partial quote: %v", sym, price.err)
	} else {
		quote.StockValues = &price.snapshot.Values
		quote.CompanyName = price.snapshot.Symbol
	}

	if performance.err != nil {
		reason := domain.ReasonOf(performance.err)
		quote.Status = domain.QuoteStatusPartial
		quote.PerformanceFailure = &reason
		logger.FromContext(ctx).Warnf("performance source failed for %s, serving partial quote: %v", sym, performance.err)
	} else {
		report := performance.report
		quote.PerformanceData = &report.Performance
		quote.Competitors = report.Competitors
		// the display name comes from the scrape, but identity belongs to
		// the price source: no price block, no company name
		if price.err == nil && report.CompanyName != "" {
			quote.CompanyName = report.CompanyName
		}
	}

	// always a fresh read so a just-acknowledged purchase write is never
	// rebuilt from stale state
	amount, err := h.PurchaseRepository.GetLatest(ctx, sym)
	if err != nil {
		logger.FromContext(ctx).Warnf("purchase lookup failed for %s, defaulting to 0: %v", sym, err)
		amount = 0
	}
	quote.PurchasedAmount = amount
	if amount > 0 {
		quote.PurchasedStatus = domain.PurchasedStatusRecorded
	} else {
		quote.PurchasedStatus = domain.PurchasedStatusNone
	}

	if raw, err := json.Marshal(quote); err == nil {
		h.Cache.Set(ctx, key, raw, h.cacheTTL)
	}

	return quote, nil
}
