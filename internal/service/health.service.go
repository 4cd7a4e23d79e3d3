package service

import (
	"context"
	"errors"
	"fmt"

	"stocksvc/internal/calendar"
	"stocksvc/internal/domain"
	"stocksvc/internal/repository"
)

const probeSymbol = "AAPL"

// how many business days to walk back before concluding the price upstream
// simply has no recent data
const probeLookback = 5

type ProbeResult struct {
	Healthy bool   `json:"healthy"`
	Detail  string `json:"detail"`
}

// HealthService checks each upstream's reachability and authorization
// without serving a real quote, for the aggregate readiness endpoint.
type HealthService interface {
	CheckPriceSource(ctx context.Context) ProbeResult
	CheckPerformanceSource(ctx context.Context) ProbeResult
}

type healthServiceHandler struct {
	PriceRepository       repository.PriceRepository
	PerformanceRepository repository.PerformanceRepository
	Clock                 calendar.Clock
}

func NewHealthService(
	priceRepository repository.PriceRepository,
	performanceRepository repository.PerformanceRepository,
	clock calendar.Clock,
) HealthService {
	return healthServiceHandler{
		PriceRepository:       priceRepository,
		PerformanceRepository: performanceRepository,
		Clock:                 clock,
	}
}

// CheckPriceSource probes recent business days until one yields data.
// Gaps (holidays, not-yet-published dates) are walked past; a credential or
// quota problem fails the probe immediately.
func (h healthServiceHandler) CheckPriceSource(ctx context.Context) ProbeResult {
	date := calendar.LastBusinessDay(h.Clock.Now())

	for i := 0; i < probeLookback; i++ {
		_, err := h.PriceRepository.GetOHLC(ctx, probeSymbol, date)
		if err == nil {
			return ProbeResult{Healthy: true, Detail: "ok"}
		}

		var ue *domain.UpstreamError
		if errors.As(err, &ue) {
			switch ue.Reason {
			case domain.FailureUnauthorized:
				return ProbeResult{Detail: "unauthorized"}
			case domain.FailureRateLimited:
				return ProbeResult{Detail: "rate_limited"}
			case domain.FailureTimeout:
				return ProbeResult{Detail: "timeout"}
			}
		}

		date = calendar.PreviousBusinessDay(date)
	}

	// reachable and authorized, just no data in the probe window
	return ProbeResult{Healthy: true, Detail: "ok_no_data"}
}

func (h healthServiceHandler) CheckPerformanceSource(ctx context.Context) ProbeResult {
	report, err := h.PerformanceRepository.GetReport(ctx, probeSymbol)
	if err != nil {
		var ue *domain.UpstreamError
		if errors.As(err, &ue) {
			return ProbeResult{Detail: string(ue.Reason)}
		}
		return ProbeResult{Detail: fmt.Sprintf("error: %v", err)}
	}

	perf := report.Performance
	hasAnyPerf := perf.FiveDays != nil || perf.OneMonth != nil || perf.ThreeMonths != nil ||
		perf.YearToDate != nil || perf.OneYear != nil
	if hasAnyPerf || len(report.Competitors) > 0 {
		return ProbeResult{Healthy: true, Detail: "ok"}
	}

	// page reachable but thin; still counts as up
	return ProbeResult{Healthy: true, Detail: "ok_basic"}
}
