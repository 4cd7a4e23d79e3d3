package repository

import (
	"context"
	"errors"

	"stocksvc/internal/domain"
	"stocksvc/pkg/marketwatch"
)

// PerformanceRepository is the performance upstream port: trailing
// percentages plus an ordered competitor list for one symbol.
type PerformanceRepository interface {
	GetReport(ctx context.Context, symbol string) (*domain.PerformanceReport, error)
}

type performanceRepositoryHandler struct {
	Client marketwatch.Client
}

func NewPerformanceRepository(client marketwatch.Client) PerformanceRepository {
	return performanceRepositoryHandler{Client: client}
}

func (h performanceRepositoryHandler) GetReport(ctx context.Context, symbol string) (*domain.PerformanceReport, error) {
	overview, err := h.Client.GetOverview(ctx, symbol)
	if err != nil {
		return nil, classifyPerformanceError(err)
	}

	report := &domain.PerformanceReport{
		CompanyName: overview.CompanyName,
		Performance: domain.PerformanceData{
			FiveDays:    overview.Performance.FiveDays,
			OneMonth:    overview.Performance.OneMonth,
			ThreeMonths: overview.Performance.ThreeMonths,
			YearToDate:  overview.Performance.YearToDate,
			OneYear:     overview.Performance.OneYear,
		},
	}

	for _, c := range overview.Competitors {
		competitor := domain.Competitor{Name: c.Name}
		if c.MarketCap != nil {
			competitor.MarketCap = &domain.MarketCap{
				Currency: c.MarketCap.Currency,
				Value:    c.MarketCap.Value,
			}
		}
		report.Competitors = append(report.Competitors, competitor)
	}

	return report, nil
}

func classifyPerformanceError(err error) error {
	reason := domain.FailureHTTPError

	var merr *marketwatch.Error
	if errors.As(err, &merr) {
		switch merr.Kind {
		case marketwatch.ErrorKindBlocked:
			reason = domain.FailureBlocked
		case marketwatch.ErrorKindStructureMissing:
			reason = domain.FailureStructureMissing
		case marketwatch.ErrorKindTransport:
			reason = domain.FailureTimeout
		}
	} else if errors.Is(err, context.DeadlineExceeded) {
		reason = domain.FailureTimeout
	}

	return &domain.UpstreamError{Source: "marketwatch", Reason: reason, Err: err}
}
