package repository

import (
	"context"
	"errors"
	"time"

	"stocksvc/internal/domain"
	"stocksvc/pkg/polygon"
)

// PriceRepository is the price upstream port: OHLC plus instrument identity
// for one symbol+date.
type PriceRepository interface {
	GetOHLC(ctx context.Context, symbol string, date time.Time) (*domain.PriceSnapshot, error)
}

type priceRepositoryHandler struct {
	Client polygon.Client
}

func NewPriceRepository(client polygon.Client) PriceRepository {
	return priceRepositoryHandler{Client: client}
}

func (h priceRepositoryHandler) GetOHLC(ctx context.Context, symbol string, date time.Time) (*domain.PriceSnapshot, error) {
	resp, err := h.Client.GetDailyOpenClose(ctx, symbol, date)
	if err != nil {
		return nil, classifyPriceError(err)
	}

	return &domain.PriceSnapshot{
		Symbol: resp.Symbol,
		Values: domain.StockValues{
			Open:       *resp.Open,
			High:       *resp.High,
			Low:        *resp.Low,
			Close:      *resp.Close,
			Volume:     resp.Volume,
			AfterHours: resp.AfterHours,
			PreMarket:  resp.PreMarket,
		},
	}, nil
}

func classifyPriceError(err error) error {
	reason := domain.FailureHTTPError

	var perr *polygon.Error
	if errors.As(err, &perr) {
		switch perr.Kind {
		case polygon.ErrorKindUnauthorized:
			reason = domain.FailureUnauthorized
		case polygon.ErrorKindRateLimited:
			reason = domain.FailureRateLimited
		case polygon.ErrorKindTransport:
			reason = domain.FailureTimeout
		}
	} else if errors.Is(err, context.DeadlineExceeded) {
		reason = domain.FailureTimeout
	}

	return &domain.UpstreamError{Source: "polygon", Reason: reason, Err: err}
}
