package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// QuoteStatus reflects how much of the composite could be assembled.
type QuoteStatus string

const (
	QuoteStatusOK      QuoteStatus = "ok"
	QuoteStatusPartial QuoteStatus = "partial"
	QuoteStatusFailed  QuoteStatus = "failed"
)

type PurchasedStatus string

const (
	PurchasedStatusNone     PurchasedStatus = "none"
	PurchasedStatusRecorded PurchasedStatus = "recorded"
)

var ErrInvalidSymbol = errors.New("invalid symbol")

// NormalizeSymbol uppercases and trims a caller-supplied ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

type StockValues struct {
	Open       float64  `json:"open"`
	High       float64  `json:"high"`
	Low        float64  `json:"low"`
	Close      float64  `json:"close"`
	Volume     *float64 `json:"volume,omitempty"`
	AfterHours *float64 `json:"after_hours,omitempty"`
	PreMarket  *float64 `json:"pre_market,omitempty"`
}

// PerformanceData holds trailing performance percentages. A nil field means
// the scrape could not find that period, not that performance is zero.
type PerformanceData struct {
	FiveDays    *float64 `json:"five_days"`
	OneMonth    *float64 `json:"one_month"`
	ThreeMonths *float64 `json:"three_months"`
	YearToDate  *float64 `json:"year_to_date"`
	OneYear     *float64 `json:"one_year"`
}

type MarketCap struct {
	Currency string          `json:"currency"`
	Value    decimal.Decimal `json:"value"`
}

type Competitor struct {
	Name      string     `json:"name"`
	MarketCap *MarketCap `json:"market_cap,omitempty"`
}

// PriceSnapshot is what the price upstream yields for one symbol+date.
type PriceSnapshot struct {
	Symbol string
	Values StockValues
}

// PerformanceReport is what the performance upstream yields for one symbol.
type PerformanceReport struct {
	CompanyName string
	Performance PerformanceData
	Competitors []Competitor
}

// CompositeQuote is the merged artifact served to callers and stored in the
// cache. It is built fresh on every cache miss and never mutated afterwards;
// a purchase update is observed by invalidating and rebuilding, not by
// patching a cached quote.
type CompositeQuote struct {
	Status             QuoteStatus      `json:"status"`
	Symbol             string           `json:"company_code"`
	AsOfDate           string           `json:"as_of_date"`
	CompanyName        string           `json:"company_name,omitempty"`
	StockValues        *StockValues     `json:"stock_values,omitempty"`
	PerformanceData    *PerformanceData `json:"performance_data,omitempty"`
	Competitors        []Competitor     `json:"competitors,omitempty"`
	PurchasedAmount    int64            `json:"purchased_amount"`
	PurchasedStatus    PurchasedStatus  `json:"purchased_status"`
	PriceFailure       *FailureReason   `json:"price_failure,omitempty"`
	PerformanceFailure *FailureReason   `json:"performance_failure,omitempty"`
}
