// Package polygon wraps the Polygon Daily Open/Close endpoint. Failures are
// classified so callers can tell an upstream rejection from a transport
// problem without inspecting status codes themselves.
package polygon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.polygon.io/v1/open-close"

type ErrorKind string

const (
	ErrorKindUnauthorized ErrorKind = "unauthorized"
	ErrorKindRateLimited  ErrorKind = "rate_limited"
	ErrorKindHTTP         ErrorKind = "http_error"
	ErrorKindTransport    ErrorKind = "transport"
)

type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("polygon: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("polygon: %s: %s", e.Kind, e.Message)
}

type Client struct {
	HttpClient *http.Client
	ApiKey     string
	BaseURL    string
}

// OHLC fields are pointers because Polygon omits them for dates it has no
// data for, and zero is a legal price.
type OpenCloseResponse struct {
	Status     string   `json:"status"`
	Symbol     string   `json:"symbol"`
	From       string   `json:"from"`
	Open       *float64 `json:"open"`
	High       *float64 `json:"high"`
	Low        *float64 `json:"low"`
	Close      *float64 `json:"close"`
	Volume     *float64 `json:"volume"`
	AfterHours *float64 `json:"afterHours"`
	PreMarket  *float64 `json:"preMarket"`
}

func (c Client) GetDailyOpenClose(ctx context.Context, symbol string, date time.Time) (*OpenCloseResponse, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	url := fmt.Sprintf("%s/%s/%s?adjusted=true", base, symbol, date.Format(time.DateOnly))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	// the key travels on every request; nothing is cached across calls
	req.Header.Set("Authorization", "Bearer "+c.ApiKey)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: ErrorKindTransport, Message: err.Error()}
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &Error{Kind: ErrorKindTransport, Message: fmt.Sprintf("failed to read body: %v", err)}
	}

	switch {
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		return nil, &Error{Kind: ErrorKindUnauthorized, StatusCode: response.StatusCode, Message: truncate(responseBytes)}
	case response.StatusCode == http.StatusTooManyRequests:
		return nil, &Error{Kind: ErrorKindRateLimited, StatusCode: response.StatusCode, Message: truncate(responseBytes)}
	case response.StatusCode != http.StatusOK:
		return nil, &Error{Kind: ErrorKindHTTP, StatusCode: response.StatusCode, Message: truncate(responseBytes)}
	}

	var responseJson OpenCloseResponse
	if err := json.Unmarshal(responseBytes, &responseJson); err != nil {
		return nil, &Error{Kind: ErrorKindHTTP, StatusCode: response.StatusCode, Message: "malformed response body"}
	}

	if responseJson.Open == nil || responseJson.High == nil || responseJson.Low == nil || responseJson.Close == nil {
		return nil, &Error{Kind: ErrorKindHTTP, StatusCode: response.StatusCode, Message: "missing ohlc fields"}
	}
	if responseJson.Symbol == "" {
		responseJson.Symbol = symbol
	}

	return &responseJson, nil
}

func truncate(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}
