// Package marketwatch scrapes the MarketWatch stock overview page for
// company name, trailing performance and competitors. The page is
// unstructured content outside our control, so individual missing fields
// degrade to nil while a missing page structure fails the whole fetch.
package marketwatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://www.marketwatch.com/investing/stock"

type ErrorKind string

const (
	ErrorKindBlocked          ErrorKind = "blocked"
	ErrorKindStructureMissing ErrorKind = "structure_missing"
	ErrorKindHTTP             ErrorKind = "http_error"
	ErrorKindTransport        ErrorKind = "transport"
)

type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("marketwatch: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("marketwatch: %s: %s", e.Kind, e.Message)
}

type Money struct {
	Currency string
	Value    decimal.Decimal
}

type Performance struct {
	FiveDays    *float64
	OneMonth    *float64
	ThreeMonths *float64
	YearToDate  *float64
	OneYear     *float64
}

type Competitor struct {
	Name      string
	MarketCap *Money
}

type Overview struct {
	CompanyName string
	Performance Performance
	Competitors []Competitor
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_5) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
}

type Client struct {
	HttpClient *http.Client
	BaseURL    string
	// Cookie is sent when set, to reduce the chance of being blocked.
	Cookie string
	// Jitter is the max random delay before each request.
	Jitter time.Duration
}

func (c Client) GetOverview(ctx context.Context, symbol string) (*Overview, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	url := fmt.Sprintf("%s/%s", base, strings.ToLower(symbol))

	if c.Jitter > 0 {
		select {
		case <-time.After(time.Duration(rand.Int63n(int64(c.Jitter)))):
		case <-ctx.Done():
			return nil, &Error{Kind: ErrorKindTransport, Message: ctx.Err().Error()}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")
	if c.Cookie != "" {
		req.Header.Set("Cookie", c.Cookie)
	}

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: ErrorKindTransport, Message: err.Error()}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &Error{Kind: ErrorKindTransport, Message: fmt.Sprintf("failed to read body: %v", err)}
	}

	switch response.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return nil, &Error{Kind: ErrorKindBlocked, StatusCode: response.StatusCode, Message: "request blocked"}
	}
	if response.StatusCode >= 400 {
		return nil, &Error{Kind: ErrorKindHTTP, StatusCode: response.StatusCode, Message: http.StatusText(response.StatusCode)}
	}

	// blocked requests sometimes come back 200 with an interstitial
	if looksBlocked(body) {
		return nil, &Error{Kind: ErrorKindBlocked, StatusCode: response.StatusCode, Message: "captcha interstitial"}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: ErrorKindHTTP, StatusCode: response.StatusCode, Message: "unparseable html"}
	}

	return parseOverview(doc)
}

func looksBlocked(body []byte) bool {
	lower := strings.ToLower(string(body))
	return strings.Contains(lower, "captcha") || strings.Contains(lower, "are you a robot")
}
