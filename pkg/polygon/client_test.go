package polygon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

func TestGetDailyOpenClose_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/AAPL/2024-06-12", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("adjusted"))
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Write([]byte(`{
			"status": "OK",
			"symbol": "AAPL",
			"from": "2024-06-12",
			"open": 207.37,
			"high": 220.2,
			"low": 206.9,
			"close": 213.07,
			"volume": 198134293,
			"afterHours": 214.11,
			"preMarket": 208.0
		}`))
	}))
	defer srv.Close()

	c := Client{HttpClient: srv.Client(), ApiKey: "test-key", BaseURL: srv.URL}
	out, err := c.GetDailyOpenClose(context.Background(), "AAPL", testDate)
	require.NoError(t, err)
	require.Equal(t, "AAPL", out.Symbol)
	require.Equal(t, 207.37, *out.Open)
	require.Equal(t, 213.07, *out.Close)
	require.NotNil(t, out.AfterHours)
	require.Equal(t, 214.11, *out.AfterHours)
}

func TestGetDailyOpenClose_ErrorClassification(t *testing.T) {
	cases := []struct {
		name       string
		statusCode int
		wantKind   ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, ErrorKindUnauthorized},
		{"forbidden", http.StatusForbidden, ErrorKindUnauthorized},
		{"rate limited", http.StatusTooManyRequests, ErrorKindRateLimited},
		{"server error", http.StatusInternalServerError, ErrorKindHTTP},
		{"not found", http.StatusNotFound, ErrorKindHTTP},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(`{"error": "nope"}`))
			}))
			defer srv.Close()

			c := Client{HttpClient: srv.Client(), ApiKey: "test-key", BaseURL: srv.URL}
			_, err := c.GetDailyOpenClose(context.Background(), "AAPL", testDate)
			require.Error(t, err)

			perr, ok := err.(*Error)
			require.True(t, ok)
			require.Equal(t, tc.wantKind, perr.Kind)
			require.Equal(t, tc.statusCode, perr.StatusCode)
		})
	}
}

func TestGetDailyOpenClose_MissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "symbol": "AAPL", "open": 207.37}`))
	}))
	defer srv.Close()

	c := Client{HttpClient: srv.Client(), ApiKey: "test-key", BaseURL: srv.URL}
	_, err := c.GetDailyOpenClose(context.Background(), "AAPL", testDate)
	require.Error(t, err)

	perr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrorKindHTTP, perr.Kind)
}

func TestGetDailyOpenClose_Transport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := Client{HttpClient: http.DefaultClient, ApiKey: "test-key", BaseURL: srv.URL}
	_, err := c.GetDailyOpenClose(context.Background(), "AAPL", testDate)
	require.Error(t, err)

	perr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrorKindTransport, perr.Kind)
}
