package marketwatch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetOverview_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/aapl", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		require.Equal(t, "mw_session=abc", r.Header.Get("Cookie"))
		w.Write([]byte(overviewFixture))
	}))
	defer srv.Close()

	c := Client{HttpClient: srv.Client(), BaseURL: srv.URL, Cookie: "mw_session=abc"}
	out, err := c.GetOverview(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, "Apple Inc.", out.CompanyName)
	require.Len(t, out.Competitors, 3)
}

func TestGetOverview_Blocked(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		c := Client{HttpClient: srv.Client(), BaseURL: srv.URL}
		_, err := c.GetOverview(context.Background(), "AAPL")
		require.Error(t, err)

		merr, ok := err.(*Error)
		require.True(t, ok, "status %d", code)
		require.Equal(t, ErrorKindBlocked, merr.Kind, "status %d", code)

		srv.Close()
	}
}

func TestGetOverview_CaptchaInterstitial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>Please complete the CAPTCHA to continue</body></html>`))
	}))
	defer srv.Close()

	c := Client{HttpClient: srv.Client(), BaseURL: srv.URL}
	_, err := c.GetOverview(context.Background(), "AAPL")
	require.Error(t, err)

	merr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrorKindBlocked, merr.Kind)
}

func TestGetOverview_StructureMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>404 page</h1><p>nothing here</p></body></html>`))
	}))
	defer srv.Close()

	c := Client{HttpClient: srv.Client(), BaseURL: srv.URL}
	_, err := c.GetOverview(context.Background(), "AAPL")
	require.Error(t, err)

	merr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrorKindStructureMissing, merr.Kind)
}

func TestGetOverview_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := Client{HttpClient: srv.Client(), BaseURL: srv.URL}
	_, err := c.GetOverview(context.Background(), "AAPL")
	require.Error(t, err)

	merr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrorKindHTTP, merr.Kind)
}
