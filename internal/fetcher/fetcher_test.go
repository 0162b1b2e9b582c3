package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte(`<html><body><a href="/next">next</a></body></html>`))
	})
	mux.HandleFunc("/data", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte(`{"not":"html"}`))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	mux.HandleFunc("/binary", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestNewRejectsNegativeTimeout(t *testing.T) {
	_, err := New(Config{Timeout: -time.Second})
	require.Error(t, err)
}

func TestProbeReturnsHeaders(t *testing.T) {
	server := newTestServer(t)
	client, err := New(Config{UserAgent: "webkin-test", Timeout: 5 * time.Second})
	require.NoError(t, err)

	headers, err := client.Probe(context.Background(), server.URL+"/page")
	require.NoError(t, err)
	assert.Contains(t, headers.Get("Content-Type"), "text/html")
}

func TestProbeNonHTMLContentType(t *testing.T) {
	server := newTestServer(t)
	client, err := New(Config{Timeout: 5 * time.Second})
	require.NoError(t, err)

	headers, err := client.Probe(context.Background(), server.URL+"/data")
	require.NoError(t, err)
	assert.Contains(t, headers.Get("Content-Type"), "application/json")
}

func TestProbeErrorStatus(t *testing.T) {
	server := newTestServer(t)
	client, err := New(Config{Timeout: 5 * time.Second})
	require.NoError(t, err)

	_, err = client.Probe(context.Background(), server.URL+"/missing")
	require.Error(t, err)
}

func TestProbeUnreachable(t *testing.T) {
	client, err := New(Config{Timeout: time.Second})
	require.NoError(t, err)

	_, err = client.Probe(context.Background(), "http://127.0.0.1:1/x")
	require.Error(t, err)
}

func TestFetchReturnsBody(t *testing.T) {
	server := newTestServer(t)
	client, err := New(Config{Timeout: 5 * time.Second})
	require.NoError(t, err)

	body, err := client.Fetch(context.Background(), server.URL+"/page")
	require.NoError(t, err)
	assert.Contains(t, body, `href="/next"`)
}

func TestFetchInvalidText(t *testing.T) {
	server := newTestServer(t)
	client, err := New(Config{Timeout: 5 * time.Second})
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), server.URL+"/binary")
	require.Error(t, err)
}

func TestProbeThenFetchSameURL(t *testing.T) {
	// The engine always probes and then fetches the same URL; the
	// collector must not treat the second request as a revisit.
	server := newTestServer(t)
	client, err := New(Config{Timeout: 5 * time.Second})
	require.NoError(t, err)

	_, err = client.Probe(context.Background(), server.URL+"/page")
	require.NoError(t, err)
	body, err := client.Fetch(context.Background(), server.URL+"/page")
	require.NoError(t, err)
	assert.NotEmpty(t, body)
}

func TestFetchCanceledContext(t *testing.T) {
	server := newTestServer(t)
	client, err := New(Config{Timeout: 5 * time.Second})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Fetch(ctx, server.URL+"/page")
	require.Error(t, err)
}
