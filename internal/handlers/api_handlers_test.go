package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sand/wallet-dashboard/backend/internal/gateway"
)

type stubGateway struct {
	payload json.RawMessage
	err     error
	panics  bool
}

func (s *stubGateway) FindByUser(_ context.Context) (json.RawMessage, error) {
	if s.panics {
		panic("kaboom")
	}
	return s.payload, s.err
}

func (s *stubGateway) Search(_ context.Context, _ string) (json.RawMessage, error) {
	return s.payload, s.err
}

const origin = "http://localhost:5173"

func newTestServer(t *testing.T, gw *stubGateway) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(logger, NewHTTPHandler(logger, gw), origin))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string, header http.Header) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestGetAllTransactionsSuccess(t *testing.T) {
	payload := `{"data":[{"id":"tx-1"}],"lastPage":1,"total":1}`
	srv := newTestServer(t, &stubGateway{payload: json.RawMessage(payload)})

	resp, body := get(t, srv.URL+"/api/transactions/all", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, payload, body)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestGetAllTransactionsUpstreamPassThrough(t *testing.T) {
	srv := newTestServer(t, &stubGateway{err: &gateway.UpstreamError{
		Method:     http.MethodGet,
		Path:       gateway.FindByUserPath,
		StatusCode: http.StatusServiceUnavailable,
		Body:       []byte(`{"code":"rate_limited"}`),
	}})

	resp, body := get(t, srv.URL+"/api/transactions/all", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, `{"code":"rate_limited"}`, body)
}

func TestGetAllTransactionsTransportFailure(t *testing.T) {
	srv := newTestServer(t, &stubGateway{err: &gateway.TransportError{
		Method: http.MethodGet,
		Path:   gateway.FindByUserPath,
		Err:    errors.New("dial tcp 10.0.0.1:443: connection refused"),
	}})

	resp, body := get(t, srv.URL+"/api/transactions/all", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"upstream request failed"}`, body)
	assert.NotContains(t, body, "10.0.0.1")
}

func TestRecoveryHidesPanics(t *testing.T) {
	srv := newTestServer(t, &stubGateway{panics: true})

	resp, body := get(t, srv.URL+"/api/transactions/all", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Internal server error"}`, body)
}

func TestRequestIDPropagated(t *testing.T) {
	srv := newTestServer(t, &stubGateway{payload: json.RawMessage(`{}`)})

	resp, _ := get(t, srv.URL+"/health", http.Header{RequestIDHeader: {"req-123"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(RequestIDHeader))
}

func TestCORSAllowsOnlyConfiguredOrigin(t *testing.T) {
	srv := newTestServer(t, &stubGateway{payload: json.RawMessage(`{}`)})

	resp, _ := get(t, srv.URL+"/api/transactions/all", http.Header{"Origin": {origin}})
	assert.Equal(t, origin, resp.Header.Get("Access-Control-Allow-Origin"))

	resp, _ = get(t, srv.URL+"/api/transactions/all", http.Header{"Origin": {"http://evil.example"}})
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestGatewayEndToEndWithSignedUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok := gateway.Verify("secret", r.Header.Get(gateway.HeaderTimestamp), r.Method, r.URL.Path, "", r.Header.Get(gateway.HeaderSignature))
		if !ok || r.URL.Path != gateway.FindByUserPath {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"bad signature"}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer upstream.Close()

	client, err := gateway.NewClient(nil, gateway.Config{
		APIKey: "k", APISecret: "secret", BaseURL: upstream.URL, Timeout: time.Second,
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(logger, NewHTTPHandler(logger, client), origin))
	defer srv.Close()

	resp, body := get(t, srv.URL+"/api/transactions/all", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data":[]}`, body)
}
