package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"
)

// Signing headers expected by the upstream on every call.
const (
	HeaderAPIKey    = "YAYA-API-KEY"
	HeaderTimestamp = "YAYA-API-TIMESTAMP"
	HeaderSignature = "YAYA-API-SIGN"
)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 15 * time.Second

var (
	ErrInvalidPath   = errors.New("upstream path must start with /")
	ErrInvalidMethod = errors.New("http method must not be empty or contain digits")
)

// HTTPClient is the subset of *http.Client the forwarder needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds what the forwarder needs to authenticate against the upstream.
type Config struct {
	APIKey     string
	APISecret  string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient HTTPClient
	// Now is the signing clock; time.Now when nil.
	Now func() time.Time
}

// Client signs and relays calls to the upstream wallet API. It never retries.
type Client struct {
	logger     *slog.Logger
	apiKey     string
	apiSecret  string
	baseURL    string
	timeout    time.Duration
	httpClient HTTPClient
	now        func() time.Time
}

// NewClient validates the credentials and builds a forwarder.
func NewClient(logger *slog.Logger, cfg Config) (*Client, error) {
	switch {
	case cfg.APIKey == "":
		return nil, ErrMissingAPIKey
	case cfg.APISecret == "":
		return nil, ErrMissingSecret
	case cfg.BaseURL == "":
		return nil, ErrMissingBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		logger:     logger,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
		now:        now,
	}, nil
}

// Forward performs exactly one signed upstream call and returns the JSON
// payload on a 2xx answer. bodyObj is serialized once; the same bytes are
// signed and sent. A nil bodyObj sends no body and signs an empty string.
func (c *Client) Forward(ctx context.Context, method, path string, bodyObj any) (json.RawMessage, error) {
	method = strings.ToUpper(method)
	if method == "" || strings.ContainsFunc(method, unicode.IsDigit) {
		return nil, ErrInvalidMethod
	}
	if !strings.HasPrefix(path, "/") {
		return nil, ErrInvalidPath
	}

	var payload []byte
	if bodyObj != nil {
		var err error
		payload, err = json.Marshal(bodyObj)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}

	// The timestamp is taken per call; reusing one would allow replay.
	timestamp := Timestamp(c.now())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderAPIKey, c.apiKey)
	req.Header.Set(HeaderTimestamp, timestamp)
	req.Header.Set(HeaderSignature, Sign(c.apiSecret, timestamp, method, path, string(payload)))

	c.logger.DebugContext(ctx, "Forwarding request to upstream", "method", method, "path", path, "body_bytes", len(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to read upstream response: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.WarnContext(ctx, "Upstream returned non-2xx status",
			"method", method,
			"path", path,
			"status", resp.StatusCode)
		return nil, &UpstreamError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: respBody}
	}

	return normalizePayload(respBody)
}

// normalizePayload keeps valid JSON as is and wraps anything else as a JSON
// string, so callers always receive a JSON document.
func normalizePayload(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("null"), nil
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed), nil
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to encode upstream response: %w", err)
	}
	return json.RawMessage(quoted), nil
}
