package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sand/wallet-dashboard/backend/internal/core/ports"
	"github.com/sand/wallet-dashboard/backend/internal/entities"
	"github.com/sand/wallet-dashboard/backend/internal/gateway"
)

// AllTransactionsPath is the gateway route serving the full dataset.
const AllTransactionsPath = "/api/transactions/all"

var _ ports.TransactionFetcher = (*GatewayClient)(nil)

// FetchError is a non-2xx answer from the gateway.
type FetchError struct {
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Error fetching all transactions: %d %s", e.StatusCode, e.Body)
}

// GatewayClient loads transactions from the gateway, never from the upstream
// directly, so no secret lives on the dashboard side.
type GatewayClient struct {
	logger     *slog.Logger
	baseURL    string
	httpClient gateway.HTTPClient
}

func NewGatewayClient(logger *slog.Logger, baseURL string, timeout time.Duration, httpClient gateway.HTTPClient) *GatewayClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GatewayClient{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *GatewayClient) FetchTransactions(ctx context.Context) ([]entities.Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+AllTransactionsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var list entities.TransactionList
	if err = json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	c.logger.Debug("Fetched transactions from gateway", "count", len(list.Data))
	return list.Data, nil
}
