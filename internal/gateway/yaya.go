package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sand/wallet-dashboard/backend/internal/entities"
)

// Upstream endpoints consumed by this service.
const (
	FindByUserPath = "/api/en/transaction/find-by-user"
	SearchPath     = "/api/en/transaction/search"
)

// FindByUser returns the raw transaction list of the key's user.
func (c *Client) FindByUser(ctx context.Context) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodGet, FindByUserPath, nil)
}

// Search runs the upstream free-text search.
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, SearchPath, entities.SearchRequest{Query: query})
}

// FetchTransactions decodes the find-by-user payload. The upstream is assumed
// to return the complete set in one response.
func (c *Client) FetchTransactions(ctx context.Context) ([]entities.Transaction, error) {
	raw, err := c.FindByUser(ctx)
	if err != nil {
		return nil, err
	}

	var list entities.TransactionList
	if err = json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	return list.Data, nil
}
