package ports

import (
	"context"
	"encoding/json"

	"github.com/sand/wallet-dashboard/backend/internal/entities"
)

// Forwarder relays one signed call to the upstream wallet API.
type Forwarder interface {
	Forward(ctx context.Context, method, path string, bodyObj any) (json.RawMessage, error)
}

// TransactionGateway is the upstream surface the gateway handlers use.
type TransactionGateway interface {
	FindByUser(ctx context.Context) (json.RawMessage, error)
	Search(ctx context.Context, query string) (json.RawMessage, error)
}

// TransactionFetcher returns the complete transaction set for a session.
type TransactionFetcher interface {
	FetchTransactions(ctx context.Context) ([]entities.Transaction, error)
}
