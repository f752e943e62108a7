package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, AllTransactionsPath, r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":"tx-1","sender":{"account":"A"},"amount":"3.5","created_at_time":10}],"lastPage":1}`))
	}))
	defer srv.Close()

	c := NewGatewayClient(nil, srv.URL+"/", time.Second, nil)
	txs, err := c.FetchTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "tx-1", txs[0].ID)
	assert.Equal(t, "3.5", txs[0].AmountLabel())
}

func TestGatewayClientFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"code":"rate_limited"}`))
	}))
	defer srv.Close()

	c := NewGatewayClient(nil, srv.URL, time.Second, nil)
	_, err := c.FetchTransactions(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
	assert.Equal(t, `Error fetching all transactions: 503 {"code":"rate_limited"}`, err.Error())
}
