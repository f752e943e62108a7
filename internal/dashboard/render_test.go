package dashboard

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.openly.dev/pointy"

	"github.com/sand/wallet-dashboard/backend/internal/entities"
	"github.com/sand/wallet-dashboard/backend/internal/usecases"
)

func TestRenderViewRows(t *testing.T) {
	v := usecases.View{
		Account: "A",
		Items: []entities.Transaction{
			{
				ID:                 "tx-in",
				Sender:             &entities.Party{Account: "B", Name: "Bee"},
				Receiver:           &entities.Party{Account: "A"},
				AmountWithCurrency: "10.00 ETB",
				Currency:           "ETB",
				Cause:              pointy.String("rent"),
			},
			{ID: "tx-out", Sender: &entities.Party{Account: "A"}, Receiver: &entities.Party{Account: "C"}},
		},
		Total:      2,
		TotalPages: 1,
	}

	var buf bytes.Buffer
	require.NoError(t, RenderView(&buf, v))

	out := buf.String()
	assert.Contains(t, out, "Showing 2 transactions for A, page 1 / 1")
	assert.Contains(t, out, "<- Incoming")
	assert.Contains(t, out, "-> Outgoing")
	assert.Contains(t, out, "Bee")
	assert.Contains(t, out, "10.00 ETB")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "Page 1 of 1, 2 total items")
}

func TestRenderViewEmptyAndError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderView(&buf, usecases.View{Account: "A", TotalPages: 1, Err: errors.New("gateway down")}))

	out := buf.String()
	assert.Contains(t, out, "Error: gateway down")
	assert.Contains(t, out, "No transactions to display.")
	assert.Contains(t, out, "Page 1 of 1, 0 total items")
}
