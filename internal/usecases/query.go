package usecases

import (
	"cmp"
	"slices"
	"strings"

	"go.openly.dev/pointy"

	"github.com/sand/wallet-dashboard/backend/internal/entities"
)

// Query returns the transactions of account that match searchText, most
// recent first. The dataset is never modified. Missing timestamps sort as 0
// and equal timestamps keep their dataset order.
func Query(dataset []entities.Transaction, account, searchText string) []entities.Transaction {
	if account == "" {
		return []entities.Transaction{}
	}

	needle := strings.ToLower(strings.TrimSpace(searchText))

	result := make([]entities.Transaction, 0, len(dataset))
	for _, tx := range dataset {
		if !belongsTo(tx, account) {
			continue
		}
		if needle != "" && !matches(tx, needle) {
			continue
		}
		result = append(result, tx)
	}

	slices.SortStableFunc(result, func(a, b entities.Transaction) int {
		return cmp.Compare(createdAt(b), createdAt(a))
	})

	return result
}

func belongsTo(tx entities.Transaction, account string) bool {
	sender := tx.Sender.AccountID()
	receiver := tx.Receiver.AccountID()
	if sender == "" && receiver == "" {
		return false
	}
	return sender == account || receiver == account
}

// matches expects needle already trimmed and lower-cased.
func matches(tx entities.Transaction, needle string) bool {
	fields := [...]string{
		tx.ID,
		tx.SenderLabel(),
		tx.ReceiverLabel(),
		pointy.StringValue(tx.Cause, ""),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func createdAt(tx entities.Transaction) int64 {
	return pointy.Int64Value(tx.CreatedAtTime, 0)
}
