package mocked

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.openly.dev/pointy"

	"github.com/sand/wallet-dashboard/backend/internal/entities"
)

const (
	defaultCurrency        = "ETB"
	transactionSpacing     = 37 * time.Minute
	baseAmountCents        = 2500
	amountStepCents        = 1375
	amountVariationBuckets = 17
)

var causes = []string{"Rent", "Groceries", "Inapp Payment", "Salary", "Airtime", "Utility bill", ""}

// GenerateInitialTransactions builds a deterministic sample dataset spread
// across accounts: regular transfers between neighbours, one topup per
// account, and a record without parties that must never be listed.
func GenerateInitialTransactions(accounts []string, perAccount int, now time.Time) []entities.Transaction {
	if len(accounts) == 0 || perAccount <= 0 {
		return nil
	}

	out := make([]entities.Transaction, 0, len(accounts)*(perAccount+1)+1)
	at := now.Unix()

	for i, account := range accounts {
		peer := accounts[(i+1)%len(accounts)]

		for j := range make([]int, perAccount) {
			at -= int64(transactionSpacing / time.Second)
			sender, receiver := account, peer
			if j%2 == 1 {
				sender, receiver = peer, account
			}

			cents := baseAmountCents + int64((i*perAccount+j)%amountVariationBuckets)*amountStepCents
			amount := decimal.New(cents, -2)

			tx := entities.Transaction{
				ID:                 uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s-%d", account, j))).String(),
				Sender:             &entities.Party{Account: sender, Name: displayName(sender)},
				Receiver:           &entities.Party{Account: receiver},
				Amount:             amount,
				AmountWithCurrency: entities.DisplayValue(amount.StringFixed(2) + " " + defaultCurrency),
				Currency:           defaultCurrency,
				CreatedAtTime:      pointy.Int64(at),
			}
			if cause := causes[(i+j)%len(causes)]; cause != "" {
				tx.Cause = pointy.String(cause)
			}
			out = append(out, tx)
		}

		out = append(out, entities.Transaction{
			ID:                 uuid.NewSHA1(uuid.NameSpaceOID, []byte(account+"-topup")).String(),
			Sender:             &entities.Party{Account: account},
			Receiver:           &entities.Party{Account: account},
			Amount:             decimal.NewFromInt(100),
			AmountWithCurrency: "100.00 " + defaultCurrency,
			Currency:           defaultCurrency,
			Cause:              pointy.String("Topup"),
			IsTopup:            true,
		})
	}

	out = append(out, entities.Transaction{
		ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte("orphan")).String(),
		Amount:   decimal.NewFromInt(1),
		Currency: defaultCurrency,
	})

	return out
}

func displayName(account string) string {
	if len(account) < 4 {
		return ""
	}
	return "Wallet " + account[:4]
}
