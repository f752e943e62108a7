package entities

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Party is one side of a wallet transaction.
type Party struct {
	Account string `json:"account"`
	Name    string `json:"name,omitempty"`
}

// Label returns the display value of the party: its name when present,
// otherwise its account identifier. A nil party has an empty label.
func (p *Party) Label() string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.Account
}

// AccountID returns the account identifier or an empty string for a nil party.
func (p *Party) AccountID() string {
	if p == nil {
		return ""
	}
	return p.Account
}

// DisplayValue is a preformatted value the upstream may send either as a JSON
// string or as a bare number.
type DisplayValue string

func (v *DisplayValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = DisplayValue(s)
		return nil
	}
	*v = DisplayValue(data)
	return nil
}

// Transaction is a read-only record returned by the upstream wallet API.
type Transaction struct {
	ID                 string          `json:"id"`
	Sender             *Party          `json:"sender,omitempty"`
	Receiver           *Party          `json:"receiver,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	AmountWithCurrency DisplayValue    `json:"amount_with_currency,omitempty"`
	Currency           string          `json:"currency,omitempty"`
	Cause              *string         `json:"cause,omitempty"`
	CreatedAtTime      *int64          `json:"created_at_time,omitempty"`
	IsTopup            bool            `json:"is_topup"`
}

// TransactionList is the find-by-user payload. Fields other than data are
// carried by the gateway untouched and are not modelled here.
type TransactionList struct {
	Data []Transaction `json:"data"`
}

// SearchRequest is the body of the upstream search call.
type SearchRequest struct {
	Query string `json:"query"`
}

// SenderLabel returns the sender's name, or account when no name is set.
func (t Transaction) SenderLabel() string {
	return t.Sender.Label()
}

// ReceiverLabel returns the receiver's name, or account when no name is set.
func (t Transaction) ReceiverLabel() string {
	return t.Receiver.Label()
}

// AmountLabel prefers the upstream's formatted amount.
func (t Transaction) AmountLabel() string {
	if t.AmountWithCurrency != "" {
		return string(t.AmountWithCurrency)
	}
	return t.Amount.String()
}

// CreatedAt returns the creation time and false when the upstream omitted it.
func (t Transaction) CreatedAt() (time.Time, bool) {
	if t.CreatedAtTime == nil || *t.CreatedAtTime == 0 {
		return time.Time{}, false
	}
	return time.Unix(*t.CreatedAtTime, 0), true
}

// CreatedAtLabel renders the creation time, or "unknown" when absent.
func (t Transaction) CreatedAtLabel() string {
	at, ok := t.CreatedAt()
	if !ok {
		return "unknown"
	}
	return at.Format("2006-01-02 15:04:05")
}

// Direction classifies the transaction from the point of view of account.
func (t Transaction) Direction(account string) Direction {
	if account == "" {
		return DirectionOutgoing
	}
	return Classify(t.IsTopup, t.Sender.AccountID() == account, t.Receiver.AccountID() == account)
}
