package mocked

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/sand/wallet-dashboard/backend/internal/core/ports"
	"github.com/sand/wallet-dashboard/backend/internal/entities"
	"github.com/sand/wallet-dashboard/backend/internal/gateway"
)

// Upstream is an in-process stand-in for the wallet provider API. It checks
// the signing headers the same way the provider does and serves a fixed
// dataset.
type Upstream struct {
	logger    *slog.Logger
	apiKey    string
	apiSecret string
	maxSkew   time.Duration
	now       func() time.Time

	mu           sync.RWMutex
	transactions []entities.Transaction
}

// NewUpstream creates a fake upstream accepting requests signed with apiKey and apiSecret.
func NewUpstream(logger *slog.Logger, apiKey, apiSecret string, transactions []entities.Transaction) *Upstream {
	return &Upstream{
		logger:       logger,
		apiKey:       apiKey,
		apiSecret:    apiSecret,
		maxSkew:      ports.MaxSignatureClockSkew,
		now:          time.Now,
		transactions: transactions,
	}
}

// SetTransactions replaces the served dataset.
func (u *Upstream) SetTransactions(transactions []entities.Transaction) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.transactions = transactions
}

func (u *Upstream) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(u.verifySignature)
	router.HandleFunc(gateway.FindByUserPath, u.findByUser).Methods(http.MethodGet)
	router.HandleFunc(gateway.SearchPath, u.search).Methods(http.MethodPost)
	return router
}

func (u *Upstream) verifySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "unreadable body"})
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if r.Header.Get(gateway.HeaderAPIKey) != u.apiKey {
			u.reject(w, r, "unknown api key")
			return
		}

		timestamp := r.Header.Get(gateway.HeaderTimestamp)
		signedAt, err := gateway.ParseTimestamp(timestamp)
		if err != nil {
			u.reject(w, r, "invalid timestamp")
			return
		}
		if skew := u.now().Sub(signedAt).Abs(); skew > u.maxSkew {
			u.reject(w, r, "timestamp outside accepted window")
			return
		}

		if !gateway.Verify(u.apiSecret, timestamp, r.Method, r.URL.Path, string(body), r.Header.Get(gateway.HeaderSignature)) {
			u.reject(w, r, "invalid signature")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (u *Upstream) reject(w http.ResponseWriter, r *http.Request, reason string) {
	u.logger.Warn("Rejecting upstream request", "path", r.URL.Path, "reason", reason)
	writeJSON(w, http.StatusUnauthorized, map[string]string{"message": reason})
}

func (u *Upstream) findByUser(w http.ResponseWriter, _ *http.Request) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	writeJSON(w, http.StatusOK, listResponse(u.transactions))
}

func (u *Upstream) search(w http.ResponseWriter, r *http.Request) {
	var req entities.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid search body"})
		return
	}

	q := strings.ToLower(strings.TrimSpace(req.Query))

	u.mu.RLock()
	defer u.mu.RUnlock()

	found := make([]entities.Transaction, 0)
	for _, tx := range u.transactions {
		if q == "" || containsAny(q, tx.ID, tx.Sender.AccountID(), tx.Receiver.AccountID(), tx.SenderLabel(), tx.ReceiverLabel(), causeOf(tx)) {
			found = append(found, tx)
		}
	}
	writeJSON(w, http.StatusOK, listResponse(found))
}

func listResponse(txs []entities.Transaction) map[string]any {
	return map[string]any{
		"data":     txs,
		"lastPage": 1,
		"total":    len(txs),
	}
}

func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func causeOf(tx entities.Transaction) string {
	if tx.Cause == nil {
		return ""
	}
	return *tx.Cause
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
