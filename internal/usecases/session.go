package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sand/wallet-dashboard/backend/internal/core/ports"
	"github.com/sand/wallet-dashboard/backend/internal/entities"
)

// ErrStaleRefresh is returned for a refresh whose result arrived after a
// newer refresh was started. Its result has been dropped.
var ErrStaleRefresh = errors.New("refresh superseded by a newer one")

// RefreshToken identifies one refresh generation.
type RefreshToken uint64

// View is a snapshot of what the dashboard should display.
type View struct {
	Account     string
	SearchText  string
	Items       []entities.Transaction
	Total       int
	PageIndex   int
	TotalPages  int
	PageSize    int
	HasPrevious bool
	HasNext     bool
	Loading     bool
	Err         error
}

// Summary is the one-line status shown above the table.
func (v View) Summary() string {
	return fmt.Sprintf("Showing %d transactions for %s, page %d / %d", v.Total, v.Account, v.PageIndex+1, v.TotalPages)
}

// Session owns the query state of one dashboard: the fetched dataset, the
// selected account, the search text and the current page. The visible set is
// derived from the first three and recomputed whenever one of them changes,
// which also sends the paginator back to page 0.
type Session struct {
	logger  *slog.Logger
	fetcher ports.TransactionFetcher

	mu         sync.Mutex
	dataset    []entities.Transaction
	account    string
	searchText string
	pager      *Paginator[entities.Transaction]
	generation uint64
	loading    bool
	lastErr    error
}

// NewSession creates an empty session viewing account.
func NewSession(logger *slog.Logger, fetcher ports.TransactionFetcher, account string, pageSize int) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		logger:  logger,
		fetcher: fetcher,
		account: account,
		pager:   NewPaginator[entities.Transaction](nil, pageSize),
	}
	s.recompute()
	return s
}

// Refresh fetches the full dataset and replaces the current one on success.
// On failure the previous dataset stays visible and the error is kept for View.
func (s *Session) Refresh(ctx context.Context) error {
	if s.fetcher == nil {
		return errors.New("session has no transaction source")
	}
	token := s.BeginRefresh()
	txs, err := s.fetcher.FetchTransactions(ctx)
	return s.CompleteRefresh(token, txs, err)
}

// BeginRefresh starts a new generation. Any refresh begun earlier becomes stale.
func (s *Session) BeginRefresh() RefreshToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.loading = true
	return RefreshToken(s.generation)
}

// CompleteRefresh applies the outcome of the refresh identified by token.
// Results of superseded generations are discarded.
func (s *Session) CompleteRefresh(token RefreshToken, txs []entities.Transaction, fetchErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if uint64(token) != s.generation {
		s.logger.Debug("Dropping stale refresh result", "token", uint64(token), "current", s.generation)
		return ErrStaleRefresh
	}

	s.loading = false
	if fetchErr != nil {
		s.lastErr = fetchErr
		s.logger.Error("Failed to refresh transactions", "error", fetchErr, "kept", len(s.dataset))
		return fetchErr
	}

	s.lastErr = nil
	s.dataset = txs
	s.recompute()
	s.logger.Info("Transactions refreshed", "count", len(txs))
	return nil
}

// SelectAccount switches the viewed account.
func (s *Session) SelectAccount(account string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if account == s.account {
		return
	}
	s.account = account
	s.recompute()
}

// SetSearch changes the free-text filter.
func (s *Session) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if text == s.searchText {
		return
	}
	s.searchText = text
	s.recompute()
}

func (s *Session) ClearSearch() {
	s.SetSearch("")
}

func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pager.Next()
}

func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pager.Previous()
}

// GoTo jumps to the zero-based page n and reports whether n was in range.
func (s *Session) GoTo(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.GoTo(n)
}

// View returns the current snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return View{
		Account:     s.account,
		SearchText:  s.searchText,
		Items:       s.pager.Items(),
		Total:       s.pager.Len(),
		PageIndex:   s.pager.PageIndex(),
		TotalPages:  s.pager.TotalPages(),
		PageSize:    s.pager.PageSize(),
		HasPrevious: s.pager.HasPrevious(),
		HasNext:     s.pager.HasNext(),
		Loading:     s.loading,
		Err:         s.lastErr,
	}
}

// recompute must be called with mu held.
func (s *Session) recompute() {
	s.pager.Reset(Query(s.dataset, s.account, s.searchText))
}
