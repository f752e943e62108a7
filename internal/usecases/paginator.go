package usecases

import "github.com/sand/wallet-dashboard/backend/internal/core/ports"

// Paginator slices an ordered result into fixed-size pages. The page index is
// always within [0, TotalPages()).
type Paginator[T any] struct {
	items     []T
	pageSize  int
	pageIndex int
}

// NewPaginator starts at page 0. A non-positive pageSize falls back to the
// dashboard default.
func NewPaginator[T any](items []T, pageSize int) *Paginator[T] {
	if pageSize <= 0 {
		pageSize = ports.DefaultPageSize
	}
	return &Paginator[T]{items: items, pageSize: pageSize}
}

// Reset installs a new visible set and returns to the first page.
func (p *Paginator[T]) Reset(items []T) {
	p.items = items
	p.pageIndex = 0
}

// TotalPages is never below 1, so an empty result still reads "page 1 of 1".
func (p *Paginator[T]) TotalPages() int {
	pages := (len(p.items) + p.pageSize - 1) / p.pageSize
	return max(1, pages)
}

func (p *Paginator[T]) PageIndex() int { return p.pageIndex }

func (p *Paginator[T]) PageSize() int { return p.pageSize }

func (p *Paginator[T]) Len() int { return len(p.items) }

// Items returns the current page; shorter than PageSize on the last page and
// empty when there is nothing to show.
func (p *Paginator[T]) Items() []T {
	start := p.pageIndex * p.pageSize
	if start >= len(p.items) {
		return []T{}
	}
	end := min(start+p.pageSize, len(p.items))
	return p.items[start:end]
}

func (p *Paginator[T]) Previous() {
	p.pageIndex = max(0, p.pageIndex-1)
}

func (p *Paginator[T]) Next() {
	p.pageIndex = min(p.TotalPages()-1, p.pageIndex+1)
}

// GoTo is a no-op when n is outside [0, TotalPages()).
func (p *Paginator[T]) GoTo(n int) bool {
	if n < 0 || n >= p.TotalPages() {
		return false
	}
	p.pageIndex = n
	return true
}

// HasPrevious and HasNext mirror the enabled state of the navigation controls.
func (p *Paginator[T]) HasPrevious() bool { return p.pageIndex > 0 }

func (p *Paginator[T]) HasNext() bool { return p.pageIndex < p.TotalPages()-1 }
