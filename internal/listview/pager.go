// Package listview holds the client-side building blocks shared by the
// paged listing screens: pagination state, sort toggling, page-local
// filtering and the sequence-guarded view over server-paged results.
package listview

import "context"

// DefaultPerPage is used when a caller does not specify a page size.
const DefaultPerPage = 20

// PageInfo describes the visible slice for "showing X–Y of Z" displays and
// absolute row numbering.
type PageInfo struct {
	StartIndex   int
	EndIndex     int
	DisplayStart int
	DisplayEnd   int
	TotalItems   int
}

// Pager tracks the 1-based current page over a server-paged result set.
// Totals come from the backend envelope; the pager never recomputes them.
type Pager struct {
	perPage    int
	totalItems int
	totalPages int
	current    int
	onChange   func(ctx context.Context, page int) error
}

// NewPager builds a pager starting at page 1. onChange is invoked after a
// successful page move so the owner can refetch; it may be nil.
func NewPager(perPage int, onChange func(ctx context.Context, page int) error) *Pager {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Pager{perPage: perPage, current: 1, onChange: onChange}
}

// SetTotals records the envelope totals and clamps the current page back
// into range when the result set shrank underneath it.
func (p *Pager) SetTotals(totalItems, totalPages int) {
	if totalItems < 0 {
		totalItems = 0
	}
	if totalPages < 0 {
		totalPages = 0
	}
	p.totalItems = totalItems
	p.totalPages = totalPages
	if p.totalPages == 0 || p.current < 1 {
		p.current = 1
	} else if p.current > p.totalPages {
		p.current = p.totalPages
	}
}

// Current returns the 1-based current page.
func (p *Pager) Current() int { return p.current }

// TotalPages returns the backend-reported page count.
func (p *Pager) TotalPages() int { return p.totalPages }

// Goto moves to the given page and invokes the change callback. Requests
// outside [1, totalPages] are a no-op; an empty result set has no valid
// page at all.
func (p *Pager) Goto(ctx context.Context, page int) error {
	if page < 1 || p.totalPages == 0 || page > p.totalPages {
		return nil
	}
	p.current = page
	if p.onChange == nil {
		return nil
	}
	return p.onChange(ctx, page)
}

// Next advances one page when possible.
func (p *Pager) Next(ctx context.Context) error { return p.Goto(ctx, p.current+1) }

// Prev steps back one page when possible.
func (p *Pager) Prev(ctx context.Context) error { return p.Goto(ctx, p.current-1) }

// Reset returns to page 1 without firing the change callback; the caller
// decides whether a refetch is needed.
func (p *Pager) Reset() { p.current = 1 }

// Info computes the visible slice boundaries for the current page.
func (p *Pager) Info() PageInfo {
	start := (p.current - 1) * p.perPage
	end := start + p.perPage
	if end > p.totalItems {
		end = p.totalItems
	}
	if start > p.totalItems {
		start = p.totalItems
	}
	info := PageInfo{StartIndex: start, EndIndex: end, DisplayEnd: end, TotalItems: p.totalItems}
	if p.totalItems > 0 {
		info.DisplayStart = start + 1
	}
	return info
}
