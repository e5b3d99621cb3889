package domain

// PaginationParams carries page/limit values from the HTTP layer to the ledger.
// Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of entries to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query params.
// Nil pointers fall back to page=1, limit=20.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, 100)
	}
	return p
}

// Offset returns the zero-based index of the first entry on the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginate returns the window of s selected by p. The result never aliases s.
// Pages past the end yield an empty, non-nil slice.
func Paginate[T any](s []T, p PaginationParams) []T {
	start := min(p.Offset(), len(s))
	end := min(start+p.Limit, len(s))
	return append(make([]T, 0, end-start), s[start:end]...)
}
