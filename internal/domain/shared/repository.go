package shared

import "context"

// Filter represents list query options.
// A zero PageSize returns every matching row.
type Filter struct {
	Page     int
	PageSize int
	OrderDir string
}

// DefaultFilter returns an unpaginated filter ordered by id ascending
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 0,
		OrderDir: "asc",
	}
}

// Offset returns the row offset for the filter's page
func (f Filter) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Transactor runs fn inside a single storage transaction. Repositories
// called with the ctx passed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
