package repository

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pageable carries pagination parameters for range queries.
// Page is zero-based. Sort is "field" or "field,desc" with field names
// whitelisted by the implementation.
type Pageable struct {
	Page int
	Size int
	Sort string
}

// Limit returns the effective page size, clamped to [1, MaxPageSize].
func (p Pageable) Limit() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	if p.Size > MaxPageSize {
		return MaxPageSize
	}
	return p.Size
}

// Offset returns the row offset for the requested page.
func (p Pageable) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return p.Page * p.Limit()
}
