package pagination

// Page-based pagination matching the dashboard's listing contract:
// requests carry ?page&limit, responses carry {data, total, last_page}.

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any page query can request.
	MaxLimit = 100
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps the page number to 1-based.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// Offset returns the SQL offset for the normalized params.
func (p Params) Offset() int {
	return (NormalizePage(p.Page) - 1) * NormalizeLimit(p.Limit)
}

// LastPage computes the final page number for a total row count.
func LastPage(total int64, limit int) int {
	size := int64(NormalizeLimit(limit))
	if total <= 0 {
		return 1
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return int(pages)
}
