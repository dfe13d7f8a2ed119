package inventory

import "strings"

// Filter is a conjunction of optional equality constraints plus a
// case-insensitive substring search. Empty fields mean "no constraint".
type Filter struct {
	Search   string
	Make     string
	Color    string
	Category string
	Supplier string
	Status   string
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Make == "" && f.Color == "" &&
		f.Category == "" && f.Supplier == "" && f.Status == ""
}

// searchable is the projection of an inventory row that filters act on.
type searchable struct {
	Name     string
	Make     string
	Color    string
	Category string
	Supplier string
	Status   string
}

// matches applies every set constraint; all must hold.
func (f Filter) matches(row searchable) bool {
	if f.Make != "" && row.Make != f.Make {
		return false
	}
	if f.Color != "" && row.Color != f.Color {
		return false
	}
	if f.Category != "" && row.Category != f.Category {
		return false
	}
	if f.Supplier != "" && row.Supplier != f.Supplier {
		return false
	}
	if f.Status != "" && row.Status != f.Status {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		name := strings.ToLower(row.Name)
		makeLC := strings.ToLower(row.Make)
		if !strings.Contains(name, needle) && !strings.Contains(makeLC, needle) {
			return false
		}
	}
	return true
}
