package enums

import "fmt"

// StockStatus is the derived availability state shown for every inventory row.
// It is always recomputed from quantity; a stored status that disagrees with
// the row's quantity is a defect.
type StockStatus string

const (
	StockStatusOut       StockStatus = "Out of Stock"
	StockStatusLow       StockStatus = "Low Stock"
	StockStatusIn        StockStatus = "In Stock"
	StockStatusAvailable StockStatus = "Available"
)

var validStockStatuses = []StockStatus{
	StockStatusOut,
	StockStatusLow,
	StockStatusIn,
	StockStatusAvailable,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}
