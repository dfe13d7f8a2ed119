package enums

import "fmt"

// SaleItemType tags each ledger line with the inventory it came from.
type SaleItemType string

const (
	SaleItemTypeCab       SaleItemType = "Cab"
	SaleItemTypeAccessory SaleItemType = "Accessory"
	SaleItemTypeMaterial  SaleItemType = "Material"
)

var validSaleItemTypes = []SaleItemType{
	SaleItemTypeCab,
	SaleItemTypeAccessory,
	SaleItemTypeMaterial,
}

// String implements fmt.Stringer.
func (t SaleItemType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known SaleItemType.
func (t SaleItemType) IsValid() bool {
	for _, candidate := range validSaleItemTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseSaleItemType converts raw input into a SaleItemType.
func ParseSaleItemType(value string) (SaleItemType, error) {
	for _, candidate := range validSaleItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sale item type %q", value)
}

// SaleStatus tracks whether a recorded sale still stands. Voided is reachable
// only through the compensation path after a failed inventory update.
type SaleStatus string

const (
	SaleStatusRecorded SaleStatus = "recorded"
	SaleStatusVoided   SaleStatus = "voided"
)

// String implements fmt.Stringer.
func (s SaleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SaleStatus.
func (s SaleStatus) IsValid() bool {
	return s == SaleStatusRecorded || s == SaleStatusVoided
}
