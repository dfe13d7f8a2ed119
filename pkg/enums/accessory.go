package enums

import "fmt"

// AccessoryCategory groups add-on products sold alongside cabs.
type AccessoryCategory string

const (
	AccessoryCategoryInterior    AccessoryCategory = "Interior"
	AccessoryCategoryExterior    AccessoryCategory = "Exterior"
	AccessoryCategoryElectronics AccessoryCategory = "Electronics"
	AccessoryCategorySafety      AccessoryCategory = "Safety"
	AccessoryCategoryMaintenance AccessoryCategory = "Maintenance"
)

var validAccessoryCategories = []AccessoryCategory{
	AccessoryCategoryInterior,
	AccessoryCategoryExterior,
	AccessoryCategoryElectronics,
	AccessoryCategorySafety,
	AccessoryCategoryMaintenance,
}

// String implements fmt.Stringer.
func (c AccessoryCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known AccessoryCategory.
func (c AccessoryCategory) IsValid() bool {
	for _, candidate := range validAccessoryCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseAccessoryCategory converts raw input into an AccessoryCategory.
func ParseAccessoryCategory(value string) (AccessoryCategory, error) {
	for _, candidate := range validAccessoryCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid accessory category %q", value)
}

// Supplier identifies the sourcing partners for accessories and materials.
type Supplier string

const (
	SupplierAutoPro Supplier = "AutoPro Supply"
	SupplierShinko  Supplier = "Shinko Parts"
	SupplierVista   Supplier = "Vista Trading"
	SupplierPrimo   Supplier = "Primo Works"
)

var validSuppliers = []Supplier{
	SupplierAutoPro,
	SupplierShinko,
	SupplierVista,
	SupplierPrimo,
}

// String implements fmt.Stringer.
func (s Supplier) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Supplier.
func (s Supplier) IsValid() bool {
	for _, candidate := range validSuppliers {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSupplier converts raw input into a Supplier.
func ParseSupplier(value string) (Supplier, error) {
	for _, candidate := range validSuppliers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid supplier %q", value)
}
