package enums

import "fmt"

// MaterialCategory groups workshop materials consumed by the service bay.
type MaterialCategory string

const (
	MaterialCategoryPaint      MaterialCategory = "Paint"
	MaterialCategoryUpholstery MaterialCategory = "Upholstery"
	MaterialCategoryHardware   MaterialCategory = "Hardware"
	MaterialCategoryConsumable MaterialCategory = "Consumable"
)

var validMaterialCategories = []MaterialCategory{
	MaterialCategoryPaint,
	MaterialCategoryUpholstery,
	MaterialCategoryHardware,
	MaterialCategoryConsumable,
}

// String implements fmt.Stringer.
func (c MaterialCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known MaterialCategory.
func (c MaterialCategory) IsValid() bool {
	for _, candidate := range validMaterialCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseMaterialCategory converts raw input into a MaterialCategory.
func ParseMaterialCategory(value string) (MaterialCategory, error) {
	for _, candidate := range validMaterialCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid material category %q", value)
}
