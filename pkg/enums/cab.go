package enums

import "fmt"

// CabMake represents the vehicle makes carried by the dealership.
type CabMake string

const (
	CabMakeMazda   CabMake = "Mazda"
	CabMakePorsche CabMake = "Porsche"
	CabMakeToyota  CabMake = "Toyota"
	CabMakeNissan  CabMake = "Nissan"
	CabMakeFord    CabMake = "Ford"
)

var validCabMakes = []CabMake{
	CabMakeMazda,
	CabMakePorsche,
	CabMakeToyota,
	CabMakeNissan,
	CabMakeFord,
}

// String implements fmt.Stringer.
func (m CabMake) String() string {
	return string(m)
}

// IsValid reports whether the value is a known CabMake.
func (m CabMake) IsValid() bool {
	for _, candidate := range validCabMakes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseCabMake converts raw input into a CabMake.
func ParseCabMake(value string) (CabMake, error) {
	for _, candidate := range validCabMakes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cab make %q", value)
}

// CabColor represents the unit colors offered per cab listing.
type CabColor string

const (
	CabColorBlack  CabColor = "Black"
	CabColorWhite  CabColor = "White"
	CabColorSilver CabColor = "Silver"
	CabColorRed    CabColor = "Red"
	CabColorBlue   CabColor = "Blue"
)

var validCabColors = []CabColor{
	CabColorBlack,
	CabColorWhite,
	CabColorSilver,
	CabColorRed,
	CabColorBlue,
}

// String implements fmt.Stringer.
func (c CabColor) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CabColor.
func (c CabColor) IsValid() bool {
	for _, candidate := range validCabColors {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCabColor converts raw input into a CabColor.
func ParseCabColor(value string) (CabColor, error) {
	for _, candidate := range validCabColors {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cab color %q", value)
}
