package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/mvillegas/cabstock-backend/pkg/db/models"
)

// CreateCabInput holds creation-time data for a cab listing.
type CreateCabInput struct {
	Name      string          `json:"name" validate:"required"`
	Make      string          `json:"make" validate:"required"`
	UnitColor string          `json:"unit_color" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gte=0"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
}

// UpdateCabInput captures the cab fields that may be mutated. Nil means
// "leave unchanged".
type UpdateCabInput struct {
	Name      *string          `json:"name,omitempty"`
	Make      *string          `json:"make,omitempty"`
	UnitColor *string          `json:"unit_color,omitempty"`
	Quantity  *int             `json:"quantity,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Image     *string          `json:"image,omitempty"`
}

// CreateAccessoryInput holds creation-time data for an accessory.
type CreateAccessoryInput struct {
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Supplier string          `json:"supplier" validate:"required"`
	Quantity int             `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
}

// UpdateAccessoryInput captures the accessory fields that may be mutated.
type UpdateAccessoryInput struct {
	Name     *string          `json:"name,omitempty"`
	Category *string          `json:"category,omitempty"`
	Supplier *string          `json:"supplier,omitempty"`
	Quantity *int             `json:"quantity,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Image    *string          `json:"image,omitempty"`
}

// CreateMaterialInput holds creation-time data for a material.
type CreateMaterialInput struct {
	Name     string           `json:"name" validate:"required"`
	Category string           `json:"category" validate:"required"`
	Supplier string           `json:"supplier" validate:"required"`
	Quantity int              `json:"quantity" validate:"gte=0"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Image    string           `json:"image"`
}

// UpdateMaterialInput captures the material fields that may be mutated.
type UpdateMaterialInput struct {
	Name     *string          `json:"name,omitempty"`
	Category *string          `json:"category,omitempty"`
	Supplier *string          `json:"supplier,omitempty"`
	Quantity *int             `json:"quantity,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Image    *string          `json:"image,omitempty"`
}

// MaterialPage is one page of materials plus the counts the listing UI needs.
type MaterialPage struct {
	Data     []models.Material `json:"data"`
	Total    int64             `json:"total"`
	LastPage int               `json:"last_page"`
}
