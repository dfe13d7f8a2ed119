package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvillegas/cabstock-backend/pkg/db/models"
)

// AccessoryLine is one accessory bundled into a cab sale. A zero quantity is
// a no-op line; the orchestrator skips it.
type AccessoryLine struct {
	AccessoryID uint `json:"accessoryId" validate:"required"`
	Quantity    int  `json:"quantity" validate:"gte=0"`
}

// SellCabInput is the request to sell cabs, optionally bundled with
// accessories.
type SellCabInput struct {
	CabID       uint            `json:"-"`
	CustomerID  uint            `json:"customerId" validate:"required"`
	SoldBy      string          `json:"soldBy"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	Accessories []AccessoryLine `json:"accessories"`
}

// SaleResult is the orchestrator's answer to a completed sale.
type SaleResult struct {
	Sale       *models.Sale    `json:"sale"`
	Cab        *models.Cab     `json:"cab"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	SoldAt     time.Time       `json:"soldAt"`
}

// SalePage is one page of sales plus listing counts.
type SalePage struct {
	Data     []models.Sale `json:"data"`
	Total    int64         `json:"total"`
	LastPage int           `json:"last_page"`
}
