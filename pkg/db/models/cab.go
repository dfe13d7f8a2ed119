package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvillegas/cabstock-backend/pkg/enums"
)

// Cab is a vehicle listing. Status is derived from Quantity and rewritten on
// every quantity change; it is stored only so list queries can filter on it.
type Cab struct {
	ID        uint              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string            `gorm:"column:name;not null" json:"name"`
	Make      enums.CabMake     `gorm:"column:make;not null" json:"make"`
	UnitColor enums.CabColor    `gorm:"column:unit_color;not null" json:"unit_color"`
	Quantity  int               `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Price     decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Status    enums.StockStatus `gorm:"column:status;not null" json:"status"`
	Image     string            `gorm:"column:image;not null;default:''" json:"image"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
