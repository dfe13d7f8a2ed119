package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvillegas/cabstock-backend/pkg/enums"
)

// Material is a workshop consumable. Price is optional for materials that are
// stocked but never sold directly.
type Material struct {
	ID        uint                   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string                 `gorm:"column:name;not null" json:"name"`
	Category  enums.MaterialCategory `gorm:"column:category;not null" json:"category"`
	Supplier  enums.Supplier         `gorm:"column:supplier;not null" json:"supplier"`
	Quantity  int                    `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Price     *decimal.Decimal       `gorm:"column:price;type:numeric(12,2)" json:"price,omitempty"`
	Status    enums.StockStatus      `gorm:"column:status;not null" json:"status"`
	Image     string                 `gorm:"column:image;not null;default:''" json:"image"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
