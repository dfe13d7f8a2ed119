package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvillegas/cabstock-backend/pkg/enums"
)

// Sale is a purchase-ledger entry. Immutable once recorded; the compensation
// path may flip Status to voided but never edits line items or totals.
type Sale struct {
	ID         uint             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CustomerID uint             `gorm:"column:customer_id;not null;index" json:"customerId"`
	SoldBy     string           `gorm:"column:sold_by;not null" json:"soldBy"`
	SaleDate   time.Time        `gorm:"column:sale_date;not null" json:"saleDate"`
	TotalPrice decimal.Decimal  `gorm:"column:total_price;type:numeric(14,2);not null" json:"totalPrice"`
	Status     enums.SaleStatus `gorm:"column:status;not null;default:recorded" json:"status"`
	Items      []SaleItem       `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"-"`
}

// SaleItem is one line of a sale, a snapshot of the item at sale time.
type SaleItem struct {
	ID        uint               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SaleID    uint               `gorm:"column:sale_id;not null;index" json:"-"`
	ItemType  enums.SaleItemType `gorm:"column:item_type;not null" json:"itemType"`
	ItemID    uint               `gorm:"column:item_id;not null" json:"itemId"`
	Name      string             `gorm:"column:name;not null" json:"name"`
	Quantity  int                `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal    `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unitPrice"`
	Subtotal  decimal.Decimal    `gorm:"column:subtotal;type:numeric(14,2);not null" json:"subtotal"`
}
