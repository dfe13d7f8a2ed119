package inventory

import "github.com/mvillegas/cabstock-backend/pkg/enums"

// Status thresholds per item kind. Cabs and raw materials sit on the
// Out/Low/In ladder; accessories surface as Available once any units exist.
const (
	cabLowStockCeiling       = 7
	materialLowStockCeiling  = 10
	accessoryLowStockCeiling = 2
	accessoryInStockCeiling  = 5
)

// CabStatus derives the stock status for a cab quantity.
func CabStatus(quantity int) enums.StockStatus {
	switch {
	case quantity <= 0:
		return enums.StockStatusOut
	case quantity <= cabLowStockCeiling:
		return enums.StockStatusLow
	default:
		return enums.StockStatusIn
	}
}

// AccessoryStatus derives the stock status for an accessory quantity.
func AccessoryStatus(quantity int) enums.StockStatus {
	switch {
	case quantity <= 0:
		return enums.StockStatusOut
	case quantity <= accessoryLowStockCeiling:
		return enums.StockStatusLow
	case quantity <= accessoryInStockCeiling:
		return enums.StockStatusIn
	default:
		return enums.StockStatusAvailable
	}
}

// MaterialStatus derives the stock status for a material quantity.
func MaterialStatus(quantity int) enums.StockStatus {
	switch {
	case quantity <= 0:
		return enums.StockStatusOut
	case quantity <= materialLowStockCeiling:
		return enums.StockStatusLow
	default:
		return enums.StockStatusIn
	}
}
