package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvillegas/cabstock-backend/pkg/enums"
)

func TestCabStatusThresholds(t *testing.T) {
	cases := []struct {
		quantity int
		want     enums.StockStatus
	}{
		{0, enums.StockStatusOut},
		{1, enums.StockStatusLow},
		{7, enums.StockStatusLow},
		{8, enums.StockStatusIn},
		{100, enums.StockStatusIn},
		{-3, enums.StockStatusOut},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CabStatus(tc.quantity), "quantity %d", tc.quantity)
	}
}

func TestAccessoryStatusThresholds(t *testing.T) {
	cases := []struct {
		quantity int
		want     enums.StockStatus
	}{
		{0, enums.StockStatusOut},
		{1, enums.StockStatusLow},
		{2, enums.StockStatusLow},
		{3, enums.StockStatusIn},
		{5, enums.StockStatusIn},
		{6, enums.StockStatusAvailable},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AccessoryStatus(tc.quantity), "quantity %d", tc.quantity)
	}
}

func TestMaterialStatusThresholds(t *testing.T) {
	cases := []struct {
		quantity int
		want     enums.StockStatus
	}{
		{0, enums.StockStatusOut},
		{1, enums.StockStatusLow},
		{10, enums.StockStatusLow},
		{11, enums.StockStatusIn},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MaterialStatus(tc.quantity), "quantity %d", tc.quantity)
	}
}
