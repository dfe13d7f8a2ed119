package sales

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	"github.com/mvillegas/cabstock-backend/pkg/enums"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
)

// Repository handles the purchase ledger tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to sale operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists the sale and its line items in one transaction.
func (r *Repository) Create(ctx context.Context, sale *models.Sale) error {
	if sale == nil {
		return fmt.Errorf("sale is required")
	}
	return r.db.WithContext(ctx).Create(sale).Error
}

// FindByID loads a sale with its items.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns one page of sales, newest first, with the total count.
func (r *Repository) List(ctx context.Context, p pagination.Params) ([]models.Sale, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Sale{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Sale
	if err := q.Preload("Items").
		Order("sale_date DESC, id DESC").
		Offset(p.Offset()).
		Limit(pagination.NormalizeLimit(p.Limit)).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListRecorded returns every non-voided sale with items, oldest first. Used
// to rebuild dashboard aggregates at startup.
func (r *Repository) ListRecorded(ctx context.Context) ([]models.Sale, error) {
	var rows []models.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ?", enums.SaleStatusRecorded).
		Order("sale_date, id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Void flips a recorded sale to voided. Line items and totals stay intact so
// the ledger remains auditable.
func (r *Repository) Void(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ? AND status = ?", id, enums.SaleStatusRecorded).
		Update("status", enums.SaleStatusVoided)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
