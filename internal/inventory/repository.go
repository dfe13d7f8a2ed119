package inventory

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
)

// repository is the shared GORM plumbing for the three inventory tables.
type repository[T any] struct {
	db *gorm.DB
}

func (r *repository[T]) List(ctx context.Context) ([]T, error) {
	var rows []T
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository[T]) Create(ctx context.Context, row *T) error {
	if row == nil {
		return fmt.Errorf("row is required")
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository[T]) Save(ctx context.Context, row *T) error {
	if row == nil {
		return fmt.Errorf("row is required")
	}
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *repository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByIDWithTx loads a row inside the provided transaction.
func (r *repository[T]) FindByIDWithTx(tx *gorm.DB, id uint) (*T, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var row T
	if err := tx.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// SaveWithTx persists the row inside the provided transaction.
func (r *repository[T]) SaveWithTx(tx *gorm.DB, row *T) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("row is required")
	}
	return tx.Save(row).Error
}

// CabRepository handles cab persistence.
type CabRepository struct {
	repository[models.Cab]
}

// NewCabRepository binds a GORM DB to cab operations.
func NewCabRepository(db *gorm.DB) *CabRepository {
	return &CabRepository{repository[models.Cab]{db: db}}
}

// AccessoryRepository handles accessory persistence.
type AccessoryRepository struct {
	repository[models.Accessory]
}

// NewAccessoryRepository binds a GORM DB to accessory operations.
func NewAccessoryRepository(db *gorm.DB) *AccessoryRepository {
	return &AccessoryRepository{repository[models.Accessory]{db: db}}
}

// MaterialRepository handles material persistence.
type MaterialRepository struct {
	repository[models.Material]
}

// NewMaterialRepository binds a GORM DB to material operations.
func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{repository[models.Material]{db: db}}
}

// ListPage returns one page of materials matching the filter, with the total
// row count for the unbounded filter so callers can compute last_page.
func (r *MaterialRepository) ListPage(ctx context.Context, filter Filter, p pagination.Params) ([]models.Material, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Material{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Supplier != "" {
		q = q.Where("supplier = ?", filter.Supplier)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		needle := "%" + filter.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?)", needle)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Material
	if err := q.Order("id").Offset(p.Offset()).Limit(pagination.NormalizeLimit(p.Limit)).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
