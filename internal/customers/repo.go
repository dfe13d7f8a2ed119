package customers

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
)

// Repository handles customer persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to customer operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new customer row.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) error {
	if customer == nil {
		return fmt.Errorf("customer is required")
	}
	return r.db.WithContext(ctx).Create(customer).Error
}

// FindByID loads a customer by id.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns one page of customers ordered by registration date, newest
// first, with the total count.
func (r *Repository) List(ctx context.Context, search string, p pagination.Params) ([]models.Customer, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Customer{})
	if search != "" {
		needle := "%" + search + "%"
		q = q.Where("LOWER(full_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", needle, needle)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Customer
	if err := q.Order("date_registered DESC, id DESC").
		Offset(p.Offset()).
		Limit(pagination.NormalizeLimit(p.Limit)).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update saves the provided customer.
func (r *Repository) Update(ctx context.Context, customer *models.Customer) error {
	if customer == nil {
		return fmt.Errorf("customer is required")
	}
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete removes a customer row.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
