package activitylog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
)

// Repository handles the append-only activity log table.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to activity log operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append persists a new log entry. Entries are never updated or deleted.
func (r *Repository) Append(ctx context.Context, entry *models.ActivityLogEntry) error {
	if entry == nil {
		return fmt.Errorf("entry is required")
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns one page of entries, newest first, with the total count.
func (r *Repository) List(ctx context.Context, p pagination.Params) ([]models.ActivityLogEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ActivityLogEntry{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ActivityLogEntry
	if err := q.Order("timestamp DESC, id DESC").
		Offset(p.Offset()).
		Limit(pagination.NormalizeLimit(p.Limit)).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
