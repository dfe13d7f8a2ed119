package models

import (
	"time"

	"github.com/mvillegas/cabstock-backend/pkg/enums"
)

// User is a dashboard operator account.
type User struct {
	ID           uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FullName     string         `gorm:"column:full_name;not null" json:"fullName"`
	Email        string         `gorm:"column:email;not null;uniqueIndex:uq_users_email" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.UserRole `gorm:"column:role;not null;default:staff" json:"role"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true" json:"isActive"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
