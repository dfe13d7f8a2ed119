package models

import (
	"time"

	"github.com/mvillegas/cabstock-backend/pkg/enums"
)

// ActivityLogEntry is an append-only audit row. The user fields are a
// snapshot, not a foreign key, so historic entries stay readable after the
// user record changes or disappears.
type ActivityLogEntry struct {
	ID             uint                 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Timestamp      time.Time            `gorm:"column:timestamp;not null;index" json:"timestamp"`
	UserID         uint                 `gorm:"column:user_id;not null;default:0" json:"userId"`
	UserFullName   string               `gorm:"column:user_full_name;not null;default:''" json:"userFullName"`
	UserRole       string               `gorm:"column:user_role;not null;default:''" json:"userRole"`
	ActionType     enums.ActivityAction `gorm:"column:action_type;not null" json:"actionType"`
	Details        string               `gorm:"column:details;not null;default:''" json:"details"`
	Status         enums.ActivityStatus `gorm:"column:status;not null" json:"status"`
	IsSystemAction bool                 `gorm:"column:is_system_action;not null;default:false" json:"isSystemAction"`
}

// TableName keeps the plural table name explicit.
func (ActivityLogEntry) TableName() string {
	return "activity_logs"
}
