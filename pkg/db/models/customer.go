package models

import "time"

// Customer is a purchasing party. Created and deleted independently of sales;
// a sale keeps its own customer id reference.
type Customer struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FullName       string    `gorm:"column:full_name;not null" json:"fullName"`
	Email          string    `gorm:"column:email;not null;uniqueIndex:uq_customers_email" json:"email"`
	Phone          string    `gorm:"column:phone;not null" json:"phone"`
	Address        string    `gorm:"column:address;not null;default:''" json:"address"`
	DateRegistered time.Time `gorm:"column:date_registered;autoCreateTime" json:"dateRegistered"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
