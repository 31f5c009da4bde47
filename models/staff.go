package models

import (
	"time"
)

// Staff is a service professional who earns commissions on bookings.
// CommissionRate is a percentage (0-100).
type Staff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name           string  `gorm:"not null" json:"name"`
	Phone          string  `json:"phone"`
	CommissionRate float64 `gorm:"default:0" json:"commissionRate"`
	IsActive       bool    `gorm:"default:true" json:"isActive"`

	Commissions []Commission `gorm:"foreignKey:StaffID" json:"commissions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
