package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string     `gorm:"not null" json:"name"`
	Phone    string     `gorm:"not null;uniqueIndex" json:"phone"`
	Email    string     `json:"email"`
	Birthday *time.Time `json:"birthday"`
	Notes    string     `json:"notes"`

	TotalVisits int        `gorm:"default:0" json:"totalVisits"`
	TotalSpent  int64      `gorm:"default:0" json:"totalSpent"`
	LastVisit   *time.Time `json:"lastVisit"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`

	Bookings []Booking `gorm:"foreignKey:CustomerID" json:"bookings,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
