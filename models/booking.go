package models

import (
	"time"
)

// Booking is a scheduled service engagement. GrossAmount and Discount are
// integer cents; the chargeable value of the booking is NetAmount.
type Booking struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"index;not null" json:"customerId"`
	StaffID    uint `gorm:"index" json:"staffId"`
	ServiceID  uint `gorm:"index" json:"serviceId"`

	Date        time.Time `gorm:"not null" json:"date"`
	GrossAmount int64     `gorm:"not null" json:"grossAmount"`
	Discount    int64     `gorm:"not null;default:0" json:"discount"`
	Status      string    `gorm:"type:varchar(20);default:'scheduled'" json:"status"`
	Notes       string    `json:"notes"`

	Customer Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Staff    Staff     `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Payments []Payment `gorm:"foreignKey:BookingID" json:"payments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NetAmount is the chargeable amount after discount, in cents.
func (b *Booking) NetAmount() int64 {
	return b.GrossAmount - b.Discount
}
