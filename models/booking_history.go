package models

import "time"

// BookingHistory is an append-only audit trail entry for one booking.
type BookingHistory struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index;not null" json:"bookingId"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Actor       string `gorm:"type:varchar(120)" json:"actor"`
	Severity    string `gorm:"type:varchar(20);default:'info'" json:"severity"`

	CreatedAt time.Time `json:"createdAt"`
}
