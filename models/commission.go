package models

import "time"

// Commission is the amount owed to a staff member for one booking.
type Commission struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index;not null" json:"bookingId"`
	StaffID   uint `gorm:"index;not null" json:"staffId"`

	Amount      int64  `gorm:"not null" json:"amount"`
	Description string `json:"description"`

	Paid            bool       `gorm:"default:false" json:"paid"`
	PaidDate        *time.Time `json:"paidDate"`
	PaymentMethodID uint       `json:"paymentMethodId"`
	PaidBy          string     `json:"paidBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
