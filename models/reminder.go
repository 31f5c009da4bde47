package models

import (
	"time"
)

// Reminder is a scheduled notification about money due. A reminder owns an
// explicit reference to the payment or expense it was created for, so
// deleting the owning row cascades here through a real foreign key instead
// of pattern matching on stored parameters.
type Reminder struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Message  string    `gorm:"type:text;not null" json:"message"`
	RemindAt time.Time `gorm:"not null;index" json:"remindAt"`
	Sent     bool      `gorm:"default:false" json:"sent"`

	PaymentID *uint `gorm:"index" json:"paymentId"`
	ExpenseID *uint `gorm:"index" json:"expenseId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
