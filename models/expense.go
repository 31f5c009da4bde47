package models

import "time"

// Expense is an operating cost payable by the business. ParentID links
// installments generated from a repeated expense back to their origin.
type Expense struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Description string    `gorm:"not null" json:"description"`
	Amount      int64     `gorm:"not null" json:"amount"`
	DueDate     time.Time `gorm:"not null;index" json:"dueDate"`
	Category    string    `gorm:"default:'Geral'" json:"category"`
	Note        string    `json:"note"`

	Paid            bool       `gorm:"default:false" json:"paid"`
	PaidDate        *time.Time `json:"paidDate"`
	PaymentMethodID uint       `json:"paymentMethodId"`
	PaidBy          string     `json:"paidBy"`

	ParentID *uint `gorm:"index" json:"parentId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
