package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// PaymentSplit is one (method, amount) slice of a payment. A single payment
// may be divided across several methods, e.g. half cash, half card.
// Amounts are integer cents.
type PaymentSplit struct {
	MethodID uint  `json:"methodId" binding:"required"`
	Amount   int64 `json:"amount" binding:"min=0"`
}

// PaymentSplits is persisted as a JSON array in a jsonb column.
type PaymentSplits []PaymentSplit

func (s PaymentSplits) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(PaymentSplits{})
	}
	return json.Marshal(s)
}

func (s *PaymentSplits) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

// Total sums the split amounts in cents.
func (s PaymentSplits) Total() int64 {
	var total int64
	for _, split := range s {
		total += split.Amount
	}
	return total
}

// Payment is one receivable row against a booking. Several payments may
// target the same booking; reconciliation across them is done by the
// settlement service, never by editing rows directly.
type Payment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index;not null" json:"bookingId"`

	Splits        PaymentSplits `gorm:"type:jsonb;default:'[]'" json:"splits"`
	SettledAt     *time.Time    `json:"settledAt"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Note          string        `json:"note"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Settled reports whether the money was actually received.
func (p *Payment) Settled() bool {
	return p.SettledAt != nil
}

// DeclaredTotal is the sum of the current splits, settled or not.
func (p *Payment) DeclaredTotal() int64 {
	return p.Splits.Total()
}

// ReceivedTotal counts toward the booking only once the payment is settled.
func (p *Payment) ReceivedTotal() int64 {
	if p.Settled() {
		return p.DeclaredTotal()
	}
	return 0
}
