package services

import "errors"

var (
	// ErrBookingNotFound is returned when a payment references a booking
	// that no longer exists.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrRecordNotFound is returned when the requested row does not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrExcessSettlement means the booking has already received more than
	// its net amount, so nothing further can be settled against it.
	ErrExcessSettlement = errors.New("amount already received exceeds booking total")

	// ErrOverSettlement means this settlement alone would exceed the
	// remaining balance of the booking.
	ErrOverSettlement = errors.New("settlement exceeds remaining balance")

	// ErrInvalidSplit is returned when a declared split carries a negative
	// amount.
	ErrInvalidSplit = errors.New("split amount must not be negative")

	// ErrNoEntriesSelected is returned by the outflow poster when the
	// caller selected nothing to pay.
	ErrNoEntriesSelected = errors.New("no entries selected")
)
