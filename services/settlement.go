package services

import (
	"fmt"
	"strings"
	"time"

	"agendapro-backend/models"
	"agendapro-backend/utils"
)

// DefaultMethodLabel is used whenever a payment method id cannot be
// resolved to a registered method.
const DefaultMethodLabel = "Dinheiro"

// SettlementStore is the storage surface the settlement engine needs.
// Implementations return ErrRecordNotFound / ErrBookingNotFound for
// missing rows.
type SettlementStore interface {
	Transaction(fn func(tx SettlementStore) error) error

	PaymentByID(id uint) (*models.Payment, error)
	BookingByID(id uint) (*models.Booking, error)
	PaymentsByBooking(bookingID uint) ([]models.Payment, error)
	SavePayment(p *models.Payment) error
	CreatePayment(p *models.Payment) error
	DeletePayment(id uint) error
	MethodName(id uint) (string, error)
}

// SettleInput carries the splits and metadata for one settlement call.
type SettleInput struct {
	Splits        models.PaymentSplits `json:"splits"`
	MarkSettled   bool                 `json:"markSettled"`
	InvoiceNumber string               `json:"invoiceNumber"`
	Note          string               `json:"note"`
	Actor         string               `json:"-"`
}

// SettleResult reports the updated payment and, for a partial settlement,
// the pending record created for the uncovered balance.
type SettleResult struct {
	Payment   *models.Payment `json:"payment"`
	Remainder *models.Payment `json:"remainder,omitempty"`
}

// Receivable is a payment enriched with its booking and the booking-level
// totals, for the read side of the API.
type Receivable struct {
	Payment           models.Payment   `json:"payment"`
	Booking           models.Booking   `json:"booking"`
	OtherPayments     []models.Payment `json:"otherPayments"`
	AmountReceived    int64            `json:"amountReceived"`
	AmountOutstanding int64            `json:"amountOutstanding"`
}

// SettlementService owns every pending -> settled transition of a payment.
// Payments are never settled by editing the row directly: settling requires
// reconciliation against all sibling payments of the booking, which only
// this service performs.
type SettlementService struct {
	store        SettlementStore
	history      HistorySink
	cashMethodID uint
	now          func() time.Time
}

func NewSettlementService(store SettlementStore, history HistorySink, cashMethodID uint) *SettlementService {
	return &SettlementService{
		store:        store,
		history:      history,
		cashMethodID: cashMethodID,
		now:          time.Now,
	}
}

// Settle overwrites the payment's splits and metadata and, when MarkSettled
// is set, runs the booking-level reconciliation:
//
//   - the record is already settled -> ErrExcessSettlement
//   - more already received than the booking is worth -> ErrExcessSettlement
//   - this settlement alone would exceed the remainder -> ErrOverSettlement
//   - settlement exactly exhausts the remainder -> sibling pending payments
//     are deleted, the booking is fully covered
//   - settlement covers less than the remainder -> a new pending payment is
//     opened for the difference so the balance stays collectible
//
// All validation happens before any write; the read-check-write sequence
// runs inside a single storage transaction.
func (s *SettlementService) Settle(recordID uint, in SettleInput) (*SettleResult, error) {
	for _, split := range in.Splits {
		if split.Amount < 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSplit, utils.FormatCents(split.Amount))
		}
	}

	var result SettleResult

	err := s.store.Transaction(func(tx SettlementStore) error {
		payment, err := tx.PaymentByID(recordID)
		if err != nil {
			return err
		}
		booking, err := tx.BookingByID(payment.BookingID)
		if err != nil {
			return err
		}
		net := booking.NetAmount()

		if !in.MarkSettled {
			// Metadata update only. No reconciliation: editing splits on a
			// pending (or already settled) record does not change SettledAt.
			payment.Splits = in.Splits
			payment.InvoiceNumber = in.InvoiceNumber
			payment.Note = in.Note
			if err := tx.SavePayment(payment); err != nil {
				return err
			}
			result.Payment = payment
			return nil
		}

		// Settled money is immutable: there is no re-settle or unsettle
		// transition. Correcting a settled record means deleting and
		// recreating it.
		if payment.Settled() {
			return fmt.Errorf("%w: payment %d already settled", ErrExcessSettlement, payment.ID)
		}

		siblings, err := tx.PaymentsByBooking(payment.BookingID)
		if err != nil {
			return err
		}

		var othersSettled int64
		for i := range siblings {
			if siblings[i].ID == payment.ID {
				continue
			}
			othersSettled += siblings[i].ReceivedTotal()
		}

		remaining := net - othersSettled
		declared := in.Splits.Total()

		// A fully covered (or overdrawn) booking admits no further money.
		if remaining < 0 || (remaining == 0 && declared > 0) {
			return fmt.Errorf("%w: booking total %s, already received %s",
				ErrExcessSettlement, utils.FormatCents(net), utils.FormatCents(othersSettled))
		}

		if declared > remaining {
			return fmt.Errorf("%w: remaining %s, declared %s",
				ErrOverSettlement, utils.FormatCents(remaining), utils.FormatCents(declared))
		}

		if declared == remaining {
			// Booking fully covered: the other pending payments are obsolete.
			for i := range siblings {
				if siblings[i].ID == payment.ID || siblings[i].Settled() {
					continue
				}
				if err := tx.DeletePayment(siblings[i].ID); err != nil {
					return err
				}
			}
		} else {
			// Partial settlement: keep the outstanding balance collectible.
			remainder := &models.Payment{
				BookingID: payment.BookingID,
				Splits: models.PaymentSplits{
					{MethodID: s.cashMethodID, Amount: remaining - declared},
				},
			}
			if err := tx.CreatePayment(remainder); err != nil {
				return err
			}
			result.Remainder = remainder
		}

		now := s.now()
		payment.SettledAt = &now
		payment.Splits = in.Splits
		payment.InvoiceNumber = in.InvoiceNumber
		payment.Note = in.Note
		if err := tx.SavePayment(payment); err != nil {
			return err
		}
		result.Payment = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordHistory(result.Payment, in)

	return &result, nil
}

func (s *SettlementService) recordHistory(payment *models.Payment, in SettleInput) {
	if s.history == nil {
		return
	}

	title := "Pagamento atualizado"
	description := fmt.Sprintf("Dados do recebimento #%d atualizados", payment.ID)
	if in.MarkSettled {
		title = "Pagamento recebido"
		description = fmt.Sprintf("Recebido %s (%s)",
			utils.FormatCents(payment.DeclaredTotal()), s.splitSummary(payment.Splits))
		if payment.InvoiceNumber != "" {
			description += " - NF " + payment.InvoiceNumber
		}
	}

	s.history.Record(payment.BookingID, HistoryEntry{
		Title:       title,
		Description: description,
		Actor:       in.Actor,
		Severity:    "info",
	})
}

func (s *SettlementService) splitSummary(splits models.PaymentSplits) string {
	parts := make([]string, 0, len(splits))
	for _, split := range splits {
		name, err := s.store.MethodName(split.MethodID)
		if err != nil || name == "" {
			name = DefaultMethodLabel
		}
		parts = append(parts, fmt.Sprintf("%s %s", name, utils.FormatCents(split.Amount)))
	}
	return strings.Join(parts, ", ")
}

// GetReceivable returns the payment with its booking, sibling payments and
// the booking-level received/outstanding totals.
func (s *SettlementService) GetReceivable(id uint) (*Receivable, error) {
	payment, err := s.store.PaymentByID(id)
	if err != nil {
		return nil, err
	}
	booking, err := s.store.BookingByID(payment.BookingID)
	if err != nil {
		return nil, err
	}
	siblings, err := s.store.PaymentsByBooking(payment.BookingID)
	if err != nil {
		return nil, err
	}

	var received int64
	others := make([]models.Payment, 0, len(siblings))
	for i := range siblings {
		received += siblings[i].ReceivedTotal()
		if siblings[i].ID != payment.ID {
			others = append(others, siblings[i])
		}
	}

	return &Receivable{
		Payment:           *payment,
		Booking:           *booking,
		OtherPayments:     others,
		AmountReceived:    received,
		AmountOutstanding: booking.NetAmount() - received,
	}, nil
}

// DeleteRecord removes a payment unconditionally. Reminders that reference
// the payment are removed by the store through the owning foreign key.
func (s *SettlementService) DeleteRecord(id uint) error {
	if _, err := s.store.PaymentByID(id); err != nil {
		return err
	}
	return s.store.DeletePayment(id)
}
