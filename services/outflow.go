package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"agendapro-backend/models"
	"agendapro-backend/utils"
)

// OutflowStore is the write surface of the batch outflow poster.
type OutflowStore interface {
	ExpenseByID(id uint) (*models.Expense, error)
	SaveExpense(e *models.Expense) error
	CommissionByID(id uint) (*models.Commission, error)
	SaveCommission(c *models.Commission) error
}

// OutflowInput selects the ledger entries to mark as paid in one batch.
// Refs use the ledger entry refs, e.g. "E123" for an expense, "C45" for a
// commission.
type OutflowInput struct {
	PaymentDate time.Time `json:"paymentDate"`
	MethodID    uint      `json:"paymentMethodId"`
	Refs        []string  `json:"refs"`
	Actor       string    `json:"-"`
}

// OutflowResult reports, per ref, what was committed and what failed. Each
// entry commits independently: a failure partway leaves prior entries paid.
type OutflowResult struct {
	Paid   []string          `json:"paid"`
	Failed map[string]string `json:"failed,omitempty"`
}

// OutflowService applies a single "paid" transition across a heterogeneous
// list of payable ledger entries.
type OutflowService struct {
	store   OutflowStore
	history HistorySink
}

func NewOutflowService(store OutflowStore, history HistorySink) *OutflowService {
	return &OutflowService{store: store, history: history}
}

// ParseLedgerRef splits a ledger entry ref into its kind and numeric id.
func ParseLedgerRef(ref string) (kind string, id uint, err error) {
	if len(ref) < 2 {
		return "", 0, fmt.Errorf("invalid ledger ref %q", ref)
	}
	switch ref[0] {
	case 'E':
		kind = KindExpense
	case 'C':
		kind = KindCommission
	default:
		return "", 0, fmt.Errorf("invalid ledger ref %q", ref)
	}
	n, err := strconv.ParseUint(ref[1:], 10, 32)
	if err != nil {
		return "", 0, fmt.Errorf("invalid ledger ref %q", ref)
	}
	return kind, uint(n), nil
}

// PostOutflow marks every referenced entry as paid with the given date and
// method. Updates are not atomic across entries: invalid refs are reported
// in Failed and do not roll back entries already committed.
func (s *OutflowService) PostOutflow(in OutflowInput) (*OutflowResult, error) {
	if len(in.Refs) == 0 {
		return nil, ErrNoEntriesSelected
	}

	paymentDate := in.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	result := &OutflowResult{Failed: map[string]string{}}
	for _, ref := range in.Refs {
		ref = strings.TrimSpace(ref)
		kind, id, err := ParseLedgerRef(ref)
		if err != nil {
			result.Failed[ref] = err.Error()
			continue
		}

		switch kind {
		case KindExpense:
			err = s.payExpense(id, paymentDate, in)
		case KindCommission:
			err = s.payCommission(id, paymentDate, in)
		}
		if err != nil {
			result.Failed[ref] = err.Error()
			continue
		}
		result.Paid = append(result.Paid, ref)
	}

	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	return result, nil
}

func (s *OutflowService) payExpense(id uint, paymentDate time.Time, in OutflowInput) error {
	expense, err := s.store.ExpenseByID(id)
	if err != nil {
		return err
	}
	if expense.Paid {
		return fmt.Errorf("expense %d already paid", id)
	}

	expense.Paid = true
	expense.PaidDate = &paymentDate
	expense.PaymentMethodID = in.MethodID
	expense.PaidBy = in.Actor
	return s.store.SaveExpense(expense)
}

func (s *OutflowService) payCommission(id uint, paymentDate time.Time, in OutflowInput) error {
	commission, err := s.store.CommissionByID(id)
	if err != nil {
		return err
	}
	if commission.Paid {
		return fmt.Errorf("commission %d already paid", id)
	}

	commission.Paid = true
	commission.PaidDate = &paymentDate
	commission.PaymentMethodID = in.MethodID
	commission.PaidBy = in.Actor
	if err := s.store.SaveCommission(commission); err != nil {
		return err
	}

	if s.history != nil {
		s.history.Record(commission.BookingID, HistoryEntry{
			Title:       "Comissão paga",
			Description: fmt.Sprintf("Comissão de %s paga em %s", utils.FormatCents(commission.Amount), paymentDate.Format("02/01/2006")),
			Actor:       in.Actor,
			Severity:    "info",
		})
	}
	return nil
}
