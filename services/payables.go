package services

import (
	"fmt"
	"sort"
	"time"

	"agendapro-backend/models"
	"agendapro-backend/utils"
)

// Payable statuses. Status is derived on every read from (dueDate, paid);
// it is never stored. There is no transition out of StatusPaid: un-marking
// is only possible by deleting and recreating the obligation.
const (
	StatusPaid     = "Pago"
	StatusOverdue  = "Em atraso"
	StatusDueToday = "Pagar hoje"
	StatusOpen     = "Em aberto"
)

// Payable kinds.
const (
	KindExpense    = "expense"
	KindCommission = "commission"
)

// statusRank orders statuses for sorting. Rank-based, not lexicographic, so
// paid entries collate consistently regardless of locale.
var statusRank = map[string]int{
	StatusPaid:     1,
	StatusOverdue:  2,
	StatusDueToday: 3,
	StatusOpen:     4,
}

// DeriveStatus is a pure function of (dueDate, paid) evaluated against
// today at calendar-day granularity.
func DeriveStatus(dueDate time.Time, paid bool, today time.Time) string {
	if paid {
		return StatusPaid
	}
	diffDays := utils.DaysBetween(today, dueDate)
	if diffDays < 0 {
		return StatusOverdue
	}
	if diffDays == 0 {
		return StatusDueToday
	}
	return StatusOpen
}

// PayablesPreFilter is pushed down to storage: free-text search and the due
// date range. Everything depending on joined or derived fields is filtered
// in memory afterwards.
type PayablesPreFilter struct {
	Search string
	From   *time.Time
	To     *time.Time
}

// PayablesStore is the read surface of the ledger merger.
type PayablesStore interface {
	ExpensesDue(f PayablesPreFilter) ([]models.Expense, error)
	CommissionsDue(f PayablesPreFilter) ([]models.Commission, error)
	// BookingsByIDs returns the bookings with customer and staff loaded,
	// keyed by id. Missing bookings are simply absent from the map.
	BookingsByIDs(ids []uint) (map[uint]models.Booking, error)
}

// PayableEntry is the in-memory projection of one obligation, expense or
// commission, into the unified ledger shape. Never persisted.
type PayableEntry struct {
	Ref         string    `json:"ref"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	PayeeID     uint      `json:"payeeId,omitempty"`
	PayeeName   string    `json:"payeeName"`
	Amount      int64     `json:"amount"`
	DueDate     time.Time `json:"dueDate"`
	Paid        bool      `json:"paid"`
	Status      string    `json:"status"`
	Selectable  bool      `json:"selectable"`
}

// PayablesQuery combines storage pre-filters, in-memory post-filters,
// sorting and pagination.
type PayablesQuery struct {
	Search string
	From   *time.Time
	To     *time.Time

	PayeeID uint
	Kind    string
	Status  string

	SortBy   string // kind | status | amount | dueDate
	SortDesc bool

	Page     int
	PageSize int
}

// PayablesAggregates holds ledger totals over the full filtered set and the
// per-kind per-status entry counts for dashboard summaries. Amounts due
// today count toward TotalUnpaid only; they have no per-status total.
type PayablesAggregates struct {
	TotalUnpaid  int64                     `json:"totalUnpaid"`
	TotalOpen    int64                     `json:"totalOpen"`
	TotalOverdue int64                     `json:"totalOverdue"`
	TotalPaid    int64                     `json:"totalPaid"`
	Counts       map[string]map[string]int `json:"counts"`
}

// PayablesPage is one page of the merged ledger.
type PayablesPage struct {
	Items      []PayableEntry     `json:"items"`
	Total      int                `json:"total"`
	Aggregates PayablesAggregates `json:"aggregates"`
}

// PayablesService merges the expense and commission tables into one
// orderable, filterable, status-bearing view.
type PayablesService struct {
	store PayablesStore
	now   func() time.Time
}

func NewPayablesService(store PayablesStore) *PayablesService {
	return &PayablesService{store: store, now: time.Now}
}

// ListPayables fetches both obligation tables, projects them into the
// common ledger shape, then sorts, filters and paginates in memory.
func (s *PayablesService) ListPayables(q PayablesQuery) (*PayablesPage, error) {
	pre := PayablesPreFilter{Search: q.Search, From: q.From, To: q.To}

	expenses, err := s.store.ExpensesDue(pre)
	if err != nil {
		return nil, err
	}
	commissions, err := s.store.CommissionsDue(pre)
	if err != nil {
		return nil, err
	}

	bookingIDs := make([]uint, 0, len(commissions))
	seen := make(map[uint]bool, len(commissions))
	for i := range commissions {
		if !seen[commissions[i].BookingID] {
			seen[commissions[i].BookingID] = true
			bookingIDs = append(bookingIDs, commissions[i].BookingID)
		}
	}
	bookings := map[uint]models.Booking{}
	if len(bookingIDs) > 0 {
		bookings, err = s.store.BookingsByIDs(bookingIDs)
		if err != nil {
			return nil, err
		}
	}

	today := s.now()
	entries := make([]PayableEntry, 0, len(expenses)+len(commissions))
	for i := range expenses {
		entries = append(entries, projectExpense(&expenses[i], today))
	}
	for i := range commissions {
		entries = append(entries, projectCommission(&commissions[i], bookings, today))
	}

	sortEntries(entries, q.SortBy, q.SortDesc)

	filtered := entries[:0:0]
	for _, e := range entries {
		if q.PayeeID != 0 && e.PayeeID != q.PayeeID {
			continue
		}
		if q.Kind != "" && e.Kind != q.Kind {
			continue
		}
		if q.Status != "" && e.Status != q.Status {
			continue
		}
		filtered = append(filtered, e)
	}

	// Aggregates are computed over the full filtered set, not the page.
	aggregates := aggregate(filtered)

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	items := []PayableEntry{}
	if offset < len(filtered) {
		end := offset + pageSize
		if end > len(filtered) {
			end = len(filtered)
		}
		items = filtered[offset:end]
	}

	return &PayablesPage{
		Items:      items,
		Total:      len(filtered),
		Aggregates: aggregates,
	}, nil
}

func projectExpense(e *models.Expense, today time.Time) PayableEntry {
	description := e.Description
	if e.Category != "" {
		description = fmt.Sprintf("%s (%s)", e.Description, e.Category)
	}
	return PayableEntry{
		Ref:         fmt.Sprintf("E%d", e.ID),
		Kind:        KindExpense,
		Description: description,
		Amount:      e.Amount,
		DueDate:     e.DueDate,
		Paid:        e.Paid,
		Status:      DeriveStatus(e.DueDate, e.Paid, today),
		Selectable:  !e.Paid,
	}
}

func projectCommission(c *models.Commission, bookings map[uint]models.Booking, today time.Time) PayableEntry {
	entry := PayableEntry{
		Ref:     fmt.Sprintf("C%d", c.ID),
		Kind:    KindCommission,
		PayeeID: c.StaffID,
		Amount:  c.Amount,
		Paid:    c.Paid,
	}

	booking, ok := bookings[c.BookingID]
	if !ok {
		// The owning booking was deleted; the commission is still owed and
		// must stay visible in the ledger.
		entry.Description = "booking not found"
		entry.PayeeName = "not found"
	} else {
		entry.DueDate = booking.Date
		entry.PayeeName = booking.Staff.Name
		entry.Description = fmt.Sprintf("Comissão %s - %s (%s)",
			booking.Date.Format("02/01/2006"), booking.Customer.Name, booking.Staff.Name)
	}

	entry.Status = DeriveStatus(entry.DueDate, entry.Paid, today)
	entry.Selectable = !entry.Paid
	return entry
}

func sortEntries(entries []PayableEntry, sortBy string, desc bool) {
	var less func(a, b *PayableEntry) bool
	switch sortBy {
	case "kind":
		less = func(a, b *PayableEntry) bool { return a.Kind < b.Kind }
	case "status":
		less = func(a, b *PayableEntry) bool { return statusRank[a.Status] < statusRank[b.Status] }
	case "amount":
		less = func(a, b *PayableEntry) bool { return a.Amount < b.Amount }
	default:
		less = func(a, b *PayableEntry) bool { return a.DueDate.Before(b.DueDate) }
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if desc {
			return less(&entries[j], &entries[i])
		}
		return less(&entries[i], &entries[j])
	})
}

func aggregate(entries []PayableEntry) PayablesAggregates {
	agg := PayablesAggregates{
		Counts: map[string]map[string]int{
			KindExpense:    {},
			KindCommission: {},
		},
	}
	for _, e := range entries {
		switch e.Status {
		case StatusPaid:
			agg.TotalPaid += e.Amount
		case StatusOpen:
			agg.TotalOpen += e.Amount
		case StatusOverdue:
			agg.TotalOverdue += e.Amount
		}
		if !e.Paid {
			agg.TotalUnpaid += e.Amount
		}
		agg.Counts[e.Kind][e.Status]++
	}
	return agg
}
