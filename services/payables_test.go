package services

import (
	"testing"
	"time"

	"agendapro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPayablesStore struct {
	expenses    []models.Expense
	commissions []models.Commission
	bookings    map[uint]models.Booking
}

func (m *mockPayablesStore) ExpensesDue(f PayablesPreFilter) ([]models.Expense, error) {
	return append([]models.Expense(nil), m.expenses...), nil
}

func (m *mockPayablesStore) CommissionsDue(f PayablesPreFilter) ([]models.Commission, error) {
	return append([]models.Commission(nil), m.commissions...), nil
}

func (m *mockPayablesStore) BookingsByIDs(ids []uint) (map[uint]models.Booking, error) {
	out := make(map[uint]models.Booking)
	for _, id := range ids {
		if b, ok := m.bookings[id]; ok {
			out[id] = b
		}
	}
	return out, nil
}

var testToday = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newPayablesFixture(store *mockPayablesStore) *PayablesService {
	svc := NewPayablesService(store)
	svc.now = func() time.Time { return testToday }
	return svc
}

func day(offset int) time.Time {
	return testToday.AddDate(0, 0, offset)
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name    string
		dueDate time.Time
		paid    bool
		want    string
	}{
		{"paid is terminal", day(-10), true, StatusPaid},
		{"paid in the future is still paid", day(10), true, StatusPaid},
		{"due yesterday", day(-1), false, StatusOverdue},
		{"due today, earlier hour", testToday.Add(-5 * time.Hour), false, StatusDueToday},
		{"due today, later hour", testToday.Add(5 * time.Hour), false, StatusDueToday},
		{"due tomorrow", day(1), false, StatusOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.dueDate, tt.paid, testToday)
			assert.Equal(t, tt.want, got)
			// Pure function: repeated evaluation never changes the answer.
			assert.Equal(t, got, DeriveStatus(tt.dueDate, tt.paid, testToday))
		})
	}
}

func TestListPayablesMergesAndProjects(t *testing.T) {
	store := &mockPayablesStore{
		expenses: []models.Expense{
			{ID: 1, Description: "Aluguel", Category: "Fixas", Amount: 250000, DueDate: day(-2)},
			{ID: 2, Description: "Energia", Amount: 40000, DueDate: day(3), Paid: true},
		},
		commissions: []models.Commission{
			{ID: 5, BookingID: 10, StaffID: 3, Amount: 9000},
		},
		bookings: map[uint]models.Booking{
			10: {
				ID:       10,
				Date:     day(0),
				Customer: models.Customer{Name: "Ana"},
				Staff:    models.Staff{ID: 3, Name: "Paulo"},
			},
		},
	}
	svc := newPayablesFixture(store)

	page, err := svc.ListPayables(PayablesQuery{})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)

	byRef := map[string]PayableEntry{}
	for _, e := range page.Items {
		byRef[e.Ref] = e
	}

	rent := byRef["E1"]
	assert.Equal(t, KindExpense, rent.Kind)
	assert.Equal(t, "Aluguel (Fixas)", rent.Description)
	assert.Equal(t, StatusOverdue, rent.Status)
	assert.True(t, rent.Selectable)

	power := byRef["E2"]
	assert.Equal(t, StatusPaid, power.Status)
	assert.False(t, power.Selectable)

	commission := byRef["C5"]
	assert.Equal(t, KindCommission, commission.Kind)
	assert.Equal(t, "Paulo", commission.PayeeName)
	assert.Equal(t, uint(3), commission.PayeeID)
	assert.Equal(t, StatusDueToday, commission.Status)
	assert.Contains(t, commission.Description, "Ana")
	assert.Contains(t, commission.Description, "Paulo")
}

func TestListPayablesBookingNotFound(t *testing.T) {
	store := &mockPayablesStore{
		commissions: []models.Commission{
			{ID: 9, BookingID: 404, StaffID: 2, Amount: 5000},
		},
		bookings: map[uint]models.Booking{},
	}
	svc := newPayablesFixture(store)

	page, err := svc.ListPayables(PayablesQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	entry := page.Items[0]
	assert.Equal(t, "booking not found", entry.Description)
	assert.Equal(t, "not found", entry.PayeeName)
	assert.True(t, entry.Selectable)

	// The orphan entry is still filterable by its derived fields.
	page, err = svc.ListPayables(PayablesQuery{Kind: KindCommission, Status: entry.Status})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestListPayablesStatusSortUsesRank(t *testing.T) {
	store := &mockPayablesStore{
		expenses: []models.Expense{
			{ID: 1, Description: "aberta", Amount: 100, DueDate: day(5)},
			{ID: 2, Description: "paga", Amount: 100, DueDate: day(5), Paid: true},
			{ID: 3, Description: "hoje", Amount: 100, DueDate: day(0)},
			{ID: 4, Description: "atrasada", Amount: 100, DueDate: day(-5)},
		},
	}
	svc := newPayablesFixture(store)

	page, err := svc.ListPayables(PayablesQuery{SortBy: "status"})
	require.NoError(t, err)

	asc := make([]string, 0, len(page.Items))
	for _, e := range page.Items {
		asc = append(asc, e.Status)
	}
	assert.Equal(t, []string{StatusPaid, StatusOverdue, StatusDueToday, StatusOpen}, asc)

	page, err = svc.ListPayables(PayablesQuery{SortBy: "status", SortDesc: true})
	require.NoError(t, err)

	desc := make([]string, 0, len(page.Items))
	for _, e := range page.Items {
		desc = append(desc, e.Status)
	}
	assert.Equal(t, []string{StatusOpen, StatusDueToday, StatusOverdue, StatusPaid}, desc)
}

func TestListPayablesPostFilters(t *testing.T) {
	store := &mockPayablesStore{
		expenses: []models.Expense{
			{ID: 1, Description: "Aluguel", Amount: 1000, DueDate: day(-1)},
		},
		commissions: []models.Commission{
			{ID: 2, BookingID: 10, StaffID: 3, Amount: 500},
			{ID: 3, BookingID: 10, StaffID: 4, Amount: 700},
		},
		bookings: map[uint]models.Booking{
			10: {ID: 10, Date: day(2), Staff: models.Staff{Name: "Paulo"}},
		},
	}
	svc := newPayablesFixture(store)

	page, err := svc.ListPayables(PayablesQuery{PayeeID: 4})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "C3", page.Items[0].Ref)

	page, err = svc.ListPayables(PayablesQuery{Kind: KindExpense})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "E1", page.Items[0].Ref)

	page, err = svc.ListPayables(PayablesQuery{Status: StatusOverdue})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "E1", page.Items[0].Ref)
}

func TestListPayablesPagination(t *testing.T) {
	store := &mockPayablesStore{
		expenses: []models.Expense{
			{ID: 1, Description: "a", Amount: 100, DueDate: day(1)},
			{ID: 2, Description: "b", Amount: 200, DueDate: day(2)},
			{ID: 3, Description: "c", Amount: 300, DueDate: day(3)},
		},
	}
	svc := newPayablesFixture(store)

	page, err := svc.ListPayables(PayablesQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "E3", page.Items[0].Ref)

	page, err = svc.ListPayables(PayablesQuery{Page: 5, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)
}

func TestListPayablesAggregatesCoverFullFilteredSet(t *testing.T) {
	store := &mockPayablesStore{
		expenses: []models.Expense{
			{ID: 1, Description: "atrasada", Amount: 1000, DueDate: day(-3)},
			{ID: 2, Description: "aberta", Amount: 2000, DueDate: day(3)},
			{ID: 3, Description: "paga", Amount: 4000, DueDate: day(-1), Paid: true},
			{ID: 4, Description: "hoje", Amount: 800, DueDate: day(0)},
		},
	}
	svc := newPayablesFixture(store)

	// One row per page: the aggregates must still span all four entries.
	page, err := svc.ListPayables(PayablesQuery{Page: 1, PageSize: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	agg := page.Aggregates
	assert.Equal(t, int64(3800), agg.TotalUnpaid)
	assert.Equal(t, int64(2000), agg.TotalOpen)
	assert.Equal(t, int64(1000), agg.TotalOverdue)
	assert.Equal(t, int64(4000), agg.TotalPaid)

	assert.Equal(t, 1, agg.Counts[KindExpense][StatusOverdue])
	assert.Equal(t, 1, agg.Counts[KindExpense][StatusOpen])
	assert.Equal(t, 1, agg.Counts[KindExpense][StatusPaid])
	assert.Equal(t, 1, agg.Counts[KindExpense][StatusDueToday])
}
