package services

import (
	"testing"
	"time"

	"agendapro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOutflowStore struct {
	expenses    map[uint]*models.Expense
	commissions map[uint]*models.Commission
}

func newMockOutflowStore() *mockOutflowStore {
	return &mockOutflowStore{
		expenses:    make(map[uint]*models.Expense),
		commissions: make(map[uint]*models.Commission),
	}
}

func (m *mockOutflowStore) ExpenseByID(id uint) (*models.Expense, error) {
	e, ok := m.expenses[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockOutflowStore) SaveExpense(e *models.Expense) error {
	cp := *e
	m.expenses[e.ID] = &cp
	return nil
}

func (m *mockOutflowStore) CommissionByID(id uint) (*models.Commission, error) {
	c, ok := m.commissions[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockOutflowStore) SaveCommission(c *models.Commission) error {
	cp := *c
	m.commissions[c.ID] = &cp
	return nil
}

func newOutflowFixture() (*OutflowService, *mockOutflowStore, *captureSink) {
	store := newMockOutflowStore()
	sink := &captureSink{}
	return NewOutflowService(store, sink), store, sink
}

func TestParseLedgerRef(t *testing.T) {
	kind, id, err := ParseLedgerRef("E123")
	require.NoError(t, err)
	assert.Equal(t, KindExpense, kind)
	assert.Equal(t, uint(123), id)

	kind, id, err = ParseLedgerRef("C45")
	require.NoError(t, err)
	assert.Equal(t, KindCommission, kind)
	assert.Equal(t, uint(45), id)

	for _, ref := range []string{"", "E", "X12", "Eabc", "12"} {
		_, _, err := ParseLedgerRef(ref)
		assert.Error(t, err, "ref %q", ref)
	}
}

func TestPostOutflowRequiresRefs(t *testing.T) {
	svc, _, _ := newOutflowFixture()

	_, err := svc.PostOutflow(OutflowInput{})
	assert.ErrorIs(t, err, ErrNoEntriesSelected)
}

func TestPostOutflowMarksEntriesPaid(t *testing.T) {
	svc, store, sink := newOutflowFixture()
	store.expenses[1] = &models.Expense{ID: 1, Description: "Aluguel", Amount: 250000}
	store.commissions[2] = &models.Commission{ID: 2, BookingID: 10, StaffID: 3, Amount: 9000}

	paymentDate := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	result, err := svc.PostOutflow(OutflowInput{
		PaymentDate: paymentDate,
		MethodID:    2,
		Refs:        []string{"E1", "C2"},
		Actor:       "Maria",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"E1", "C2"}, result.Paid)
	assert.Nil(t, result.Failed)

	expense := store.expenses[1]
	assert.True(t, expense.Paid)
	require.NotNil(t, expense.PaidDate)
	assert.Equal(t, paymentDate, *expense.PaidDate)
	assert.Equal(t, uint(2), expense.PaymentMethodID)
	assert.Equal(t, "Maria", expense.PaidBy)

	commission := store.commissions[2]
	assert.True(t, commission.Paid)
	assert.Equal(t, "Maria", commission.PaidBy)

	// Paying a commission lands on the booking's timeline; expenses have no
	// booking to annotate.
	require.Len(t, sink.entries, 1)
	assert.Equal(t, uint(10), sink.ids[0])
	assert.Equal(t, "Comissão paga", sink.entries[0].Title)
	assert.Contains(t, sink.entries[0].Description, "20/06/2025")
}

func TestPostOutflowPartialFailureKeepsCommits(t *testing.T) {
	svc, store, _ := newOutflowFixture()
	store.expenses[1] = &models.Expense{ID: 1, Amount: 1000}
	store.expenses[3] = &models.Expense{ID: 3, Amount: 3000}

	result, err := svc.PostOutflow(OutflowInput{
		Refs: []string{"E1", "E2", "Xbad", "E3"},
	})
	require.NoError(t, err)

	// Entries commit independently: the bad refs in the middle do not roll
	// back E1 nor stop E3 from being processed.
	assert.Equal(t, []string{"E1", "E3"}, result.Paid)
	require.Len(t, result.Failed, 2)
	assert.Contains(t, result.Failed, "E2")
	assert.Contains(t, result.Failed, "Xbad")

	assert.True(t, store.expenses[1].Paid)
	assert.True(t, store.expenses[3].Paid)
}

func TestPostOutflowRejectsAlreadyPaid(t *testing.T) {
	svc, store, sink := newOutflowFixture()
	paid := time.Now()
	store.expenses[1] = &models.Expense{ID: 1, Amount: 1000, Paid: true, PaidDate: &paid, PaymentMethodID: 1}
	store.commissions[2] = &models.Commission{ID: 2, BookingID: 10, Amount: 500, Paid: true}

	result, err := svc.PostOutflow(OutflowInput{
		MethodID: 2,
		Refs:     []string{"E1", "C2"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Paid)
	assert.Contains(t, result.Failed["E1"], "already paid")
	assert.Contains(t, result.Failed["C2"], "already paid")

	// The original payment details survive untouched.
	assert.Equal(t, uint(1), store.expenses[1].PaymentMethodID)
	assert.Empty(t, sink.entries)
}

func TestPostOutflowDefaultsPaymentDate(t *testing.T) {
	svc, store, _ := newOutflowFixture()
	store.expenses[1] = &models.Expense{ID: 1, Amount: 1000}

	before := time.Now()
	result, err := svc.PostOutflow(OutflowInput{Refs: []string{"E1"}})
	require.NoError(t, err)
	require.Equal(t, []string{"E1"}, result.Paid)

	require.NotNil(t, store.expenses[1].PaidDate)
	assert.False(t, store.expenses[1].PaidDate.Before(before))
}
