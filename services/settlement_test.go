package services

import (
	"testing"
	"time"

	"agendapro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// MOCK STORE
// ============================================================================

type mockSettlementStore struct {
	payments map[uint]*models.Payment
	bookings map[uint]*models.Booking
	methods  map[uint]string
	nextID   uint

	deleted []uint
}

func newMockSettlementStore() *mockSettlementStore {
	return &mockSettlementStore{
		payments: make(map[uint]*models.Payment),
		bookings: make(map[uint]*models.Booking),
		methods:  map[uint]string{1: "Dinheiro", 2: "Cartão"},
		nextID:   1,
	}
}

func (m *mockSettlementStore) addBooking(id uint, gross, discount int64) {
	m.bookings[id] = &models.Booking{ID: id, GrossAmount: gross, Discount: discount}
}

func (m *mockSettlementStore) addPayment(bookingID uint, splits models.PaymentSplits, settledAt *time.Time) uint {
	id := m.nextID
	m.nextID++
	m.payments[id] = &models.Payment{ID: id, BookingID: bookingID, Splits: splits, SettledAt: settledAt}
	return id
}

func (m *mockSettlementStore) Transaction(fn func(tx SettlementStore) error) error {
	return fn(m)
}

func (m *mockSettlementStore) PaymentByID(id uint) (*models.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockSettlementStore) BookingByID(id uint) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockSettlementStore) PaymentsByBooking(bookingID uint) ([]models.Payment, error) {
	var out []models.Payment
	for id := uint(1); id < m.nextID; id++ {
		if p, ok := m.payments[id]; ok && p.BookingID == bookingID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockSettlementStore) SavePayment(p *models.Payment) error {
	cp := *p
	m.payments[p.ID] = &cp
	return nil
}

func (m *mockSettlementStore) CreatePayment(p *models.Payment) error {
	p.ID = m.nextID
	m.nextID++
	cp := *p
	m.payments[p.ID] = &cp
	return nil
}

func (m *mockSettlementStore) DeletePayment(id uint) error {
	delete(m.payments, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockSettlementStore) MethodName(id uint) (string, error) {
	return m.methods[id], nil
}

func (m *mockSettlementStore) pendingFor(bookingID uint) []models.Payment {
	var out []models.Payment
	for _, p := range m.payments {
		if p.BookingID == bookingID && !p.Settled() {
			out = append(out, *p)
		}
	}
	return out
}

type captureSink struct {
	entries []HistoryEntry
	ids     []uint
}

func (s *captureSink) Record(bookingID uint, entry HistoryEntry) {
	s.ids = append(s.ids, bookingID)
	s.entries = append(s.entries, entry)
}

func newSettlementFixture() (*SettlementService, *mockSettlementStore, *captureSink) {
	store := newMockSettlementStore()
	sink := &captureSink{}
	svc := NewSettlementService(store, sink, 1)
	return svc, store, sink
}

// ============================================================================
// TESTS
// ============================================================================

func TestSettlePartialCreatesRemainder(t *testing.T) {
	svc, store, sink := newSettlementFixture()
	store.addBooking(1, 10000, 0)
	r1 := store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 10000}}, nil)

	result, err := svc.Settle(r1, SettleInput{
		Splits:      models.PaymentSplits{{MethodID: 1, Amount: 6000}},
		MarkSettled: true,
		Actor:       "Maria",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Payment.SettledAt)
	assert.Equal(t, int64(6000), result.Payment.DeclaredTotal())

	require.NotNil(t, result.Remainder)
	assert.Equal(t, int64(4000), result.Remainder.DeclaredTotal())
	assert.Nil(t, result.Remainder.SettledAt)
	assert.Equal(t, uint(1), result.Remainder.Splits[0].MethodID) // default cash method

	pending := store.pendingFor(1)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(4000), pending[0].DeclaredTotal())

	require.Len(t, sink.entries, 1)
	assert.Equal(t, "Pagamento recebido", sink.entries[0].Title)
	assert.Equal(t, "Maria", sink.entries[0].Actor)
}

func TestSettleExactExhaustsRemainder(t *testing.T) {
	svc, store, _ := newSettlementFixture()
	store.addBooking(1, 10000, 0)
	now := time.Now()
	store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 6000}}, &now)
	r2 := store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 4000}}, nil)
	extra := store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 1000}}, nil)

	result, err := svc.Settle(r2, SettleInput{
		Splits:      models.PaymentSplits{{MethodID: 2, Amount: 4000}},
		MarkSettled: true,
	})
	require.NoError(t, err)
	assert.Nil(t, result.Remainder)

	// The other pending record became obsolete and was removed.
	assert.Contains(t, store.deleted, extra)
	assert.Empty(t, store.pendingFor(1))
}

func TestSettleFullyCoveredBookingRejected(t *testing.T) {
	svc, store, sink := newSettlementFixture()
	store.addBooking(1, 10000, 0)
	now := time.Now()
	store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 6000}}, &now)
	store.addPayment(1, models.PaymentSplits{{MethodID: 2, Amount: 4000}}, &now)
	r3 := store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 100}}, nil)

	_, err := svc.Settle(r3, SettleInput{
		Splits:      models.PaymentSplits{{MethodID: 1, Amount: 100}},
		MarkSettled: true,
	})
	require.ErrorIs(t, err, ErrExcessSettlement)

	// Rejected operations write nothing and leave no audit entry.
	p, _ := store.PaymentByID(r3)
	assert.Nil(t, p.SettledAt)
	assert.Empty(t, sink.entries)
}

func TestSettleOverRemainingRejected(t *testing.T) {
	svc, store, _ := newSettlementFixture()
	store.addBooking(1, 10000, 2000) // net 8000
	now := time.Now()
	store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 5000}}, &now)
	r2 := store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 3000}}, nil)

	_, err := svc.Settle(r2, SettleInput{
		Splits:      models.PaymentSplits{{MethodID: 1, Amount: 3500}},
		MarkSettled: true,
	})
	require.ErrorIs(t, err, ErrOverSettlement)

	p, _ := store.PaymentByID(r2)
	assert.Nil(t, p.SettledAt)
	assert.Equal(t, int64(3000), p.DeclaredTotal())
}

func TestSettleMetadataOnlySkipsReconciliation(t *testing.T) {
	svc, store, sink := newSettlementFixture()
	store.addBooking(1, 10000, 0)
	r1 := store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 10000}}, nil)

	// Splits exceeding the booking total are accepted while the record
	// stays pending; reconciliation only runs on markSettled.
	result, err := svc.Settle(r1, SettleInput{
		Splits:        models.PaymentSplits{{MethodID: 2, Amount: 99999}},
		MarkSettled:   false,
		InvoiceNumber: "NF-001",
		Note:          "ajuste",
	})
	require.NoError(t, err)
	assert.Nil(t, result.Payment.SettledAt)
	assert.Nil(t, result.Remainder)

	p, _ := store.PaymentByID(r1)
	assert.Equal(t, int64(99999), p.DeclaredTotal())
	assert.Equal(t, "NF-001", p.InvoiceNumber)
	assert.Equal(t, "ajuste", p.Note)

	require.Len(t, sink.entries, 1)
	assert.Equal(t, "Pagamento atualizado", sink.entries[0].Title)
}

func TestSettleSequence(t *testing.T) {
	// Booking worth 100.00: 60.00 then 40.00, then nothing more.
	svc, store, _ := newSettlementFixture()
	store.addBooking(7, 10000, 0)
	r1 := store.addPayment(7, models.PaymentSplits{{MethodID: 1, Amount: 10000}}, nil)

	res, err := svc.Settle(r1, SettleInput{
		Splits:      models.PaymentSplits{{MethodID: 1, Amount: 6000}},
		MarkSettled: true,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Remainder)
	r2 := res.Remainder.ID

	res, err = svc.Settle(r2, SettleInput{
		Splits:      models.PaymentSplits{{MethodID: 2, Amount: 4000}},
		MarkSettled: true,
	})
	require.NoError(t, err)
	assert.Nil(t, res.Remainder)
	assert.Empty(t, store.pendingFor(7))

	r3 := store.addPayment(7, models.PaymentSplits{{MethodID: 1, Amount: 1}}, nil)
	_, err = svc.Settle(r3, SettleInput{
		Splits:      models.PaymentSplits{{MethodID: 1, Amount: 1}},
		MarkSettled: true,
	})
	require.ErrorIs(t, err, ErrExcessSettlement)
}

func TestSettleAlreadySettledRejected(t *testing.T) {
	svc, store, sink := newSettlementFixture()
	store.addBooking(1, 10000, 0)
	r1 := store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 10000}}, nil)

	_, err := svc.Settle(r1, SettleInput{
		Splits:      models.PaymentSplits{{MethodID: 1, Amount: 10000}},
		MarkSettled: true,
	})
	require.NoError(t, err)

	// Re-settling the now-sole settled record must not rewrite the money
	// already received.
	_, err = svc.Settle(r1, SettleInput{
		Splits:      models.PaymentSplits{{MethodID: 1, Amount: 3000}},
		MarkSettled: true,
	})
	require.ErrorIs(t, err, ErrExcessSettlement)

	p, _ := store.PaymentByID(r1)
	require.NotNil(t, p.SettledAt)
	assert.Equal(t, int64(10000), p.DeclaredTotal())
	assert.Empty(t, store.pendingFor(1))
	require.Len(t, sink.entries, 1) // only the first settlement is audited
}

func TestSettleNegativeSplitRejected(t *testing.T) {
	svc, store, sink := newSettlementFixture()
	store.addBooking(1, 10000, 0)
	r1 := store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 10000}}, nil)

	_, err := svc.Settle(r1, SettleInput{
		Splits:      models.PaymentSplits{{MethodID: 1, Amount: -5000}},
		MarkSettled: true,
	})
	require.ErrorIs(t, err, ErrInvalidSplit)

	// One bad split poisons the whole declaration.
	_, err = svc.Settle(r1, SettleInput{
		Splits:      models.PaymentSplits{{MethodID: 1, Amount: 6000}, {MethodID: 2, Amount: -1}},
		MarkSettled: true,
	})
	require.ErrorIs(t, err, ErrInvalidSplit)

	// Metadata-only edits are held to the same rule.
	_, err = svc.Settle(r1, SettleInput{
		Splits: models.PaymentSplits{{MethodID: 1, Amount: -1}},
	})
	require.ErrorIs(t, err, ErrInvalidSplit)

	p, _ := store.PaymentByID(r1)
	assert.Nil(t, p.SettledAt)
	assert.Equal(t, int64(10000), p.DeclaredTotal())
	require.Len(t, store.pendingFor(1), 1)
	assert.Empty(t, sink.entries)
}

func TestSettleNotFound(t *testing.T) {
	svc, store, _ := newSettlementFixture()

	_, err := svc.Settle(99, SettleInput{MarkSettled: true})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	orphan := store.addPayment(42, models.PaymentSplits{{MethodID: 1, Amount: 100}}, nil)
	_, err = svc.Settle(orphan, SettleInput{MarkSettled: true})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetReceivableTotals(t *testing.T) {
	svc, store, _ := newSettlementFixture()
	store.addBooking(1, 10000, 1000) // net 9000
	now := time.Now()
	r1 := store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 5000}}, &now)
	store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 4000}}, nil)

	receivable, err := svc.GetReceivable(r1)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), receivable.AmountReceived)
	assert.Equal(t, int64(4000), receivable.AmountOutstanding)
	assert.Len(t, receivable.OtherPayments, 1)
	assert.Equal(t, uint(1), receivable.Booking.ID)
}

func TestDeleteRecord(t *testing.T) {
	svc, store, _ := newSettlementFixture()
	store.addBooking(1, 10000, 0)
	r1 := store.addPayment(1, models.PaymentSplits{{MethodID: 1, Amount: 10000}}, nil)

	require.NoError(t, svc.DeleteRecord(r1))
	assert.Contains(t, store.deleted, r1)

	assert.ErrorIs(t, svc.DeleteRecord(r1), ErrRecordNotFound)
}
