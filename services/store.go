package services

import (
	"errors"

	"agendapro-backend/models"

	"gorm.io/gorm"
)

// GormStore backs the settlement, payables and outflow services with the
// relational schema.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Transaction(fn func(tx SettlementStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) PaymentByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (s *GormStore) BookingByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *GormStore) PaymentsByBooking(bookingID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Where("booking_id = ?", bookingID).Order("id ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *GormStore) SavePayment(p *models.Payment) error {
	return s.db.Save(p).Error
}

func (s *GormStore) CreatePayment(p *models.Payment) error {
	return s.db.Create(p).Error
}

// DeletePayment removes the payment and cascades to the reminders that
// reference it through their owning foreign key.
func (s *GormStore) DeletePayment(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_id = ?", id).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Payment{}, id).Error
	})
}

func (s *GormStore) MethodName(id uint) (string, error) {
	var method models.PaymentMethod
	if err := s.db.First(&method, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return method.Name, nil
}

func (s *GormStore) ExpensesDue(f PayablesPreFilter) ([]models.Expense, error) {
	q := s.db.Model(&models.Expense{})
	if f.Search != "" {
		q = q.Where("description ILIKE ?", "%"+f.Search+"%")
	}
	if f.From != nil {
		q = q.Where("due_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("due_date <= ?", *f.To)
	}

	var expenses []models.Expense
	if err := q.Order("due_date ASC, id ASC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// CommissionsDue applies the date range against the owning booking's date,
// since that is the commission's due date in the merged ledger.
func (s *GormStore) CommissionsDue(f PayablesPreFilter) ([]models.Commission, error) {
	q := s.db.Model(&models.Commission{}).
		Joins("LEFT JOIN bookings ON bookings.id = commissions.booking_id")
	if f.Search != "" {
		q = q.Where("commissions.description ILIKE ?", "%"+f.Search+"%")
	}
	if f.From != nil {
		q = q.Where("bookings.date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("bookings.date <= ?", *f.To)
	}

	var commissions []models.Commission
	if err := q.Order("commissions.id ASC").Find(&commissions).Error; err != nil {
		return nil, err
	}
	return commissions, nil
}

func (s *GormStore) BookingsByIDs(ids []uint) (map[uint]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.Preload("Customer").Preload("Staff").
		Where("id IN ?", ids).Find(&bookings).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Booking, len(bookings))
	for i := range bookings {
		byID[bookings[i].ID] = bookings[i]
	}
	return byID, nil
}

func (s *GormStore) ExpenseByID(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (s *GormStore) SaveExpense(e *models.Expense) error {
	return s.db.Save(e).Error
}

func (s *GormStore) CommissionByID(id uint) (*models.Commission, error) {
	var commission models.Commission
	if err := s.db.First(&commission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &commission, nil
}

func (s *GormStore) SaveCommission(c *models.Commission) error {
	return s.db.Save(c).Error
}
