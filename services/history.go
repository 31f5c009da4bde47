package services

import (
	"log"

	"agendapro-backend/models"

	"gorm.io/gorm"
)

// HistoryEntry describes one audit-trail event for a booking.
type HistoryEntry struct {
	Title       string
	Description string
	Actor       string
	Severity    string
}

// HistorySink receives audit events. Recording is fire-and-forget: sinks
// must not fail the operation that produced the event.
type HistorySink interface {
	Record(bookingID uint, entry HistoryEntry)
}

// BookingHistoryService persists audit events in the booking_histories table.
type BookingHistoryService struct {
	db *gorm.DB
}

func NewBookingHistoryService(db *gorm.DB) *BookingHistoryService {
	return &BookingHistoryService{db: db}
}

func (s *BookingHistoryService) Record(bookingID uint, entry HistoryEntry) {
	severity := entry.Severity
	if severity == "" {
		severity = "info"
	}

	row := models.BookingHistory{
		BookingID:   bookingID,
		Title:       entry.Title,
		Description: entry.Description,
		Actor:       entry.Actor,
		Severity:    severity,
	}

	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("Failed to record history for booking %d: %v", bookingID, err)
	}
}
