// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"agendapro-backend/models"
	"agendapro-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService queues and dispatches money-due reminders: unpaid
// expenses approaching their due date and receivables still pending after
// the booking date.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendDailyReminders()
	})

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	s.queueExpenseReminders()
	s.queuePaymentReminders()
	s.dispatchPending()

	log.Println("Daily reminder processing completed")
}

// queueExpenseReminders opens a reminder for every unpaid expense due
// within the next 3 days that has none yet.
func (s *ReminderService) queueExpenseReminders() {
	horizon := time.Now().AddDate(0, 0, 3)

	var expenses []models.Expense
	if err := s.db.
		Where("paid = false AND due_date <= ?", horizon).
		Find(&expenses).Error; err != nil {
		log.Printf("Failed to fetch due expenses: %v", err)
		return
	}

	for i := range expenses {
		expense := &expenses[i]

		var count int64
		s.db.Model(&models.Reminder{}).
			Where("expense_id = ? AND sent = false", expense.ID).
			Count(&count)
		if count > 0 {
			continue
		}

		reminder := models.Reminder{
			Message: fmt.Sprintf("Despesa \"%s\" de %s vence em %s",
				expense.Description, utils.FormatCents(expense.Amount), expense.DueDate.Format("02/01/2006")),
			RemindAt:  expense.DueDate,
			ExpenseID: &expense.ID,
		}
		if err := s.db.Create(&reminder).Error; err != nil {
			log.Printf("Failed to queue reminder for expense %d: %v", expense.ID, err)
		}
	}
}

// queuePaymentReminders opens a reminder for every receivable still pending
// after the booking date has passed.
func (s *ReminderService) queuePaymentReminders() {
	var payments []models.Payment
	if err := s.db.
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("payments.settled_at IS NULL AND bookings.date < ?", time.Now()).
		Find(&payments).Error; err != nil {
		log.Printf("Failed to fetch pending payments: %v", err)
		return
	}

	for i := range payments {
		payment := &payments[i]

		var count int64
		s.db.Model(&models.Reminder{}).
			Where("payment_id = ? AND sent = false", payment.ID).
			Count(&count)
		if count > 0 {
			continue
		}

		reminder := models.Reminder{
			Message: fmt.Sprintf("Recebimento pendente de %s para o agendamento %d",
				utils.FormatCents(payment.DeclaredTotal()), payment.BookingID),
			RemindAt:  time.Now(),
			PaymentID: &payment.ID,
		}
		if err := s.db.Create(&reminder).Error; err != nil {
			log.Printf("Failed to queue reminder for payment %d: %v", payment.ID, err)
		}
	}
}

// dispatchPending sends every unsent reminder whose time has come and logs
// the outcome.
func (s *ReminderService) dispatchPending() {
	var reminders []models.Reminder
	if err := s.db.
		Where("sent = false AND remind_at <= ?", time.Now().AddDate(0, 0, 3)).
		Find(&reminders).Error; err != nil {
		log.Printf("Failed to fetch pending reminders: %v", err)
		return
	}

	to := os.Getenv("NOTIFY_PHONE")
	if to == "" {
		log.Println("NOTIFY_PHONE not set, skipping reminder dispatch")
		return
	}

	for i := range reminders {
		reminder := &reminders[i]

		// Determine channel (WhatsApp if available, else SMS)
		channel := "sms"
		dest := to
		if strings.HasPrefix(to, "+") {
			dest = "whatsapp:" + to
			channel = "whatsapp"
		}

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(dest)
		params.SetBody(reminder.Message)
		if channel == "whatsapp" {
			params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
		} else {
			params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		}

		resp, err := s.client.Api.CreateMessage(params)
		status := "sent"
		errorMsg := ""

		if err != nil {
			log.Printf("Failed to send reminder %d: %v", reminder.ID, err)
			status = "failed"
			errorMsg = err.Error()
		} else if resp.Sid != nil {
			log.Printf("Reminder %d sent, SID: %s", reminder.ID, *resp.Sid)
		} else {
			log.Printf("Reminder %d sent, but no SID returned", reminder.ID)
		}

		reminderLog := models.ReminderLog{
			ReminderID:   reminder.ID,
			Message:      reminder.Message,
			Status:       status,
			ErrorMessage: errorMsg,
			Channel:      channel,
			SentAt:       time.Now(),
		}
		if err := s.db.Create(&reminderLog).Error; err != nil {
			log.Printf("Failed to log reminder %d: %v", reminder.ID, err)
		}

		if status == "sent" {
			reminder.Sent = true
			if err := s.db.Save(reminder).Error; err != nil {
				log.Printf("Failed to mark reminder %d sent: %v", reminder.ID, err)
			}
		}
	}
}
