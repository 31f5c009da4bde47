// controllers/booking.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"agendapro-backend/config"
	"agendapro-backend/models"
	"agendapro-backend/services"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateBookingInput defines the expected JSON structure for creating a
// booking. GrossAmount 0 takes the service price.
type CreateBookingInput struct {
	CustomerID  uint      `json:"customerId" binding:"required"`
	StaffID     uint      `json:"staffId"`
	ServiceID   uint      `json:"serviceId" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	GrossAmount int64     `json:"grossAmount" binding:"min=0"`
	Discount    int64     `json:"discount" binding:"min=0"`
	Notes       string    `json:"notes"`
}

// CreateBooking creates a booking and opens its initial pending receivable
// for the net amount.
func CreateBooking(c *gin.Context) {
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var service models.Service
	if err := config.DB.First(&service, input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	gross := input.GrossAmount
	if gross == 0 {
		gross = service.Price
	}
	if input.Discount > gross {
		utils.RespondWithError(c, http.StatusBadRequest, "Discount exceeds gross amount")
		return
	}

	booking := models.Booking{
		CustomerID:  input.CustomerID,
		StaffID:     input.StaffID,
		ServiceID:   input.ServiceID,
		Date:        input.Date,
		GrossAmount: gross,
		Discount:    input.Discount,
		Notes:       input.Notes,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		// Open the initial receivable for the full net amount.
		payment := models.Payment{
			BookingID: booking.ID,
			Splits: models.PaymentSplits{
				{MethodID: defaultCashMethodID(), Amount: booking.NetAmount()},
			},
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	historySvc.Record(booking.ID, services.HistoryEntry{
		Title:       "Agendamento criado",
		Description: fmt.Sprintf("Valor %s para %s", utils.FormatCents(booking.NetAmount()), customer.Name),
		Actor:       utils.ActorName(c),
	})

	c.JSON(http.StatusCreated, booking)
}

// GetBookings retrieves bookings with optional customer/date filters.
func GetBookings(c *gin.Context) {
	q := config.DB.Preload("Customer").Preload("Staff").Order("date DESC")

	if customerID, err := strconv.ParseUint(c.Query("customerId"), 10, 32); err == nil {
		q = q.Where("customer_id = ?", customerID)
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q = q.Where("date >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q = q.Where("date <= ?", to)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking retrieves a booking with its payments and history.
func GetBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Customer").Preload("Staff").Preload("Payments").
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var history []models.BookingHistory
	config.DB.Where("booking_id = ?", booking.ID).Order("created_at DESC").Find(&history)

	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"history": history,
	})
}

// DeleteBooking removes a booking with its payments and history.
func DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var payments []models.Payment
		if err := tx.Where("booking_id = ?", booking.ID).Find(&payments).Error; err != nil {
			return err
		}
		for i := range payments {
			if err := tx.Where("payment_id = ?", payments[i].ID).Delete(&models.Reminder{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.BookingHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&booking).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
