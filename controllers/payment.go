// controllers/payment.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"agendapro-backend/config"
	"agendapro-backend/models"
	"agendapro-backend/services"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePaymentInput opens a new receivable against a booking.
type CreatePaymentInput struct {
	BookingID     uint                 `json:"bookingId" binding:"required"`
	Splits        models.PaymentSplits `json:"splits" binding:"required,min=1,dive"`
	InvoiceNumber string               `json:"invoiceNumber"`
	Note          string               `json:"note"`
}

// SettlePaymentInput mirrors services.SettleInput for the route layer.
type SettlePaymentInput struct {
	Splits        models.PaymentSplits `json:"splits" binding:"required,dive"`
	MarkSettled   bool                 `json:"markSettled"`
	InvoiceNumber string               `json:"invoiceNumber"`
	Note          string               `json:"note"`
}

func paymentIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return 0, false
	}
	return uint(id), true
}

// CreatePayment opens an additional pending receivable for a booking.
func CreatePayment(c *gin.Context) {
	var input CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, input.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	payment := models.Payment{
		BookingID:     input.BookingID,
		Splits:        input.Splits,
		InvoiceNumber: input.InvoiceNumber,
		Note:          input.Note,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment")
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// SettlePayment routes a settlement (or metadata update) through the
// settlement service.
func SettlePayment(c *gin.Context) {
	id, ok := paymentIDParam(c)
	if !ok {
		return
	}

	var input SettlePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := settlementSvc.Settle(id, services.SettleInput{
		Splits:        input.Splits,
		MarkSettled:   input.MarkSettled,
		InvoiceNumber: input.InvoiceNumber,
		Note:          input.Note,
		Actor:         utils.ActorName(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		case errors.Is(err, services.ErrBookingNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, services.ErrInvalidSplit):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrExcessSettlement),
			errors.Is(err, services.ErrOverSettlement):
			utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to settle payment")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetReceivable returns the payment enriched with booking and sibling data.
func GetReceivable(c *gin.Context) {
	id, ok := paymentIDParam(c)
	if !ok {
		return
	}

	receivable, err := settlementSvc.GetReceivable(id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		case errors.Is(err, services.ErrBookingNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, receivable)
}

// GetBookingPayments lists all receivables of one booking.
func GetBookingPayments(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var payments []models.Payment
	if err := config.DB.Where("booking_id = ?", bookingID).
		Order("id ASC").Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// DeletePayment removes a receivable and its linked reminders.
func DeletePayment(c *gin.Context) {
	id, ok := paymentIDParam(c)
	if !ok {
		return
	}

	if err := settlementSvc.DeleteRecord(id); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
