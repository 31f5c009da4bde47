// controllers/commission.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"agendapro-backend/config"
	"agendapro-backend/models"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCommissionInput defines the expected JSON structure for creating a
// commission. Amount 0 derives the value from the staff member's rate
// applied to the booking's net amount.
type CreateCommissionInput struct {
	BookingID   uint   `json:"bookingId" binding:"required"`
	StaffID     uint   `json:"staffId" binding:"required"`
	Amount      int64  `json:"amount" binding:"min=0"`
	Description string `json:"description"`
}

// CreateCommission creates a commission owed to a staff member.
func CreateCommission(c *gin.Context) {
	var input CreateCommissionInput
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

	var staff models.Staff
	if err := config.DB.First(&staff, input.StaffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Staff not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	amount := input.Amount
	if amount == 0 {
		amount = int64(float64(booking.NetAmount()) * staff.CommissionRate / 100)
	}

	commission := models.Commission{
		BookingID:   input.BookingID,
		StaffID:     input.StaffID,
		Amount:      amount,
		Description: input.Description,
	}
	if err := config.DB.Create(&commission).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create commission")
		return
	}

	c.JSON(http.StatusCreated, commission)
}

// GetCommissions retrieves commissions with optional staff/paid filters.
func GetCommissions(c *gin.Context) {
	q := config.DB.Model(&models.Commission{}).Order("id ASC")

	if staffID, err := strconv.ParseUint(c.Query("staffId"), 10, 32); err == nil {
		q = q.Where("staff_id = ?", staffID)
	}
	if paid := c.Query("paid"); paid != "" {
		q = q.Where("paid = ?", paid == "true")
	}

	var commissions []models.Commission
	if err := q.Find(&commissions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve commissions")
		return
	}

	c.JSON(http.StatusOK, commissions)
}

// DeleteCommission removes a commission. Deleting and recreating is the
// only way to undo a paid commission.
func DeleteCommission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid commission ID format")
		return
	}

	var commission models.Commission
	if err := config.DB.First(&commission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Commission not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&commission).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete commission")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Commission deleted successfully"})
}
