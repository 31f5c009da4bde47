// controllers/payment_method.go
package controllers

import (
	"net/http"
	"strconv"

	"agendapro-backend/config"
	"agendapro-backend/models"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreatePaymentMethodInput struct {
	Name string `json:"name" binding:"required"`
}

// CreatePaymentMethod registers a new payment method label
func CreatePaymentMethod(c *gin.Context) {
	var input CreatePaymentMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	method := models.PaymentMethod{Name: input.Name, IsActive: true}
	if err := config.DB.Create(&method).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment method")
		return
	}

	c.JSON(http.StatusCreated, method)
}

// GetPaymentMethods retrieves all active payment methods
func GetPaymentMethods(c *gin.Context) {
	var methods []models.PaymentMethod
	if err := config.DB.Where("is_active = true").Order("id ASC").Find(&methods).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payment methods")
		return
	}

	c.JSON(http.StatusOK, methods)
}

// DeletePaymentMethod deactivates a payment method
func DeletePaymentMethod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method ID format")
		return
	}

	if err := config.DB.Model(&models.PaymentMethod{}).Where("id = ?", id).
		Update("is_active", false).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment method")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted successfully"})
}
