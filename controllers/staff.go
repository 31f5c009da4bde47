// controllers/staff.go
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

type CreateStaffInput struct {
	Name           string  `json:"name" binding:"required"`
	Phone          string  `json:"phone"`
	CommissionRate float64 `json:"commissionRate" binding:"min=0,max=100"`
}

type UpdateStaffInput struct {
	Name           *string  `json:"name"`
	Phone          *string  `json:"phone"`
	CommissionRate *float64 `json:"commissionRate" binding:"omitempty,min=0,max=100"`
	IsActive       *bool    `json:"isActive"`
}

// AddStaff creates a new staff member
func AddStaff(c *gin.Context) {
	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	staff := models.Staff{
		Name:           input.Name,
		Phone:          input.Phone,
		CommissionRate: input.CommissionRate,
		IsActive:       true,
	}

	if err := config.DB.Create(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff")
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// GetStaff retrieves all staff members
func GetStaff(c *gin.Context) {
	var staff []models.Staff
	if err := config.DB.Order("name ASC").Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// UpdateStaff updates an existing staff member
func UpdateStaff(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var staff models.Staff
	if err := config.DB.First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.Phone != nil {
		staff.Phone = *input.Phone
	}
	if input.CommissionRate != nil {
		staff.CommissionRate = *input.CommissionRate
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// DeleteStaff removes a staff member
func DeleteStaff(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	if err := config.DB.Delete(&models.Staff{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete staff")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff deleted successfully"})
}
