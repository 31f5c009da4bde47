// controllers/expense.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"agendapro-backend/config"
	"agendapro-backend/models"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateExpenseInput defines the expected JSON structure for creating an
// expense. Installments > 1 generates one expense per month, the extra
// rows linked to the first through ParentID.
type CreateExpenseInput struct {
	Description  string    `json:"description" binding:"required"`
	Amount       int64     `json:"amount" binding:"required,min=1"`
	DueDate      time.Time `json:"dueDate" binding:"required"`
	Category     string    `json:"category"`
	Note         string    `json:"note"`
	Installments int       `json:"installments" binding:"min=0"`
}

// UpdateExpenseInput defines the expected JSON structure for updating an
// expense. Paid state is changed only through the outflow endpoint.
type UpdateExpenseInput struct {
	Description *string    `json:"description"`
	Amount      *int64     `json:"amount" binding:"omitempty,min=1"`
	DueDate     *time.Time `json:"dueDate"`
	Category    *string    `json:"category"`
	Note        *string    `json:"note"`
}

// CreateExpense creates a new expense, optionally split into installments.
func CreateExpense(c *gin.Context) {
	var input CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	expense := models.Expense{
		Description: input.Description,
		Amount:      input.Amount,
		DueDate:     input.DueDate,
		Category:    input.Category,
		Note:        input.Note,
	}

	installments := input.Installments
	if installments < 2 {
		if err := config.DB.Create(&expense).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense")
			return
		}
		c.JSON(http.StatusCreated, expense)
		return
	}

	created := make([]models.Expense, 0, installments)
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		created = append(created, expense)

		for i := 1; i < installments; i++ {
			child := models.Expense{
				Description: input.Description,
				Amount:      input.Amount,
				DueDate:     input.DueDate.AddDate(0, i, 0),
				Category:    input.Category,
				Note:        input.Note,
				ParentID:    &expense.ID,
			}
			if err := tx.Create(&child).Error; err != nil {
				return err
			}
			created = append(created, child)
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense installments")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetExpenses retrieves expenses with optional paid/category/date filters.
func GetExpenses(c *gin.Context) {
	q := config.DB.Model(&models.Expense{}).Order("due_date ASC, id ASC")

	if paid := c.Query("paid"); paid != "" {
		q = q.Where("paid = ?", paid == "true")
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q = q.Where("due_date >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q = q.Where("due_date <= ?", to)
	}

	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetExpense retrieves a specific expense by ID.
func GetExpense(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var expense models.Expense
	if err := config.DB.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, expense)
}

// UpdateExpense updates an existing expense's descriptive fields.
func UpdateExpense(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var input UpdateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var expense models.Expense
	if err := config.DB.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.DueDate != nil {
		expense.DueDate = *input.DueDate
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Note != nil {
		expense.Note = *input.Note
	}

	if err := config.DB.Save(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense removes an expense and its linked reminders. There is no
// un-pay operation: a paid expense entered by mistake is deleted and
// recreated.
func DeleteExpense(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var expense models.Expense
	if err := config.DB.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", expense.ID).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		return tx.Delete(&expense).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
