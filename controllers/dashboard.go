package controllers

import (
	"net/http"
	"time"

	"agendapro-backend/config"
	"agendapro-backend/models"
	"agendapro-backend/services"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns the financial overview: money received this
// month, outstanding receivables and the payables summary.
func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// Received this month: sum the split amounts of settled payments.
	var monthlyReceived int64
	config.DB.Raw(`
        SELECT COALESCE(SUM((s->>'amount')::bigint), 0)
        FROM payments, jsonb_array_elements(splits) s
        WHERE settled_at IS NOT NULL AND settled_at >= ?
    `, firstOfMonth).Scan(&monthlyReceived)

	// Outstanding receivables: declared totals of pending payments.
	var pendingReceivables int64
	config.DB.Raw(`
        SELECT COALESCE(SUM((s->>'amount')::bigint), 0)
        FROM payments, jsonb_array_elements(splits) s
        WHERE settled_at IS NULL
    `).Scan(&pendingReceivables)

	var pendingCount int64
	config.DB.Model(&models.Payment{}).Where("settled_at IS NULL").Count(&pendingCount)

	var totalBookings int64
	config.DB.Model(&models.Booking{}).Count(&totalBookings)

	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Where("deleted_at IS NULL").Count(&totalCustomers)

	payables, err := payablesSvc.ListPayables(services.PayablesQuery{Page: 1, PageSize: 1})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payables summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"monthlyReceived": monthlyReceived,
		"pendingReceivables": gin.H{
			"count": pendingCount,
			"total": pendingReceivables,
		},
		"totalBookings":  totalBookings,
		"totalCustomers": totalCustomers,
		"payables": gin.H{
			"total":      payables.Total,
			"aggregates": payables.Aggregates,
		},
	})
}
