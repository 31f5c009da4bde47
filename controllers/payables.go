// controllers/payables.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"agendapro-backend/services"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
)

// PostOutflowInput selects ledger entries to pay in one batch.
type PostOutflowInput struct {
	PaymentDate     *time.Time `json:"paymentDate"`
	PaymentMethodID uint       `json:"paymentMethodId"`
	Refs            []string   `json:"refs"`
}

func parsePayablesQuery(c *gin.Context) services.PayablesQuery {
	q := services.PayablesQuery{
		Search:   c.Query("search"),
		Kind:     c.Query("kind"),
		Status:   c.Query("status"),
		SortBy:   c.Query("sortBy"),
		SortDesc: c.Query("sortDir") == "desc",
	}

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q.To = &to
	}
	if payeeID, err := strconv.ParseUint(c.Query("payeeId"), 10, 32); err == nil {
		q.PayeeID = uint(payeeID)
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		q.PageSize = pageSize
	}
	return q
}

// GetPayables returns one page of the merged expense/commission ledger.
func GetPayables(c *gin.Context) {
	page, err := payablesSvc.ListPayables(parsePayablesQuery(c))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payables")
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetPayablesSummary returns the ledger aggregates and per-bucket counts
// for the dashboard, without paging detail.
func GetPayablesSummary(c *gin.Context) {
	q := parsePayablesQuery(c)
	q.Page = 1
	q.PageSize = 1

	page, err := payablesSvc.ListPayables(q)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payables summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      page.Total,
		"aggregates": page.Aggregates,
	})
}

// PostOutflow marks the selected ledger entries as paid.
func PostOutflow(c *gin.Context) {
	var input PostOutflowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	in := services.OutflowInput{
		MethodID: input.PaymentMethodID,
		Refs:     input.Refs,
		Actor:    utils.ActorName(c),
	}
	if input.PaymentDate != nil {
		in.PaymentDate = *input.PaymentDate
	}

	result, err := outflowSvc.PostOutflow(in)
	if err != nil {
		if errors.Is(err, services.ErrNoEntriesSelected) {
			utils.RespondWithError(c, http.StatusBadRequest, "No entries selected")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to post outflow")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
