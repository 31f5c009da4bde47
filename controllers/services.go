package controllers

import (
	"os"
	"strconv"

	"agendapro-backend/config"
	"agendapro-backend/services"
)

var (
	settlementSvc *services.SettlementService
	payablesSvc   *services.PayablesService
	outflowSvc    *services.OutflowService
	historySvc    *services.BookingHistoryService
)

// InitServices wires the financial services on top of the shared DB handle.
// Must run after config.ConnectDB.
func InitServices() {
	store := services.NewGormStore(config.DB)
	historySvc = services.NewBookingHistoryService(config.DB)

	settlementSvc = services.NewSettlementService(store, historySvc, defaultCashMethodID())
	payablesSvc = services.NewPayablesService(store)
	outflowSvc = services.NewOutflowService(store, historySvc)
}

// defaultCashMethodID is the payment method assigned to system-generated
// remainder records.
func defaultCashMethodID() uint {
	if env := os.Getenv("DEFAULT_CASH_METHOD_ID"); env != "" {
		if id, err := strconv.ParseUint(env, 10, 32); err == nil {
			return uint(id)
		}
	}
	return 1
}
