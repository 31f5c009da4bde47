package routes

import (
	"agendapro-backend/config"
	"agendapro-backend/controllers"
	"agendapro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Staff routes
		staff := api.Group("/staff")
		{
			staff.POST("", controllers.AddStaff)
			staff.GET("", controllers.GetStaff)
			staff.PUT("/:id", controllers.UpdateStaff)
			staff.DELETE("/:id", controllers.DeleteStaff)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.GET("/:id/payments", controllers.GetBookingPayments)
			bookings.DELETE("/:id", controllers.DeleteBooking)
		}

		// Payment (receivable) routes
		payments := api.Group("/payments")
		{
			payments.POST("", controllers.CreatePayment)
			payments.GET("/:id", controllers.GetReceivable)
			payments.POST("/:id/settle", controllers.SettlePayment)
			payments.DELETE("/:id", controllers.DeletePayment)
		}

		// Payable ledger routes
		payables := api.Group("/payables")
		{
			payables.GET("", controllers.GetPayables)
			payables.GET("/summary", controllers.GetPayablesSummary)
			payables.POST("/pay", controllers.PostOutflow)
		}

		// Expense routes
		expenses := api.Group("/expenses")
		{
			expenses.POST("", controllers.CreateExpense)
			expenses.GET("", controllers.GetExpenses)
			expenses.GET("/:id", controllers.GetExpense)
			expenses.PUT("/:id", controllers.UpdateExpense)
			expenses.DELETE("/:id", controllers.DeleteExpense)
		}

		// Commission routes
		commissions := api.Group("/commissions")
		{
			commissions.POST("", controllers.CreateCommission)
			commissions.GET("", controllers.GetCommissions)
			commissions.DELETE("/:id", controllers.DeleteCommission)
		}

		// Payment method routes
		methods := api.Group("/payment-methods")
		{
			methods.POST("", controllers.CreatePaymentMethod)
			methods.GET("", controllers.GetPaymentMethods)
			methods.DELETE("/:id", controllers.DeletePaymentMethod)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
