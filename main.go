package main

import (
	"fmt"
	"log"
	"os"

	"agendapro-backend/config"
	"agendapro-backend/controllers"
	"agendapro-backend/models"
	"agendapro-backend/routes"
	"agendapro-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Staff{},
		&models.Service{},
		&models.Booking{},
		&models.Payment{},
		&models.PaymentMethod{},
		&models.Expense{},
		&models.Commission{},
		&models.BookingHistory{},
		&models.Reminder{},
		&models.ReminderLog{},
	)

	controllers.InitServices()
}

func main() {

	reminderService := services.NewReminderService(config.DB)
	reminderService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
