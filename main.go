package main

import (
	"fmt"
	"log"
	"os"

	"librarypro-backend/config"
	"librarypro-backend/controllers"
	"librarypro-backend/models"
	"librarypro-backend/routes"
	"librarypro-backend/services"

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
		&models.Student{},
		&models.Schedule{},
		&models.Setting{},
	)
}

func main() {
	controllers.EnsureDefaultAdmin()

	notifier := services.NewExpiryNotifier(
		config.DB,
		services.NewEmailService(),
		services.NewSMSService(),
		notificationChannels(),
	)
	if err := notifier.Start(); err != nil {
		log.Fatalf("Failed to start expiry notification scheduler: %v", err)
	}
	defer notifier.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(notifier)
	printRoutes(r)
	r.Run(":" + port)
}

// notificationChannels reads the channel set from the environment.
// Email is always on; SMS is opt-in.
func notificationChannels() services.Channels {
	return services.Channels{
		Email: true,
		SMS:   os.Getenv("SMS_NOTIFICATIONS") == "true",
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
