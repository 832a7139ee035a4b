package routes

import (
	"librarypro-backend/config"
	"librarypro-backend/controllers"
	"librarypro-backend/services"
	"librarypro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(notifier *services.ExpiryNotifier) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:8080",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.GET("/logout", controllers.Logout)
		auth.GET("/status", controllers.Status)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Student routes
		students := api.Group("/students")
		{
			students.GET("", controllers.GetStudents)
			students.POST("", controllers.CreateStudent)
			students.GET("/active", controllers.GetActiveStudents)
			students.GET("/expired", controllers.GetExpiredStudents)
			students.GET("/expiring-soon", controllers.GetExpiringSoonStudents)
			students.GET("/stats/dashboard", controllers.GetDashboardStats)
			students.GET("/:id", controllers.GetStudent)
			students.PUT("/:id", controllers.UpdateStudent)
			students.DELETE("/:id", controllers.DeleteStudent)
			students.POST("/:id/renew", controllers.RenewMembership)
		}

		// Schedule routes
		schedules := api.Group("/schedules")
		{
			schedules.GET("", controllers.GetSchedules)
			schedules.POST("", controllers.CreateSchedule)
			schedules.GET("/:id", controllers.GetSchedule)
			schedules.PUT("/:id", controllers.UpdateSchedule)
			schedules.DELETE("/:id", controllers.DeleteSchedule)
		}

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("/email", controllers.GetEmailSettings)
			settings.PUT("/email", controllers.UpdateEmailSettings)
		}

		// Profile routes
		users := api.Group("/users")
		{
			users.GET("/profile", controllers.GetProfile)
			users.PUT("/profile", controllers.UpdateProfile)
		}

		// Manual "send now" trigger for the expiry-notification job
		notificationController := controllers.NotificationController{Notifier: notifier}
		api.POST("/notifications/run", notificationController.Run)
	}

	return r
}
