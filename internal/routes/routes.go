package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/config"
	"medibook-server/internal/handlers"
	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/scheduling"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, manager *scheduling.Manager) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(manager)
	doctorHandler := handlers.NewDoctorHandler(db, manager)
	adminHandler := handlers.NewAdminHandler(db, manager)
	feedbackHandler := handlers.NewFeedbackHandler(db)
	messageHandler := handlers.NewMessageHandler(db, manager)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		public.GET("/doctors", doctorHandler.ListDoctors)
		public.GET("/feedbacks", feedbackHandler.ListPublished)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Patient routes
		private.POST("/book-appointment",
			middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.BookAppointment)
		patientRoutes := private.Group("/patient")
		patientRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			patientRoutes.GET("/appointments", appointmentHandler.ListMyAppointments)
			patientRoutes.GET("/dashboard", appointmentHandler.Dashboard)
		}
		private.POST("/feedback",
			middleware.RoleAuthMiddleware(models.RolePatient), feedbackHandler.Submit)

		// Doctor routes
		doctorRoutes := private.Group("/doctor")
		doctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			doctorRoutes.GET("/appointments", doctorHandler.ListMyAppointments)
			doctorRoutes.GET("/dashboard", doctorHandler.Dashboard)
			doctorRoutes.PUT("/profile", doctorHandler.UpdateProfile)
		}

		// Admin routes
		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.POST("/appointments", adminHandler.CreateAppointment)
			adminRoutes.GET("/appointments", adminHandler.ListAppointments)
			adminRoutes.PUT("/appointments/:id/status", adminHandler.UpdateAppointmentStatus)
			adminRoutes.DELETE("/appointments/:id", adminHandler.DeleteAppointment)
			adminRoutes.POST("/mark-expired", adminHandler.MarkExpired)
			adminRoutes.GET("/dashboard", adminHandler.Dashboard)

			adminRoutes.GET("/users", adminHandler.ListUsers)
			adminRoutes.DELETE("/users/:id", adminHandler.DeleteUser)
			adminRoutes.PUT("/doctors/:id/approval", adminHandler.SetDoctorApproval)

			adminRoutes.GET("/feedbacks", adminHandler.ListFeedbacks)
			adminRoutes.PUT("/feedbacks/:id/visibility", adminHandler.SetFeedbackVisibility)
			adminRoutes.DELETE("/feedbacks/:id", adminHandler.DeleteFeedback)
		}

		// Consultation threads (involved patient/doctor or admin; checked in handler)
		messageRoutes := private.Group("/appointments/:id/messages")
		{
			messageRoutes.GET("", messageHandler.ListThread)
			messageRoutes.POST("", messageHandler.SendMessage)
			messageRoutes.PATCH("/:messageId/read", messageHandler.MarkMessageRead)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
