package main

import (
	"github.com/gin-gonic/gin"
	"github.com/pulse-hq/pulse/internal/handlers"
	"github.com/pulse-hq/pulse/internal/middleware"
	"github.com/pulse-hq/pulse/internal/models"
	"github.com/pulse-hq/pulse/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the login route
	loginLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	checker := svc.authHandler.Service()

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.GET("/status", svc.authHandler.Status)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(checker))
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)
			protected.GET("/auth/session", svc.authHandler.ListSessions)
			protected.DELETE("/auth/session/revoke/:jti", svc.authHandler.RevokeSession)

			// Designations
			designationHandler := handlers.NewDesignationHandler(models.GetDB())
			protected.GET("/designations", designationHandler.List)
			protected.GET("/designations/:id", designationHandler.GetByID)
			protected.POST("/designations", designationHandler.Create)
			protected.PUT("/designations/:id", designationHandler.Update)
			protected.DELETE("/designations/:id", designationHandler.Delete)
			protected.GET("/designations/:id/history", designationHandler.History)

			// Levels
			levelHandler := handlers.NewLevelHandler(models.GetDB())
			protected.GET("/levels", levelHandler.List)
			protected.GET("/levels/:id", levelHandler.GetByID)
			protected.POST("/levels", levelHandler.Create)
			protected.PUT("/levels/:id", levelHandler.Update)
			protected.DELETE("/levels/:id", levelHandler.Delete)
			protected.GET("/levels/:id/history", levelHandler.History)

			// Employees
			employeeHandler := handlers.NewEmployeeHandler(models.GetDB())
			protected.GET("/employees", employeeHandler.List)
			protected.GET("/employees/:id", employeeHandler.GetByID)
			protected.POST("/employees", employeeHandler.Create)
			protected.PUT("/employees/:id", employeeHandler.Update)
			protected.DELETE("/employees/:id", employeeHandler.Delete)
			protected.GET("/employees/:id/history", employeeHandler.History)

			// Projects
			projectHandler := handlers.NewProjectHandler(models.GetDB())
			protected.GET("/projects", projectHandler.List)
			protected.GET("/projects/:id", projectHandler.GetByID)
			protected.POST("/projects", projectHandler.Create)
			protected.PUT("/projects/:id", projectHandler.Update)
			protected.DELETE("/projects/:id", projectHandler.Delete)
			protected.GET("/projects/:id/history", projectHandler.History)

			// Tasks
			taskHandler := handlers.NewTaskHandler(models.GetDB())
			protected.GET("/tasks", taskHandler.List)
			protected.GET("/tasks/:id", taskHandler.GetByID)
			protected.POST("/tasks", taskHandler.Create)
			protected.PUT("/tasks/:id", taskHandler.Update)
			protected.DELETE("/tasks/:id", taskHandler.Delete)
			protected.GET("/tasks/:id/history", taskHandler.History)

			// Comments
			commentHandler := handlers.NewCommentHandler(models.GetDB())
			protected.GET("/tasks/:id/comments", commentHandler.ListByTask)
			protected.GET("/comments", commentHandler.List)
			protected.GET("/comments/:id", commentHandler.GetByID)
			protected.POST("/comments", commentHandler.Create)
			protected.PUT("/comments/:id", commentHandler.Update)
			protected.DELETE("/comments/:id", commentHandler.Delete)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(checker), middleware.AdminRequired())
		{
			// Users
			userHandler := handlers.NewUserHandler(models.GetDB())
			admin.GET("/users", userHandler.List)
			admin.GET("/users/:id", userHandler.GetByID)
			admin.POST("/users", userHandler.Create)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)
		}
	}
}
