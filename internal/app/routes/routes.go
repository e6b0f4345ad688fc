package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/volunteersync/backend/internal/app/auth"
	"github.com/volunteersync/backend/internal/app/controllers"
	"github.com/volunteersync/backend/internal/app/models/dto"
	"github.com/volunteersync/backend/internal/middleware"
	"github.com/volunteersync/backend/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	organizationController *controllers.OrganizationController,
	taskController *controllers.TaskController,
	registrationController *controllers.RegistrationController,
	notificationController *controllers.NotificationController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public auth routes ---
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authController.Register)
		authRoutes.POST("/login", authController.Login)
		authRoutes.POST("/refresh", authController.Refresh)
	}

	// --- Public read routes ---
	api.GET("/organizations", organizationController.ListOrganizations)
	api.GET("/organizations/:id", organizationController.GetOrganization)
	api.GET("/tasks", taskController.ListTasks)
	api.GET("/tasks/:id", taskController.GetTask)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth(), authMiddleware.WithPrincipal())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetProfile)
			users.GET("", authMiddleware.PermissionRequired(auth.PermUserList), userController.ListUsers)
			users.GET("/:id", userController.GetUser)
			users.PUT("/:id", userController.UpdateProfile)
			users.PUT("/:id/role", authMiddleware.PermissionRequired(auth.PermUserManage), userController.UpdateRole)
			users.DELETE("/:id", authMiddleware.PermissionRequired(auth.PermUserManage), userController.DeactivateUser)
		}

		organizations := authenticated.Group("/organizations")
		{
			organizations.POST("", authMiddleware.PermissionRequired(auth.PermOrganizationCreate), organizationController.CreateOrganization)
			organizations.PUT("/:id", organizationController.UpdateOrganization)
			organizations.POST("/:id/verify", authMiddleware.PermissionRequired(auth.PermOrganizationVerify), organizationController.VerifyOrganization)
			organizations.DELETE("/:id", authMiddleware.PermissionRequired(auth.PermOrganizationDelete), organizationController.DeleteOrganization)
		}

		tasks := authenticated.Group("/tasks")
		{
			tasks.POST("", authMiddleware.PermissionRequired(auth.PermTaskCreate), taskController.CreateTask)
			tasks.PUT("/:id", taskController.UpdateTask)
			tasks.PUT("/:id/status", taskController.UpdateTaskStatus)
			tasks.DELETE("/:id", taskController.DeleteTask)
		}

		volunteers := authenticated.Group("/volunteers")
		{
			registrations := volunteers.Group("/registrations")
			{
				registrations.POST("", registrationController.Register)
				registrations.GET("", authMiddleware.PermissionRequired(auth.PermRegistrationListAll), registrationController.ListRegistrations)
				registrations.GET("/:id", registrationController.GetRegistration)
				registrations.PUT("/:id/status", registrationController.UpdateStatus)
				registrations.POST("/:id/approve", registrationController.Approve)
				registrations.POST("/:id/reject", registrationController.Reject)
				registrations.DELETE("/:id", registrationController.Delete)
			}

			volunteers.GET("/tasks/:taskId/registrations", registrationController.ListByTask)
			volunteers.GET("/users/:userId/registrations", registrationController.ListByUser)
			volunteers.GET("/organizations/:organizationId/pending-registrations", registrationController.ListPendingByOrganization)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.ListNotifications)
			notifications.GET("/unread-count", notificationController.GetUnreadCount)
			notifications.POST("/:id/read", notificationController.MarkRead)
			notifications.POST("/read-all", notificationController.MarkAllRead)
		}

		// Live notification feed over websocket
		authenticated.GET("/ws/notifications", wsHandler.HandleConnection)
	}

	// Health check endpoint (public)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, "Service healthy"))
	})
}
