package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
	"github.com/sikado/tutoring-service/internal/services"
	"github.com/sikado/tutoring-service/internal/storage"
	"github.com/sikado/tutoring-service/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	profileHandler *ProfileHandler
	teacherHandler *TeacherHandler
	contactHandler *ContactHandler
	authMiddleware *TokenAuthMiddleware

	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	userRepo repositories.UserRepository,
	avatarStore storage.AvatarStore,
	logger utils.Logger,
) *HandlerManager {
	authMiddleware := NewTokenAuthMiddleware(serviceManager.Identity(), userRepo)

	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Identity(), logger),
		profileHandler: NewProfileHandler(serviceManager.Profile(), avatarStore, logger),
		teacherHandler: NewTeacherHandler(serviceManager.Discovery(), serviceManager.Contact(), logger),
		contactHandler: NewContactHandler(serviceManager.Contact(), logger),
		authMiddleware: authMiddleware,
		serviceManager: serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Auth routes - no token required
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
		}

		// Everything below requires a valid session token
		authed := v1.Group("")
		authed.Use(hm.authMiddleware.AuthMiddleware())
		{
			// Profile routes
			authed.GET("/profile", hm.profileHandler.GetMyProfile)
			authed.GET("/users/:id", hm.profileHandler.GetProfile)
			authed.POST("/uploads/avatar", hm.profileHandler.UploadAvatar)

			// Teacher routes
			teachers := authed.Group("/teachers")
			{
				teachers.GET("", hm.teacherHandler.SearchTeachers)
				teachers.PUT("/me/profile", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.profileHandler.UpdateTeacherProfile)
				teachers.GET("/me/requests", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.teacherHandler.GetMyRequests)
				teachers.GET("/me/requests/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.teacherHandler.ExportMyRequests)
			}

			// Student routes
			students := authed.Group("/students")
			{
				students.PUT("/me/profile", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.profileHandler.UpdateStudentProfile)
			}

			// Contact request routes - students only
			authed.POST("/contact-requests", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.contactHandler.CreateContactRequest)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(503, gin.H{
				"status":  "unhealthy",
				"service": "tutoring-service",
			})
			return
		}
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "tutoring-service",
		})
	})
}
