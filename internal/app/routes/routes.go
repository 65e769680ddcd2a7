package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/naledi/cmcs/internal/app/controllers"
	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	claimController *controllers.ClaimController,
	hrController *controllers.HRController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth(), authMiddleware.EnforcePolicy())
	{
		authenticated.GET("/auth/me", authController.Me)

		claims := authenticated.Group("/claims")
		{
			claims.POST("", claimController.SubmitClaim)
			claims.POST("/draft", claimController.CreateDraft)
			claims.GET("/my", claimController.GetMyClaims)
			claims.GET("/:id", claimController.GetClaim)
			claims.POST("/:id/documents", claimController.AddDocuments)

			// Review routes are restricted to the approval-chain roles.
			reviewers := claims.Group("")
			reviewers.Use(authMiddleware.RequireRoles(
				models.RoleProgrammeCoordinator,
				models.RoleAcademicManager,
				models.RoleHR,
			))
			{
				reviewers.GET("/pending", claimController.GetPendingClaims)
				reviewers.POST("/:id/approve", claimController.ApproveClaim)
				reviewers.POST("/:id/reject", claimController.RejectClaim)
			}
		}

		// HR administration, gated by the access policy and the HR role.
		hr := authenticated.Group("/hr")
		hr.Use(authMiddleware.RequireRoles(models.RoleHR))
		{
			hr.GET("/lecturers", hrController.GetLecturers)
			hr.POST("/lecturers", hrController.CreateLecturer)
			hr.GET("/dashboard", hrController.GetDashboard)

			hr.GET("/users", hrController.GetUsers)
			hr.POST("/users", hrController.CreateUser)
			hr.PUT("/users/:id", hrController.UpdateUser)
			hr.DELETE("/users/:id", hrController.DeleteUser)
			hr.POST("/users/:id/reset-password", hrController.ResetPassword)
		}
	}
}
