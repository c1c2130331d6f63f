package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avdeyev/eduboard/internal/app/controllers"
	"github.com/avdeyev/eduboard/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	curriculumController *controllers.CurriculumController,
	studentRecordController *controllers.StudentRecordController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		// Role-routed landing view plus the action-dispatched endpoint the
		// dashboard page drives everything through.
		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("", dashboardController.Dashboard)
			dashboard.POST("/ajax", dashboardController.Ajax)
			dashboard.GET("/outstanding/:kind", dashboardController.OutstandingWork)
		}

		// Admin REST surface. Role checks live in the controllers; the
		// admin policy is resolved per request, not baked into a claim.
		programs := authenticated.Group("/programs")
		{
			programs.GET("", curriculumController.ListPrograms)
			programs.POST("", curriculumController.CreateProgram)
			programs.GET("/:id", curriculumController.GetProgram)
			programs.PUT("/:id", curriculumController.UpdateProgram)
			programs.DELETE("/:id", curriculumController.DeleteProgram)
		}

		subjects := authenticated.Group("/subjects")
		{
			subjects.POST("", curriculumController.CreateSubject)
			subjects.PUT("/:id", curriculumController.UpdateSubject)
			subjects.DELETE("/:id", curriculumController.DeleteSubject)
			subjects.GET("/:id/courses", curriculumController.GetSubjectCourses)
		}

		institutions := authenticated.Group("/institutions")
		{
			institutions.GET("", curriculumController.ListInstitutions)
			institutions.POST("", curriculumController.CreateInstitution)
			institutions.DELETE("/:id", curriculumController.DeleteInstitution)
		}

		students := authenticated.Group("/students/:studentId")
		{
			students.GET("/info", studentRecordController.GetStudentInfo)
			students.PUT("/info", studentRecordController.UpsertStudentInfo)
			students.GET("/credits", studentRecordController.ListStudentCredits)
			students.POST("/credits", studentRecordController.CreateExternalCredit)
		}

		credits := authenticated.Group("/credits")
		{
			credits.PUT("/:creditId", studentRecordController.UpdateExternalCredit)
			credits.DELETE("/:creditId", studentRecordController.DeleteExternalCredit)
		}
	}
}
