package courseRoutes

import (
	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	"learnhub/models"
	validators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Enrollment lifecycle
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
	courseGroup.Delete("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.WithdrawFromCourse)

	// Progress
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseProgress)

	// Access gate
	courseGroup.Get("/:id/access", middleware.JWTMiddleware, validators.AccessQuery(), controllers.CheckAccess)

	// Completion ledger
	courseGroup.Post("/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.LessonID(), controllers.MarkLessonComplete)
	courseGroup.Post("/assignment/:assignment_id/submit", middleware.JWTMiddleware, validators.AssignmentID(), controllers.SubmitAssignment)
	courseGroup.Post("/assignment/:assignment_id/grade",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleTeacher, models.RoleAdmin),
		validators.GradeAssignment(),
		controllers.GradeAssignment)

	// Learner-scoped listings
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, validators.EnrollmentList(), controllers.GetEnrollments)
	userGroup.Get("/progress", middleware.JWTMiddleware, validators.BatchProgress(), controllers.GetAllProgress)
	userGroup.Get("/study-stats", middleware.JWTMiddleware, validators.StudyStatsRange(), controllers.GetStudyStats)

	// Payment collaborator webhook (server-to-server, shared secret)
	paymentGroup := app.Group("/payment")
	paymentGroup.Post("/confirm", middleware.PaymentWebhookAuth, validators.PaymentConfirm(), controllers.ConfirmPayment)
}
