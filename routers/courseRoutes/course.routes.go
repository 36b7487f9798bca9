package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	validators "learnhub/validators/course"
)

// SetupCourseRoutes sets up the public course page and the student progress routes
func SetupCourseRoutes(app *fiber.App, ctrl *controllers.CourseController, jwtSecret string) {
	courseGroup := app.Group("/api/course")
	courseGroup.Get("/:id", validators.CourseIDParam("id"), ctrl.GetCourse)

	userGroup := app.Group("/api/user", middleware.JWTMiddleware(jwtSecret))
	userGroup.Post("/get-course-progress", validators.Progress(false), ctrl.GetCourseProgress)
	userGroup.Post("/update-course-progress", validators.Progress(true), ctrl.UpdateCourseProgress)
}
