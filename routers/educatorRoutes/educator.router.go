package educatorRoutes

import (
	"github.com/gofiber/fiber/v2"

	educatorController "learnhub/controllers/educator"
	"learnhub/middleware"
	certificateValidator "learnhub/validators/certificate"
	courseValidator "learnhub/validators/course"
)

func SetupEducatorRoutes(app *fiber.App, ctrl *educatorController.EducatorController, jwtSecret string) {
	educatorGroup := app.Group("/api/educator", middleware.JWTMiddleware(jwtSecret), middleware.RequireRole(middleware.RoleEducator))

	// Certificate review
	educatorGroup.Post("/approve-certificate", certificateValidator.ReviewRequest(), ctrl.ApproveCertificate)
	educatorGroup.Post("/decline-certificate", certificateValidator.ReviewRequest(), ctrl.DeclineCertificate)
	educatorGroup.Delete("/certificate-request/:requestId", certificateValidator.RequestIDParam(), ctrl.DeleteCertificateRequest)
	educatorGroup.Get("/certificate-requests", certificateValidator.StatusFilter(), ctrl.CertificateRequests)

	// Courses
	educatorGroup.Post("/add-course", courseValidator.AddCourse(), ctrl.AddCourse)
	educatorGroup.Get("/courses", ctrl.Courses)
	educatorGroup.Delete("/delete-course/:courseId", courseValidator.CourseIDParam("courseId"), ctrl.DeleteCourse)
}
