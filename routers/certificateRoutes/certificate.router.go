package certificateRoutes

import (
	"github.com/gofiber/fiber/v2"

	certificateController "learnhub/controllers/certificate"
	certificateValidator "learnhub/validators/certificate"
)

func SetupCertificateRoutes(app *fiber.App, ctrl *certificateController.CertificateController) {
	certificateGroup := app.Group("/api/certificate_request")

	certificateGroup.Get("/", certificateValidator.Pair("user_id", "course_id", false, ""), ctrl.List)
	certificateGroup.Post("/", certificateValidator.CreateRequest(), ctrl.Create)
	certificateGroup.Get("/status", certificateValidator.Pair("user_id", "course_id", true, "Missing user_id or course_id"), ctrl.Status)
	certificateGroup.Get("/download", certificateValidator.Pair("userId", "courseId", true, "Missing userId or courseId"), ctrl.Download)
}
