package educatorController

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"learnhub/middleware"
	courseModels "learnhub/models/course"
	"learnhub/services/certificate"
)

type EducatorController struct {
	DB           *gorm.DB
	Certificates *certificate.Service
	Log          *logrus.Entry
}

func NewEducatorController(db *gorm.DB, certificates *certificate.Service, log *logrus.Entry) *EducatorController {
	return &EducatorController{DB: db, Certificates: certificates, Log: log.WithField("component", "educator-controller")}
}

func reviewed(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

func (ctrl *EducatorController) ApproveCertificate(c *fiber.Ctx) error {
	if _, err := ctrl.Certificates.Approve(c.UserContext(), c.Locals("requestId").(string)); err != nil {
		return middleware.ReviewErrorResponse(c, ctrl.Log, err)
	}
	return reviewed(c, "Certificate approved")
}

func (ctrl *EducatorController) DeclineCertificate(c *fiber.Ctx) error {
	if _, err := ctrl.Certificates.Decline(c.UserContext(), c.Locals("requestId").(string)); err != nil {
		return middleware.ReviewErrorResponse(c, ctrl.Log, err)
	}
	return reviewed(c, "Certificate request rejected (but retained in DB)")
}

func (ctrl *EducatorController) DeleteCertificateRequest(c *fiber.Ctx) error {
	if err := ctrl.Certificates.Delete(c.UserContext(), c.Locals("requestId").(string)); err != nil {
		return middleware.ReviewErrorResponse(c, ctrl.Log, err)
	}
	return reviewed(c, "Certificate request deleted")
}

// CertificateRequests lists requests for review, optionally by status
func (ctrl *EducatorController) CertificateRequests(c *fiber.Ctx) error {
	status := c.Locals("statusFilter").(courseModels.CertificateStatus)

	views, err := ctrl.Certificates.ListByStatus(c.UserContext(), status)
	if err != nil {
		return middleware.ReviewErrorResponse(c, ctrl.Log, err)
	}
	return c.JSON(fiber.Map{"success": true, "requests": views})
}

func (ctrl *EducatorController) AddCourse(c *fiber.Ctx) error {
	course := c.Locals("validatedCourse").(*courseModels.Course)
	course.Educator = middleware.UserID(c)

	if err := ctrl.DB.WithContext(c.UserContext()).Create(course).Error; err != nil {
		ctrl.Log.WithError(err).Error("failed to add course")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course added successfully!", course)
}

// Courses lists the courses owned by the authenticated educator
func (ctrl *EducatorController) Courses(c *fiber.Ctx) error {
	courses := make([]courseModels.Course, 0)
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("educator = ?", middleware.UserID(c)).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		ctrl.Log.WithError(err).Error("failed to fetch courses")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// DeleteCourse removes an owned course with its progress records. Certificate
// requests are kept; they fall back to "Unknown Course" when listed.
func (ctrl *EducatorController) DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND educator = ?", courseID, middleware.UserID(c)).Delete(&courseModels.Course{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("course_id = ?", courseID).Delete(&courseModels.CourseProgress{}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		ctrl.Log.WithError(err).WithField("course_id", courseID).Error("failed to delete course")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
