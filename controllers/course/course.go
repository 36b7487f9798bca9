package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"learnhub/middleware"
	courseModels "learnhub/models/course"
	"learnhub/services/progress"
	courseValidator "learnhub/validators/course"
)

type CourseController struct {
	DB  *gorm.DB
	Log *logrus.Entry
}

func NewCourseController(db *gorm.DB, log *logrus.Entry) *CourseController {
	return &CourseController{DB: db, Log: log.WithField("component", "course-controller")}
}

func (ctrl *CourseController) findCourse(c *fiber.Ctx, courseID string) (*courseModels.Course, error) {
	var course courseModels.Course
	if err := ctrl.DB.WithContext(c.UserContext()).Where("id = ?", courseID).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (ctrl *CourseController) findProgress(c *fiber.Ctx, userID, courseID string) (*courseModels.CourseProgress, error) {
	record := courseModels.CourseProgress{UserID: userID, CourseID: courseID}
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&record).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &record, nil
}

func (ctrl *CourseController) courseError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	ctrl.Log.WithError(err).Error("failed to fetch course")
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
}

// GetCourse returns a published course with its chapters
func (ctrl *CourseController) GetCourse(c *fiber.Ctx) error {
	course, err := ctrl.findCourse(c, c.Locals("courseID").(string))
	if err == nil && !course.IsPublished {
		err = gorm.ErrRecordNotFound
	}
	if err != nil {
		return ctrl.courseError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// GetCourseProgress evaluates the caller's progress in a course
func (ctrl *CourseController) GetCourseProgress(c *fiber.Ctx) error {
	in := c.Locals("progressInput").(courseValidator.ProgressInput)

	course, err := ctrl.findCourse(c, in.CourseID)
	if err != nil {
		return ctrl.courseError(c, err)
	}
	record, err := ctrl.findProgress(c, middleware.UserID(c), in.CourseID)
	if err != nil {
		ctrl.Log.WithError(err).Error("failed to fetch progress")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress.Evaluate(*course, *record))
}

// UpdateCourseProgress records a completed lecture
func (ctrl *CourseController) UpdateCourseProgress(c *fiber.Ctx) error {
	in := c.Locals("progressInput").(courseValidator.ProgressInput)
	userID := middleware.UserID(c)

	course, err := ctrl.findCourse(c, in.CourseID)
	if err != nil {
		return ctrl.courseError(c, err)
	}
	if !course.HasLecture(in.LectureID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found in course!", nil)
	}

	record, err := ctrl.findProgress(c, userID, in.CourseID)
	if err != nil {
		ctrl.Log.WithError(err).Error("failed to fetch progress")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}
	if record.HasCompleted(in.LectureID) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture already completed", progress.Evaluate(*course, *record))
	}

	record.LectureCompleted = append(record.LectureCompleted, in.LectureID)
	report := progress.Evaluate(*course, *record)
	record.Completed = report.Eligible

	if err := ctrl.DB.WithContext(c.UserContext()).Save(record).Error; err != nil {
		ctrl.Log.WithError(err).WithFields(logrus.Fields{"user_id": userID, "course_id": in.CourseID}).Error("failed to save progress")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated", report)
}
