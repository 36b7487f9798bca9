package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"learnhub/middleware"
	courseModels "learnhub/models/course"
)

// ProgressInput identifies a course and optionally a lecture of it
type ProgressInput struct {
	CourseID  string `json:"courseId"`
	LectureID string `json:"lectureId"`
}

// AddCourse validates the educator course payload
func AddCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseTitle       string                 `json:"courseTitle"`
			CourseDescription string                 `json:"courseDescription"`
			CoursePrice       float64                `json:"coursePrice"`
			Discount          int                    `json:"discount"`
			IsPublished       *bool                  `json:"isPublished"`
			CourseContent     []courseModels.Chapter `json:"courseContent"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.CourseTitle = strings.TrimSpace(reqData.CourseTitle)
		reqData.CourseDescription = strings.TrimSpace(reqData.CourseDescription)

		if reqData.CourseTitle == "" {
			errors["courseTitle"] = "Course title is required!"
		} else if len(reqData.CourseTitle) < 3 {
			errors["courseTitle"] = "Course title must be at least 3 characters long!"
		}

		if reqData.CoursePrice < 0 {
			errors["coursePrice"] = "Course price cannot be negative!"
		}

		if reqData.Discount < 0 || reqData.Discount > 100 {
			errors["discount"] = "Discount must be between 0 and 100!"
		}

		lectureIDs := make(map[string]bool)
	chapters:
		for i, chapter := range reqData.CourseContent {
			if strings.TrimSpace(chapter.ChapterTitle) == "" {
				errors["courseContent"] = "Every chapter needs a title!"
				break
			}
			for _, lecture := range chapter.ChapterContent {
				id := strings.TrimSpace(lecture.LectureID)
				if id == "" || strings.TrimSpace(lecture.LectureTitle) == "" {
					errors["courseContent"] = "Every lecture needs an id and a title!"
					break chapters
				}
				if lectureIDs[id] {
					errors["courseContent"] = "Lecture ids must be unique within a course!"
					break chapters
				}
				lectureIDs[id] = true
			}
			if chapter.ChapterOrder == 0 {
				reqData.CourseContent[i].ChapterOrder = i + 1
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		published := true
		if reqData.IsPublished != nil {
			published = *reqData.IsPublished
		}

		c.Locals("validatedCourse", &courseModels.Course{
			CourseTitle:       reqData.CourseTitle,
			CourseDescription: reqData.CourseDescription,
			CoursePrice:       reqData.CoursePrice,
			Discount:          reqData.Discount,
			IsPublished:       published,
			CourseContent:     datatypes.NewJSONType(chaptersOrEmpty(reqData.CourseContent)),
		})
		return c.Next()
	}
}

// CourseIDParam validates a course id path parameter
func CourseIDParam(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Params(name))
		if id == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}
		c.Locals("courseID", id)
		return c.Next()
	}
}

// Progress validates the progress body; requireLecture is set for updates
func Progress(requireLecture bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.CourseID = strings.TrimSpace(reqData.CourseID)
		reqData.LectureID = strings.TrimSpace(reqData.LectureID)

		if reqData.CourseID == "" {
			errors["courseId"] = "Course ID is required!"
		}
		if requireLecture && reqData.LectureID == "" {
			errors["lectureId"] = "Lecture ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("progressInput", *reqData)
		return c.Next()
	}
}

func chaptersOrEmpty(chapters []courseModels.Chapter) []courseModels.Chapter {
	if chapters == nil {
		return []courseModels.Chapter{}
	}
	return chapters
}
