package certificateValidator

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	courseModels "learnhub/models/course"
	"learnhub/services/certificate"
)

// ProgressValue accepts progress as a JSON string or number
type ProgressValue string

func (p *ProgressValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ProgressValue(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = ProgressValue(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// PairQuery holds the user and course ids taken from the query string
type PairQuery struct {
	UserID   string
	CourseID string
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

// CreateRequest parses a certificate request body into certificate.CreateInput.
// Field rules are enforced by the certificate service.
func CreateRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID            string        `json:"user_id"`
			CourseID          string        `json:"course_id"`
			StudentName       string        `json:"student_name"`
			Progress          ProgressValue `json:"progress"`
			CertificateIssued *bool         `json:"certificate_issued"` // ignored, derived from status
		})

		if err := c.BodyParser(reqData); err != nil {
			return badRequest(c, "Invalid request body")
		}

		c.Locals("certificateInput", certificate.CreateInput{
			UserID:      reqData.UserID,
			CourseID:    reqData.CourseID,
			StudentName: reqData.StudentName,
			Progress:    string(reqData.Progress),
		})
		return c.Next()
	}
}

// Pair reads userKey and courseKey from the query string. With required set,
// a missing value is rejected with message.
func Pair(userKey, courseKey string, required bool, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := PairQuery{
			UserID:   strings.TrimSpace(c.Query(userKey)),
			CourseID: strings.TrimSpace(c.Query(courseKey)),
		}
		if required && (q.UserID == "" || q.CourseID == "") {
			return badRequest(c, message)
		}
		c.Locals("pairQuery", q)
		return c.Next()
	}
}

func reviewBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": message})
}

// ReviewRequest validates the {requestId} body of approve and decline
func ReviewRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RequestID string `json:"requestId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return reviewBadRequest(c, "Invalid request body")
		}

		reqData.RequestID = strings.TrimSpace(reqData.RequestID)
		if reqData.RequestID == "" {
			return reviewBadRequest(c, "requestId is required")
		}

		c.Locals("requestId", reqData.RequestID)
		return c.Next()
	}
}

// RequestIDParam validates the :requestId path parameter
func RequestIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Params("requestId"))
		if id == "" {
			return reviewBadRequest(c, "requestId is required")
		}
		c.Locals("requestId", id)
		return c.Next()
	}
}

// StatusFilter validates the optional ?status= filter of the educator list
func StatusFilter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := courseModels.CertificateStatus(strings.ToLower(strings.TrimSpace(c.Query("status"))))
		if status != "" && !status.Valid() {
			return reviewBadRequest(c, "status must be one of pending, approved, rejected")
		}
		c.Locals("statusFilter", status)
		return c.Next()
	}
}
