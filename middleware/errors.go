package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"learnhub/apperror"
)

// logFailure records internal failures with the request id; the client only
// ever sees the generic message.
func logFailure(c *fiber.Ctx, log *logrus.Entry, appErr *apperror.AppError) {
	if appErr.HTTPStatus < fiber.StatusInternalServerError || log == nil {
		return
	}
	log.WithFields(logrus.Fields{
		"request_id": c.Locals("requestid"),
		"path":       c.Path(),
		"code":       appErr.Code,
	}).WithError(appErr.Err).Error(appErr.Message)
}

// ErrorResponse writes err in the {status, message, data} envelope
func ErrorResponse(c *fiber.Ctx, log *logrus.Entry, err error) error {
	appErr := apperror.As(err)
	logFailure(c, log, appErr)
	return JsonResponse(c, appErr.HTTPStatus, false, appErr.Message, appErr.Data)
}

// PlainErrorResponse writes err as {"error": message[, "fields": data]}
func PlainErrorResponse(c *fiber.Ctx, log *logrus.Entry, err error) error {
	appErr := apperror.As(err)
	logFailure(c, log, appErr)
	body := fiber.Map{"error": appErr.Message}
	if appErr.Data != nil {
		body["fields"] = appErr.Data
	}
	return c.Status(appErr.HTTPStatus).JSON(body)
}

// ReviewErrorResponse writes err as {"success": false, "message": message}
func ReviewErrorResponse(c *fiber.Ctx, log *logrus.Entry, err error) error {
	appErr := apperror.As(err)
	logFailure(c, log, appErr)
	return c.Status(appErr.HTTPStatus).JSON(fiber.Map{"success": false, "message": appErr.Message})
}

// ErrorHandler is the fiber.Config ErrorHandler for errors no handler caught
func ErrorHandler(log *logrus.Entry) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return JsonResponse(c, fe.Code, false, fe.Message, nil)
		}
		return ErrorResponse(c, log, err)
	}
}
