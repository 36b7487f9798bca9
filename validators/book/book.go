package bookValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"learnhub/config"
	"learnhub/middleware"
	"learnhub/utils"
	"learnhub/validators"
)

// BookInput is the validated book payload
type BookInput struct {
	BookName       string  `json:"bookName" form:"bookName" validate:"required,max=200"`
	ExtraAdding    string  `json:"extraAdding" form:"extraAdding" validate:"max=500"`
	BookAuthor     string  `json:"bookAuthor" form:"bookAuthor" validate:"required,alphaspace,max=100"`
	BookPrice      float64 `json:"bookPrice" form:"bookPrice" validate:"gt=0"`
	AvailableStock int     `json:"availableStock" form:"availableStock" validate:"gte=0"`
	Category       string  `json:"category" form:"category" validate:"required"`
}

func (in *BookInput) normalize() {
	in.BookName = strings.TrimSpace(in.BookName)
	in.ExtraAdding = strings.TrimSpace(in.ExtraAdding)
	in.BookAuthor = strings.TrimSpace(in.BookAuthor)
	in.Category = strings.TrimSpace(in.Category)
}

func validate(cfg *config.Config, in *BookInput) map[string]string {
	in.normalize()
	errors := validators.FieldErrors(validators.Validate.Struct(in))
	if errors == nil {
		errors = make(map[string]string)
	}
	if _, bad := errors["category"]; !bad && !cfg.HasCategory(in.Category) {
		errors["category"] = "must be one of: " + strings.Join(cfg.BookCategories, ", ")
	}
	return errors
}

// CreateBook validates a multipart book form; the bookImage file is required
func CreateBook(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BookInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validate(cfg, reqData)

		image, err := c.FormFile("bookImage")
		if err != nil {
			errors["bookImage"] = "is required"
		} else if !utils.IsImageFile(image) {
			errors["bookImage"] = "must be a png, jpg, gif or webp image"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBook", reqData)
		c.Locals("bookImage", image)
		return c.Next()
	}
}

// UpdateBook validates a JSON or form update; a new bookImage is optional
func UpdateBook(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BookInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validate(cfg, reqData)

		if image, err := c.FormFile("bookImage"); err == nil {
			if !utils.IsImageFile(image) {
				errors["bookImage"] = "must be a png, jpg, gif or webp image"
			} else {
				c.Locals("bookImage", image)
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBook", reqData)
		return c.Next()
	}
}

// BookID validates the :id path parameter
func BookID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid book ID!", nil)
		}
		c.Locals("bookID", uint(id))
		return c.Next()
	}
}
