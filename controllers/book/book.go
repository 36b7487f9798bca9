package bookController

import (
	"errors"
	"mime/multipart"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"learnhub/config"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/utils"
	bookValidator "learnhub/validators/book"
)

type BookController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *logrus.Entry
}

func NewBookController(db *gorm.DB, cfg *config.Config, log *logrus.Entry) *BookController {
	return &BookController{DB: db, Cfg: cfg, Log: log.WithField("component", "book-controller")}
}

func (ctrl *BookController) failed(c *fiber.Ctx, err error, message string) error {
	ctrl.Log.WithError(err).Error(message)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, message, nil)
}

func (ctrl *BookController) findBook(c *fiber.Ctx) (*models.Book, error) {
	var book models.Book
	err := ctrl.DB.WithContext(c.UserContext()).First(&book, c.Locals("bookID").(uint)).Error
	return &book, err
}

// storedName returns the upload file name behind a /uploads URL
func storedName(url string) string {
	if !strings.HasPrefix(url, "/uploads/") {
		return ""
	}
	return path.Base(url)
}

// ListBooks returns all books, optionally filtered by ?category=
func (ctrl *BookController) ListBooks(c *fiber.Ctx) error {
	query := ctrl.DB.WithContext(c.UserContext()).Order("created_at desc")
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}

	books := make([]models.Book, 0)
	if err := query.Find(&books).Error; err != nil {
		return ctrl.failed(c, err, "Failed to fetch books!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Books fetched successfully!", books)
}

func (ctrl *BookController) Categories(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", ctrl.Cfg.BookCategories)
}

func (ctrl *BookController) GetBook(c *fiber.Ctx) error {
	book, err := ctrl.findBook(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found!", nil)
	}
	if err != nil {
		return ctrl.failed(c, err, "Failed to fetch book!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Book fetched successfully!", book)
}

func (ctrl *BookController) CreateBook(c *fiber.Ctx) error {
	in := c.Locals("validatedBook").(*bookValidator.BookInput)
	image := c.Locals("bookImage").(*multipart.FileHeader)

	name, err := utils.SaveUploadedFile(image, ctrl.Cfg.UploadDir)
	if err != nil {
		return ctrl.failed(c, err, "Failed to store book image!")
	}

	book := models.Book{
		BookImage:      utils.GetFileURL(name),
		BookName:       in.BookName,
		ExtraAdding:    in.ExtraAdding,
		BookAuthor:     in.BookAuthor,
		BookPrice:      in.BookPrice,
		AvailableStock: in.AvailableStock,
		Category:       in.Category,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&book).Error; err != nil {
		_ = utils.RemoveUploadedFile(ctrl.Cfg.UploadDir, name)
		return ctrl.failed(c, err, "Failed to add book!")
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Book added successfully!", book)
}

func (ctrl *BookController) UpdateBook(c *fiber.Ctx) error {
	in := c.Locals("validatedBook").(*bookValidator.BookInput)

	book, err := ctrl.findBook(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found!", nil)
	}
	if err != nil {
		return ctrl.failed(c, err, "Failed to fetch book!")
	}

	oldImage := ""
	if image, ok := c.Locals("bookImage").(*multipart.FileHeader); ok && image != nil {
		name, err := utils.SaveUploadedFile(image, ctrl.Cfg.UploadDir)
		if err != nil {
			return ctrl.failed(c, err, "Failed to store book image!")
		}
		oldImage = storedName(book.BookImage)
		book.BookImage = utils.GetFileURL(name)
	}

	book.BookName = in.BookName
	book.ExtraAdding = in.ExtraAdding
	book.BookAuthor = in.BookAuthor
	book.BookPrice = in.BookPrice
	book.AvailableStock = in.AvailableStock
	book.Category = in.Category

	if err := ctrl.DB.WithContext(c.UserContext()).Save(book).Error; err != nil {
		return ctrl.failed(c, err, "Failed to update book!")
	}
	if err := utils.RemoveUploadedFile(ctrl.Cfg.UploadDir, oldImage); err != nil {
		ctrl.Log.WithError(err).Warn("failed to remove replaced book image")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Book updated successfully!", book)
}

func (ctrl *BookController) DeleteBook(c *fiber.Ctx) error {
	book, err := ctrl.findBook(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found!", nil)
	}
	if err != nil {
		return ctrl.failed(c, err, "Failed to fetch book!")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Unscoped().Delete(book).Error; err != nil {
		return ctrl.failed(c, err, "Failed to delete book!")
	}
	if err := utils.RemoveUploadedFile(ctrl.Cfg.UploadDir, storedName(book.BookImage)); err != nil {
		ctrl.Log.WithError(err).Warn("failed to remove book image")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Book deleted successfully!", nil)
}
