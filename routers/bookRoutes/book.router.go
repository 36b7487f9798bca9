package bookRoutes

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/config"
	bookController "learnhub/controllers/book"
	"learnhub/middleware"
	bookValidator "learnhub/validators/book"
)

func SetupBookRoutes(app *fiber.App, ctrl *bookController.BookController, cfg *config.Config) {
	bookGroup := app.Group("/api/books")

	bookGroup.Get("/", ctrl.ListBooks)
	bookGroup.Get("/categories", ctrl.Categories)
	bookGroup.Get("/:id", bookValidator.BookID(), ctrl.GetBook)

	auth := middleware.JWTMiddleware(cfg.JWTKey)
	staff := middleware.RequireRole(middleware.RoleEducator, middleware.RoleAdmin)
	bookGroup.Post("/", auth, staff, bookValidator.CreateBook(cfg), ctrl.CreateBook)
	bookGroup.Put("/:id", auth, staff, bookValidator.BookID(), bookValidator.UpdateBook(cfg), ctrl.UpdateBook)
	bookGroup.Delete("/:id", auth, staff, bookValidator.BookID(), ctrl.DeleteBook)
}
