// Package routers assembles the HTTP application.
package routers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"learnhub/config"
	bookController "learnhub/controllers/book"
	certificateController "learnhub/controllers/certificate"
	courseController "learnhub/controllers/course"
	educatorController "learnhub/controllers/educator"
	"learnhub/middleware"
	"learnhub/routers/bookRoutes"
	"learnhub/routers/certificateRoutes"
	"learnhub/routers/courseRoutes"
	"learnhub/routers/educatorRoutes"
	"learnhub/services/catalog"
	"learnhub/services/certificate"
	"learnhub/services/render"
)

// Server is the assembled application plus the services background jobs need
type Server struct {
	App          *fiber.App
	Certificates *certificate.Service
}

// CourseDirectory uses the remote catalog when COURSE_CATALOG_URL is set and the
// local courses table otherwise.
func CourseDirectory(cfg *config.Config, db *gorm.DB) catalog.Directory {
	if cfg.CourseCatalogURL != "" {
		return catalog.NewRemoteDirectory(cfg.CourseCatalogURL, cfg.CourseCatalogTimeout)
	}
	return catalog.NewGormDirectory(db)
}

func NewServer(cfg *config.Config, db *gorm.DB, log *logrus.Logger) (*Server, error) {
	entry := logrus.NewEntry(log)

	renderer, err := render.New(cfg.CertificateTemplatePath, cfg.CertificateFontPath, render.DefaultLayout)
	if err != nil {
		return nil, err
	}

	certificates := certificate.NewService(
		certificate.NewGormStore(db),
		CourseDirectory(cfg, db),
		certificate.Options{RequireApproval: cfg.CertificateRequireApproval},
		entry,
	)

	app := fiber.New(fiber.Config{
		AppName:      "learnhub",
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(entry.WithField("component", "http")),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	origins := strings.Join(cfg.CorsOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: !strings.Contains(origins, "*"), // fiber rejects credentials with a wildcard origin
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
		Output: log.Out,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Static("/uploads", cfg.UploadDir)

	certificateRoutes.SetupCertificateRoutes(app, certificateController.NewCertificateController(certificates, renderer, cfg.CertificateDateFormat, entry))
	educatorRoutes.SetupEducatorRoutes(app, educatorController.NewEducatorController(db, certificates, entry), cfg.JWTKey)
	courseRoutes.SetupCourseRoutes(app, courseController.NewCourseController(db, entry), cfg.JWTKey)
	bookRoutes.SetupBookRoutes(app, bookController.NewBookController(db, cfg, entry), cfg)

	return &Server{App: app, Certificates: certificates}, nil
}
