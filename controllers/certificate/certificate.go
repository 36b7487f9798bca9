package certificateController

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"learnhub/apperror"
	"learnhub/middleware"
	"learnhub/services/certificate"
	"learnhub/services/render"
	certificateValidator "learnhub/validators/certificate"
)

type CertificateController struct {
	Service    *certificate.Service
	Renderer   *render.Renderer
	DateFormat string
	Now        func() time.Time
	Log        *logrus.Entry
}

func NewCertificateController(svc *certificate.Service, renderer *render.Renderer, dateFormat string, log *logrus.Entry) *CertificateController {
	return &CertificateController{
		Service:    svc,
		Renderer:   renderer,
		DateFormat: dateFormat,
		Now:        time.Now,
		Log:        log.WithField("component", "certificate-controller"),
	}
}

// List returns the request of one (user_id, course_id) pair, or every request
// when neither is given.
func (ctrl *CertificateController) List(c *fiber.Ctx) error {
	q := c.Locals("pairQuery").(certificateValidator.PairQuery)

	if q.UserID != "" || q.CourseID != "" {
		view, err := ctrl.Service.Get(c.UserContext(), q.UserID, q.CourseID)
		if err != nil {
			return middleware.PlainErrorResponse(c, ctrl.Log, err)
		}
		return c.JSON(view)
	}

	views, err := ctrl.Service.List(c.UserContext(), certificate.Filter{})
	if err != nil {
		return middleware.PlainErrorResponse(c, ctrl.Log, err)
	}
	return c.JSON(views)
}

func (ctrl *CertificateController) Create(c *fiber.Ctx) error {
	in := c.Locals("certificateInput").(certificate.CreateInput)

	view, err := ctrl.Service.Create(c.UserContext(), in)
	if err != nil {
		return middleware.PlainErrorResponse(c, ctrl.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Certificate request submitted.",
		"request": view,
	})
}

// Status reports whether the certificate is issued; an unknown pair is not issued
func (ctrl *CertificateController) Status(c *fiber.Ctx) error {
	q := c.Locals("pairQuery").(certificateValidator.PairQuery)

	issued, err := ctrl.Service.Issued(c.UserContext(), q.UserID, q.CourseID)
	if err != nil {
		return middleware.PlainErrorResponse(c, ctrl.Log, err)
	}
	return c.JSON(fiber.Map{"certificate_issued": issued})
}

// Download renders the certificate PNG
func (ctrl *CertificateController) Download(c *fiber.Ctx) error {
	q := c.Locals("pairQuery").(certificateValidator.PairQuery)

	doc, err := ctrl.Service.Document(c.UserContext(), q.UserID, q.CourseID)
	if err != nil {
		appErr := apperror.As(err)
		if appErr.HTTPStatus >= fiber.StatusInternalServerError {
			ctrl.Log.WithError(appErr.Err).Error(appErr.Message)
		}
		return c.Status(appErr.HTTPStatus).SendString(appErr.Message)
	}

	png, err := ctrl.Renderer.RenderBytes(render.Certificate{
		StudentName: doc.Request.StudentName,
		CourseName:  doc.CourseName,
		Date:        ctrl.Now().Format(ctrl.DateFormat),
	})
	if err != nil {
		ctrl.Log.WithError(err).WithField("request_id", doc.Request.ID).Error("certificate render failed")
		return c.Status(fiber.StatusInternalServerError).SendString("Certificate generation failed")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, render.Filename(doc.Request.StudentName)))
	return c.Send(png)
}
