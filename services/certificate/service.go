// Package certificate implements the certificate request workflow: submission,
// educator review and lookup of the data needed to render a certificate.
package certificate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"learnhub/apperror"
	courseModels "learnhub/models/course"
	"learnhub/services/catalog"
	"learnhub/validators"
)

// UnknownCourse is shown when the course of a request cannot be resolved
const UnknownCourse = "Unknown Course"

// Filter selects requests for List. Any non-empty field switches List to a
// single-record lookup on the exact (UserID, CourseID) pair.
type Filter struct {
	UserID   string
	CourseID string
}

func (f Filter) isSingle() bool {
	return f.UserID != "" || f.CourseID != ""
}

// CreateInput is the payload of a new request
type CreateInput struct {
	UserID      string `json:"user_id" validate:"required"`
	CourseID    string `json:"course_id" validate:"required"`
	StudentName string `json:"student_name" validate:"required,alphaspace,max=100"`
	Progress    string `json:"progress" validate:"required,percent"`
}

func (in *CreateInput) normalize() {
	in.UserID = strings.TrimSpace(in.UserID)
	in.CourseID = strings.TrimSpace(in.CourseID)
	in.StudentName = strings.Join(strings.Fields(in.StudentName), " ")
	in.Progress = strings.TrimSpace(in.Progress)
}

// View is a stored request enriched for display
type View struct {
	ID                string                         `json:"id"`
	UserID            string                         `json:"user_id"`
	CourseID          string                         `json:"course_id"`
	StudentName       string                         `json:"student_name"`
	Progress          string                         `json:"progress"`
	Status            courseModels.CertificateStatus `json:"status"`
	CertificateIssued bool                           `json:"certificate_issued"`
	CourseName        string                         `json:"course_name"`
	CreatedAt         time.Time                      `json:"createdAt"`
	UpdatedAt         time.Time                      `json:"updatedAt"`
}

// Document is everything the renderer needs for one certificate
type Document struct {
	Request    courseModels.CertificateRequest
	CourseName string
}

// Options tune the service behaviour
type Options struct {
	// RequireApproval makes Document refuse requests that are not approved
	RequireApproval bool
}

// Service is the request/review boundary shared by student and educator routes
type Service struct {
	store   Store
	courses catalog.Directory
	opts    Options
	log     *logrus.Entry
}

func NewService(store Store, courses catalog.Directory, opts Options, log *logrus.Entry) *Service {
	return &Service{
		store:   store,
		courses: courses,
		opts:    opts,
		log:     log.WithField("component", "certificate-service"),
	}
}

// List returns one enriched request when the filter is set, all of them otherwise
func (s *Service) List(ctx context.Context, filter Filter) ([]View, error) {
	if filter.isSingle() {
		view, err := s.Get(ctx, filter.UserID, filter.CourseID)
		if err != nil {
			return nil, err
		}
		return []View{*view}, nil
	}
	return s.ListByStatus(ctx, "")
}

// ListByStatus returns enriched requests, newest first; empty status means all
func (s *Service) ListByStatus(ctx context.Context, status courseModels.CertificateStatus) ([]View, error) {
	if status != "" && !status.Valid() {
		return nil, apperror.Validation("Invalid status filter")
	}
	requests, err := s.store.List(ctx, status)
	if err != nil {
		return nil, apperror.Internal("Failed to fetch certificate requests", err)
	}

	titles := make(map[string]string)
	views := make([]View, 0, len(requests))
	for _, req := range requests {
		title, ok := titles[req.CourseID]
		if !ok {
			title = s.courseName(ctx, req.CourseID)
			titles[req.CourseID] = title
		}
		views = append(views, toView(req, title))
	}
	return views, nil
}

// Get returns the request of userID for courseID
func (s *Service) Get(ctx context.Context, userID, courseID string) (*View, error) {
	req, err := s.findByPair(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	view := toView(*req, s.courseName(ctx, req.CourseID))
	return &view, nil
}

// Create validates and stores a new request. A pending or approved request for the
// same pair is a conflict; a rejected one is reopened with the new name and progress.
func (s *Service) Create(ctx context.Context, in CreateInput) (*View, error) {
	in.normalize()
	if in.UserID == "" || in.CourseID == "" || in.StudentName == "" || in.Progress == "" {
		return nil, apperror.Validation("Missing required fields")
	}
	if err := validators.Validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid fields").WithData(validators.FieldErrors(err))
	}

	existing, err := s.store.FindByPair(ctx, in.UserID, in.CourseID)
	switch {
	case errors.Is(err, ErrNoRecord):
		req := &courseModels.CertificateRequest{
			UserID:      in.UserID,
			CourseID:    in.CourseID,
			StudentName: in.StudentName,
			Progress:    in.Progress,
			Status:      courseModels.StatusPending,
		}
		if err := s.store.Create(ctx, req); err != nil {
			return nil, apperror.Internal("Failed to submit certificate request", err)
		}
		s.log.WithFields(logrus.Fields{"request_id": req.ID, "user_id": req.UserID, "course_id": req.CourseID}).
			Info("certificate request submitted")
		view := toView(*req, s.courseName(ctx, req.CourseID))
		return &view, nil
	case err != nil:
		return nil, apperror.Internal("Failed to submit certificate request", err)
	}

	switch existing.Status {
	case courseModels.StatusPending:
		return nil, apperror.Conflict("Certificate request already pending")
	case courseModels.StatusApproved:
		return nil, apperror.Conflict("Certificate already issued")
	}

	existing.StudentName = in.StudentName
	existing.Progress = in.Progress
	existing.Status = courseModels.StatusPending
	if err := s.store.Update(ctx, existing); err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, apperror.Conflict("Certificate request changed, please retry")
		}
		return nil, apperror.Internal("Failed to submit certificate request", err)
	}
	s.log.WithField("request_id", existing.ID).Info("rejected certificate request resubmitted")
	view := toView(*existing, s.courseName(ctx, existing.CourseID))
	return &view, nil
}

// Approve moves the request to approved; approving twice is not an error
func (s *Service) Approve(ctx context.Context, requestID string) (*courseModels.CertificateRequest, error) {
	return s.apply(ctx, requestID, ActionApprove)
}

// Decline moves the request to rejected and keeps the record
func (s *Service) Decline(ctx context.Context, requestID string) (*courseModels.CertificateRequest, error) {
	return s.apply(ctx, requestID, ActionDecline)
}

func (s *Service) apply(ctx context.Context, requestID string, action Action) (*courseModels.CertificateRequest, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, apperror.Validation("requestId is required")
	}
	req, err := s.findByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	next, err := Transition(req.Status, action)
	if err != nil {
		return nil, err
	}
	if next != req.Status {
		if err := s.store.UpdateStatus(ctx, req.ID, next); err != nil {
			if errors.Is(err, ErrNoRecord) {
				return nil, apperror.NotFound("Request not found")
			}
			return nil, apperror.Internal("Failed to update certificate request", err)
		}
		s.log.WithFields(logrus.Fields{"request_id": req.ID, "from": req.Status, "to": next}).Info("certificate request reviewed")
		req.Status = next
	}
	return req, nil
}

// Delete removes the request permanently, whatever its state
func (s *Service) Delete(ctx context.Context, requestID string) error {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return apperror.Validation("requestId is required")
	}
	if err := s.store.Delete(ctx, requestID); err != nil {
		if errors.Is(err, ErrNoRecord) {
			return apperror.NotFound("Request not found")
		}
		return apperror.Internal("Failed to delete certificate request", err)
	}
	s.log.WithField("request_id", requestID).Info("certificate request deleted")
	return nil
}

// Issued reports whether userID holds an approved certificate for courseID.
// A missing request is not an error.
func (s *Service) Issued(ctx context.Context, userID, courseID string) (bool, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(courseID) == "" {
		return false, apperror.Validation("Missing user_id or course_id")
	}
	req, err := s.store.FindByPair(ctx, userID, courseID)
	if errors.Is(err, ErrNoRecord) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Internal("Failed to check certificate status", err)
	}
	return req.CertificateIssued(), nil
}

// Document resolves the request and course name used to render a certificate
func (s *Service) Document(ctx context.Context, userID, courseID string) (*Document, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(courseID) == "" {
		return nil, apperror.Validation("Missing userId or courseId")
	}
	req, err := s.findByPair(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if s.opts.RequireApproval && !req.CertificateIssued() {
		return nil, apperror.Conflict("Certificate has not been issued")
	}
	return &Document{Request: *req, CourseName: s.courseName(ctx, courseID)}, nil
}

// CountByStatus counts requests in status
func (s *Service) CountByStatus(ctx context.Context, status courseModels.CertificateStatus) (int64, error) {
	return s.store.CountByStatus(ctx, status)
}

// CountCreatedSince counts requests in status submitted at or after since
func (s *Service) CountCreatedSince(ctx context.Context, status courseModels.CertificateStatus, since time.Time) (int64, error) {
	return s.store.CountCreatedSince(ctx, status, since)
}

func (s *Service) findByID(ctx context.Context, id string) (*courseModels.CertificateRequest, error) {
	req, err := s.store.FindByID(ctx, id)
	if errors.Is(err, ErrNoRecord) {
		return nil, apperror.NotFound("Request not found")
	}
	if err != nil {
		return nil, apperror.Internal("Failed to fetch certificate request", err)
	}
	return req, nil
}

func (s *Service) findByPair(ctx context.Context, userID, courseID string) (*courseModels.CertificateRequest, error) {
	if userID == "" || courseID == "" {
		return nil, apperror.NotFound("Certificate request not found")
	}
	req, err := s.store.FindByPair(ctx, userID, courseID)
	if errors.Is(err, ErrNoRecord) {
		return nil, apperror.NotFound("Certificate request not found")
	}
	if err != nil {
		return nil, apperror.Internal("Failed to fetch certificate request", err)
	}
	return req, nil
}

// courseName is best-effort enrichment: lookup failures never fail the caller
func (s *Service) courseName(ctx context.Context, courseID string) string {
	if s.courses == nil {
		return UnknownCourse
	}
	title, err := s.courses.CourseTitle(ctx, courseID)
	if err != nil {
		if !errors.Is(err, catalog.ErrCourseNotFound) {
			s.log.WithError(err).WithField("course_id", courseID).Warn("course lookup failed")
		}
		return UnknownCourse
	}
	return title
}

func toView(req courseModels.CertificateRequest, courseName string) View {
	return View{
		ID:                req.ID,
		UserID:            req.UserID,
		CourseID:          req.CourseID,
		StudentName:       req.StudentName,
		Progress:          req.Progress,
		Status:            req.Status,
		CertificateIssued: req.CertificateIssued(),
		CourseName:        courseName,
		CreatedAt:         req.CreatedAt,
		UpdatedAt:         req.UpdatedAt,
	}
}
