// Package catalog resolves course display names for certificate requests.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"

	courseModels "learnhub/models/course"
)

// ErrCourseNotFound means the course id does not resolve
var ErrCourseNotFound = errors.New("course not found")

// Directory looks up course titles by id
type Directory interface {
	CourseTitle(ctx context.Context, courseID string) (string, error)
}

// GormDirectory reads the local courses table
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) CourseTitle(ctx context.Context, courseID string) (string, error) {
	var course courseModels.Course
	err := d.db.WithContext(ctx).
		Select("id", "course_title").
		Where("id = ?", courseID).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrCourseNotFound
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(course.CourseTitle) == "" {
		return "", ErrCourseNotFound
	}
	return course.CourseTitle, nil
}

// RemoteDirectory asks a course service over HTTP (GET /api/course/:id)
type RemoteDirectory struct {
	client *resty.Client
}

type remoteCourseResponse struct {
	Success    bool `json:"success"`
	CourseData *struct {
		CourseTitle string `json:"courseTitle"`
		Name        string `json:"name"`
	} `json:"courseData"`
}

func NewRemoteDirectory(baseURL string, timeout time.Duration) *RemoteDirectory {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &RemoteDirectory{client: client}
}

func (d *RemoteDirectory) CourseTitle(ctx context.Context, courseID string) (string, error) {
	var body remoteCourseResponse
	resp, err := d.client.R().
		SetContext(ctx).
		SetPathParam("id", courseID).
		SetResult(&body).
		Get("/api/course/{id}")
	if err != nil {
		return "", fmt.Errorf("course catalog request: %w", err)
	}
	if resp.StatusCode() == 404 {
		return "", ErrCourseNotFound
	}
	if resp.IsError() {
		return "", fmt.Errorf("course catalog returned %d", resp.StatusCode())
	}
	if body.CourseData == nil {
		return "", ErrCourseNotFound
	}
	if title := strings.TrimSpace(body.CourseData.CourseTitle); title != "" {
		return title, nil
	}
	if name := strings.TrimSpace(body.CourseData.Name); name != "" {
		return name, nil
	}
	return "", ErrCourseNotFound
}
