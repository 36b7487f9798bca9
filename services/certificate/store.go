package certificate

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	courseModels "learnhub/models/course"
)

// ErrNoRecord is returned by the store when no row matches
var ErrNoRecord = errors.New("certificate request: no record")

// Store persists certificate requests
type Store interface {
	Create(ctx context.Context, req *courseModels.CertificateRequest) error
	Update(ctx context.Context, req *courseModels.CertificateRequest) error
	FindByID(ctx context.Context, id string) (*courseModels.CertificateRequest, error)
	FindByPair(ctx context.Context, userID, courseID string) (*courseModels.CertificateRequest, error)
	List(ctx context.Context, status courseModels.CertificateStatus) ([]courseModels.CertificateRequest, error)
	UpdateStatus(ctx context.Context, id string, status courseModels.CertificateStatus) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status courseModels.CertificateStatus) (int64, error)
	CountCreatedSince(ctx context.Context, status courseModels.CertificateStatus, since time.Time) (int64, error)
}

// GormStore is the gorm backed Store
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, req *courseModels.CertificateRequest) error {
	return s.db.WithContext(ctx).Create(req).Error
}

// Update writes the mutable columns of an existing request
func (s *GormStore) Update(ctx context.Context, req *courseModels.CertificateRequest) error {
	result := s.db.WithContext(ctx).
		Model(req).
		Select("student_name", "progress", "status", "updated_at").
		Updates(req)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRecord
	}
	return nil
}

func (s *GormStore) FindByID(ctx context.Context, id string) (*courseModels.CertificateRequest, error) {
	var req courseModels.CertificateRequest
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *GormStore) FindByPair(ctx context.Context, userID, courseID string) (*courseModels.CertificateRequest, error) {
	var req courseModels.CertificateRequest
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns requests newest first; an empty status means all of them
func (s *GormStore) List(ctx context.Context, status courseModels.CertificateStatus) ([]courseModels.CertificateRequest, error) {
	query := s.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	requests := make([]courseModels.CertificateRequest, 0)
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *GormStore) UpdateStatus(ctx context.Context, id string, status courseModels.CertificateStatus) error {
	result := s.db.WithContext(ctx).
		Model(&courseModels.CertificateRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRecord
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&courseModels.CertificateRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRecord
	}
	return nil
}

func (s *GormStore) CountByStatus(ctx context.Context, status courseModels.CertificateStatus) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&courseModels.CertificateRequest{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}

func (s *GormStore) CountCreatedSince(ctx context.Context, status courseModels.CertificateStatus, since time.Time) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&courseModels.CertificateRequest{}).
		Where("status = ? AND created_at >= ?", status, since).
		Count(&total).Error
	return total, err
}
