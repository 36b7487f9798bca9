package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateStatus is the review state of a certificate request
type CertificateStatus string

const (
	StatusPending  CertificateStatus = "pending"
	StatusApproved CertificateStatus = "approved"
	StatusRejected CertificateStatus = "rejected"
)

// Valid reports whether s is one of the three known states
func (s CertificateStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsIssued is the boolean view of the status; only approved requests carry a certificate
func (s CertificateStatus) IsIssued() bool {
	return s == StatusApproved
}

// CertificateRequest represents a student's claim to have completed a course
type CertificateRequest struct {
	ID          string            `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID      string            `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_certificate_user_course"`
	CourseID    string            `json:"course_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_certificate_user_course"`
	StudentName string            `json:"student_name" gorm:"not null"`
	Progress    string            `json:"progress" gorm:"type:varchar(16);not null"` // percentage stored as text
	Status      CertificateStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (CertificateRequest) TableName() string {
	return "certificate_requests"
}

// BeforeCreate assigns the id and the initial status
func (r *CertificateRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	return nil
}

// CertificateIssued derives the legacy boolean flag from the status
func (r CertificateRequest) CertificateIssued() bool {
	return r.Status.IsIssued()
}
