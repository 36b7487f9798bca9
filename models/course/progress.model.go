package course

import (
	"time"

	"gorm.io/datatypes"
)

// CourseProgress tracks which lectures a user has completed in a course
type CourseProgress struct {
	ID               uint                        `json:"id" gorm:"primaryKey"`
	UserID           string                      `json:"userId" gorm:"type:varchar(64);not null;uniqueIndex:idx_progress_user_course"`
	CourseID         string                      `json:"courseId" gorm:"type:varchar(64);not null;uniqueIndex:idx_progress_user_course"`
	Completed        bool                        `json:"completed" gorm:"default:false"`
	LectureCompleted datatypes.JSONSlice[string] `json:"lectureCompleted"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}

// HasCompleted reports whether lectureID is already recorded
func (p CourseProgress) HasCompleted(lectureID string) bool {
	for _, id := range p.LectureCompleted {
		if id == lectureID {
			return true
		}
	}
	return false
}
