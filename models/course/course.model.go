package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lecture is a single playable unit inside a chapter
type Lecture struct {
	LectureID       string  `json:"lectureId"`
	LectureTitle    string  `json:"lectureTitle"`
	LectureDuration float64 `json:"lectureDuration"` // minutes
	LectureURL      string  `json:"lectureUrl"`
	LectureOrder    int     `json:"lectureOrder"`
}

// Chapter groups lectures
type Chapter struct {
	ChapterID      string    `json:"chapterId"`
	ChapterTitle   string    `json:"chapterTitle"`
	ChapterOrder   int       `json:"chapterOrder"`
	ChapterContent []Lecture `json:"chapterContent"`
}

// Course represents a learning course. Only the title and content are used by the
// certificate workflow; the rest is carried for the educator pages.
type Course struct {
	ID                string                        `json:"id" gorm:"type:varchar(64);primaryKey"`
	CourseTitle       string                        `json:"courseTitle" gorm:"not null"`
	CourseDescription string                        `json:"courseDescription" gorm:"type:text"`
	Educator          string                        `json:"educator" gorm:"type:varchar(64);index"`
	CoursePrice       float64                       `json:"coursePrice" gorm:"default:0"`
	Discount          int                           `json:"discount" gorm:"default:0"`
	IsPublished       bool                          `json:"isPublished"`
	CourseContent     datatypes.JSONType[[]Chapter] `json:"courseContent"`
	CreatedAt         time.Time                     `json:"createdAt"`
	UpdatedAt         time.Time                     `json:"updatedAt"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Chapters returns the decoded course content
func (c Course) Chapters() []Chapter {
	return c.CourseContent.Data()
}

// HasLecture reports whether lectureID belongs to the course
func (c Course) HasLecture(lectureID string) bool {
	for _, chapter := range c.Chapters() {
		for _, lecture := range chapter.ChapterContent {
			if lecture.LectureID == lectureID {
				return true
			}
		}
	}
	return false
}
