// Package progress computes course completion from lecture completion records.
package progress

import (
	"math"

	courseModels "learnhub/models/course"
)

// Report is the completion summary of one user in one course
type Report struct {
	CourseID  string   `json:"courseId"`
	Completed int      `json:"completed"`
	Total     int      `json:"total"`
	Percent   int      `json:"percent"`
	Eligible  bool     `json:"eligible"`
	Lectures  []string `json:"lectureCompleted"`
}

// TotalLectures sums the lecture entries across all chapters
func TotalLectures(chapters []courseModels.Chapter) int {
	total := 0
	for _, chapter := range chapters {
		total += len(chapter.ChapterContent)
	}
	return total
}

// Percent returns round(completed/total*100). A course without lectures is 0%.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Evaluate counts only completions that refer to lectures of the course, so stale
// ids left behind by course edits do not inflate the percentage.
func Evaluate(course courseModels.Course, record courseModels.CourseProgress) Report {
	known := make(map[string]struct{})
	for _, chapter := range course.Chapters() {
		for _, lecture := range chapter.ChapterContent {
			known[lecture.LectureID] = struct{}{}
		}
	}

	lectures := make([]string, 0, len(record.LectureCompleted))
	seen := make(map[string]struct{}, len(record.LectureCompleted))
	for _, id := range record.LectureCompleted {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		lectures = append(lectures, id)
	}

	total := TotalLectures(course.Chapters())
	percent := Percent(len(lectures), total)
	return Report{
		CourseID:  course.ID,
		Completed: len(lectures),
		Total:     total,
		Percent:   percent,
		Eligible:  total > 0 && percent == 100,
		Lectures:  lectures,
	}
}
