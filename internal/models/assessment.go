package models

import "time"

// Assessment is a gradable unit within a course.
type Assessment struct {
	ID          int64      `db:"id" json:"AssessmentId"`
	CourseID    int64      `db:"course_id" json:"CourseId"`
	Type        string     `db:"assessment_type" json:"AssessmentType"`
	Name        string     `db:"assessment_name" json:"AssessmentName"`
	MaxPoints   float64    `db:"max_points" json:"MaxPoints"`
	Weight      *float64   `db:"weight" json:"Weight"`
	DueDate     *time.Time `db:"due_date" json:"DueDate"`
	Description string     `db:"description" json:"Description"`
	CreatedAt   time.Time  `db:"created_at" json:"CreatedAt"`
}
