package models

import "time"

// Course is a unit of study offered by a department.
type Course struct {
	ID            int64     `db:"id" json:"CourseId"`
	Code          *string   `db:"course_code" json:"CourseCode"`
	Name          string    `db:"course_name" json:"CourseName"`
	Description   string    `db:"description" json:"Description"`
	Credits       int       `db:"credits" json:"Credits"`
	Prerequisites string    `db:"prerequisites" json:"Prerequisites"`
	DepartmentID  *int64    `db:"department_id" json:"DepartmentId"`
	Duration      string    `db:"duration" json:"Duration"`
	Status        string    `db:"status" json:"Status"`
	CreatedAt     time.Time `db:"created_at" json:"CreatedAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"UpdatedAt"`
}

// CourseDetail adds the joined department name.
type CourseDetail struct {
	Course
	DepartmentName *string `db:"department_name" json:"DepartmentName"`
}

// DefaultCourseCredits applies when a course is created without credits.
const DefaultCourseCredits = 3
