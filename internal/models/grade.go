package models

import "time"

// Grade records a student's score on one assessment. (StudentID, AssessmentID) is unique.
type Grade struct {
	ID           int64     `db:"id" json:"GradeId"`
	StudentID    int64     `db:"student_id" json:"StudentId"`
	AssessmentID int64     `db:"assessment_id" json:"AssessmentId"`
	PointsEarned float64   `db:"points_earned" json:"PointsEarned"`
	LetterGrade  *string   `db:"letter_grade" json:"LetterGrade"`
	GradeDate    time.Time `db:"grade_date" json:"GradeDate"`
	Comments     string    `db:"comments" json:"Comments"`
}

// AssessmentGrade is a grade joined with its assessment and course.
type AssessmentGrade struct {
	Grade
	AssessmentName string  `db:"assessment_name" json:"AssessmentName"`
	AssessmentType string  `db:"assessment_type" json:"AssessmentType"`
	MaxPoints      float64 `db:"max_points" json:"MaxPoints"`
	CourseName     string  `db:"course_name" json:"CourseName"`
	CourseCode     *string `db:"course_code" json:"CourseCode"`
}

// GradeNotice carries what a grade notification email needs.
type GradeNotice struct {
	Email       *string `db:"email"`
	StudentName string  `db:"student_name"`
	CourseName  string  `db:"course_name"`
}

// GradeSource labels where an entry in the merged grades view came from.
type GradeSource string

const (
	GradeSourceMainReport    GradeSource = "Main Report"
	GradeSourceUpdatedReport GradeSource = "Updated Report"
	GradeSourceRegistration  GradeSource = "Registration"
)

// UnknownValue fills name or department when no source provides one.
const UnknownValue = "Unknown"

// GradeEntry is one course/grade pair in the merged view.
type GradeEntry struct {
	Course string      `json:"course"`
	Grade  *string     `json:"grade"`
	Source GradeSource `json:"source"`
}

// StudentGrades is the merged, unreconciled grade history for a student.
type StudentGrades struct {
	StudentID   int64        `json:"studentId"`
	StudentName string       `json:"studentName"`
	Department  string       `json:"department"`
	Grades      []GradeEntry `json:"grades"`
}
