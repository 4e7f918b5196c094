package dto

// EnrollmentRequest registers a student in a course. Grade is the optional registration grade.
type EnrollmentRequest struct {
	StudentID      int64   `json:"StudentId" validate:"required,gt=0"`
	CourseID       int64   `json:"CourseId" validate:"required,gt=0"`
	TeacherID      *int64  `json:"TeacherId"`
	Semester       string  `json:"Semester"`
	AcademicYear   string  `json:"AcademicYear"`
	EnrollmentDate string  `json:"EnrollmentDate" validate:"omitempty,datetime=2006-01-02"`
	Status         string  `json:"Status" validate:"omitempty,oneof=Enrolled Completed Dropped"`
	Grade          *string `json:"Grade" validate:"omitempty,max=5"`
}

// AssessmentRequest creates an assessment within a course.
type AssessmentRequest struct {
	CourseID    int64    `json:"CourseId" validate:"required,gt=0"`
	Type        string   `json:"AssessmentType" validate:"required"`
	Name        string   `json:"AssessmentName" validate:"required"`
	MaxPoints   float64  `json:"MaxPoints" validate:"required,gt=0"`
	Weight      *float64 `json:"Weight" validate:"omitempty,gte=0,lte=100"`
	DueDate     string   `json:"DueDate" validate:"omitempty,datetime=2006-01-02"`
	Description string   `json:"Description"`
}

// GradeRequest records or replaces a student's score on an assessment.
type GradeRequest struct {
	StudentID    int64    `json:"StudentId" validate:"required,gt=0"`
	AssessmentID int64    `json:"AssessmentId" validate:"required,gt=0"`
	PointsEarned *float64 `json:"PointsEarned" validate:"required,gte=0"`
	LetterGrade  *string  `json:"LetterGrade" validate:"omitempty,max=5"`
	Comments     string   `json:"Comments"`
}
