package models

import "time"

// EnrollmentStatusEnrolled is the initial status of a registration.
const EnrollmentStatusEnrolled = "Enrolled"

// Enrollment registers a student in a course for a term. Grade is the free text registration grade.
type Enrollment struct {
	ID             int64      `db:"id" json:"EnrollmentId"`
	StudentID      int64      `db:"student_id" json:"StudentId"`
	CourseID       int64      `db:"course_id" json:"CourseId"`
	TeacherID      *int64     `db:"teacher_id" json:"TeacherId"`
	Semester       string     `db:"semester" json:"Semester"`
	AcademicYear   string     `db:"academic_year" json:"AcademicYear"`
	EnrollmentDate *time.Time `db:"enrollment_date" json:"EnrollmentDate"`
	Status         string     `db:"status" json:"Status"`
	Grade          *string    `db:"grade" json:"Grade"`
	CreatedAt      time.Time  `db:"created_at" json:"CreatedAt"`
}

// EnrollmentDetail enriches Enrollment with student and course info.
type EnrollmentDetail struct {
	Enrollment
	StudentName *string `db:"student_name" json:"StudentName"`
	CourseName  *string `db:"course_name" json:"CourseName"`
	CourseCode  *string `db:"course_code" json:"CourseCode"`
}

// EnrollmentFilter provides filters for listing enrollments.
type EnrollmentFilter struct {
	StudentID *int64
	CourseID  *int64
	ListParams
}

// Registration is one course a student is registered in, as shown on the student portal.
type Registration struct {
	StudentName    string  `db:"student_name" json:"StudentName"`
	CourseName     string  `db:"course_name" json:"CourseName"`
	Grade          *string `db:"grade" json:"Grade"`
	DepartmentName *string `db:"department_name" json:"DepartmentName,omitempty"`
}
