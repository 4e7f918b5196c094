package models

import "time"

// StudentStatus values used by the enhanced student records.
const (
	StudentStatusActive    = "Active"
	StudentStatusInactive  = "Inactive"
	StudentStatusGraduated = "Graduated"
)

// Student represents a learner. IDs are caller supplied institutional numbers or generated.
type Student struct {
	ID               int64      `db:"id" json:"StudentId"`
	StudentName      string     `db:"student_name" json:"StudentName"`
	FirstName        string     `db:"first_name" json:"FirstName"`
	LastName         string     `db:"last_name" json:"LastName"`
	Email            *string    `db:"email" json:"Email"`
	Phone            string     `db:"phone" json:"Phone"`
	DateOfBirth      *time.Time `db:"date_of_birth" json:"DateOfBirth"`
	Address          string     `db:"address" json:"Address"`
	EmergencyContact string     `db:"emergency_contact" json:"EmergencyContact"`
	EmergencyPhone   string     `db:"emergency_phone" json:"EmergencyPhone"`
	ProfilePicture   *string    `db:"profile_picture" json:"ProfilePicture"`
	EnrollmentDate   *time.Time `db:"enrollment_date" json:"EnrollmentDate"`
	GraduationDate   *time.Time `db:"graduation_date" json:"GraduationDate"`
	Status           string     `db:"status" json:"Status"`
	DepartmentID     *int64     `db:"department_id" json:"DepartmentId"`
	AcademicYear     string     `db:"academic_year" json:"AcademicYear"`
	Semester         string     `db:"semester" json:"Semester"`
	CreatedAt        time.Time  `db:"created_at" json:"CreatedAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"UpdatedAt"`
}

// StudentDetail adds the joined department columns.
type StudentDetail struct {
	Student
	DepartmentName *string `db:"department_name" json:"DepartmentName"`
	DepartmentCode *string `db:"department_code" json:"DepartmentCode"`
}

// StudentWithDepartment is the flat roster row. DepartmentName is null when the department is gone.
type StudentWithDepartment struct {
	StudentID      int64   `db:"student_id" json:"StudentId"`
	StudentName    string  `db:"student_name" json:"StudentName"`
	DepartmentName *string `db:"department_name" json:"DepartmentName"`
	Head           *string `db:"head" json:"Head"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search       string
	DepartmentID *int64
	Status       string
	ListParams
}

// StudentContact is the minimum needed to address a notification.
type StudentContact struct {
	StudentID   int64   `db:"student_id"`
	StudentName string  `db:"student_name"`
	Email       *string `db:"email"`
}
