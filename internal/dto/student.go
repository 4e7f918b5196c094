package dto

import "github.com/Loggy-dot/Student-Management-system/internal/models"

// StudentRequest is the create and full-replace payload for students. It binds from JSON or multipart form.
type StudentRequest struct {
	StudentID        int64  `json:"StudentId" form:"StudentId" validate:"omitempty,gt=0"`
	StudentName      string `json:"StudentName" form:"StudentName" validate:"max=200"`
	FirstName        string `json:"FirstName" form:"FirstName" validate:"max=100"`
	LastName         string `json:"LastName" form:"LastName" validate:"max=100"`
	Email            string `json:"Email" form:"Email" validate:"omitempty,email"`
	Phone            string `json:"Phone" form:"Phone"`
	DateOfBirth      string `json:"DateOfBirth" form:"DateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Address          string `json:"Address" form:"Address"`
	EmergencyContact string `json:"EmergencyContact" form:"EmergencyContact"`
	EmergencyPhone   string `json:"EmergencyPhone" form:"EmergencyPhone"`
	EnrollmentDate   string `json:"EnrollmentDate" form:"EnrollmentDate" validate:"omitempty,datetime=2006-01-02"`
	GraduationDate   string `json:"GraduationDate" form:"GraduationDate" validate:"omitempty,datetime=2006-01-02"`
	Status           string `json:"Status" form:"Status" validate:"omitempty,oneof=Active Inactive Graduated Suspended"`
	DepartmentID     *int64 `json:"DepartmentId" form:"DepartmentId"`
	AcademicYear     string `json:"AcademicYear" form:"AcademicYear"`
	Semester         string `json:"Semester" form:"Semester"`
	ProfilePicture   string `json:"-" form:"-"`
}

// StudentCreatedResponse is returned after a student and their portal login are provisioned.
type StudentCreatedResponse struct {
	ID          int64                       `json:"id"`
	StudentID   int64                       `json:"StudentId"`
	StudentName string                      `json:"StudentName"`
	Email       string                      `json:"Email"`
	Credentials models.GeneratedCredentials `json:"credentials"`
}

// CredentialRequest lets an admin provision a portal login by hand.
type CredentialRequest struct {
	StudentID int64  `json:"StudentId" validate:"required,gt=0"`
	Email     string `json:"Email" validate:"required,email"`
	Password  string `json:"Password" validate:"required,min=6"`
}
