package models

import "time"

// DefaultStudentPassword is assigned to every auto-provisioned portal account.
const DefaultStudentPassword = "password123"

// StudentEmailDomain is appended to derived student emails.
const StudentEmailDomain = "student.edu"

// StudentCredential is the portal login for one student.
type StudentCredential struct {
	StudentID    int64      `db:"student_id" json:"StudentId"`
	Email        string     `db:"email" json:"Email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	IsActive     bool       `db:"is_active" json:"IsActive"`
	LastLogin    *time.Time `db:"last_login" json:"LastLogin,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"CreatedAt"`
}

// StudentAccount joins a credential with the student profile used in login responses.
type StudentAccount struct {
	StudentCredential
	StudentName    string  `db:"student_name"`
	FirstName      string  `db:"first_name"`
	LastName       string  `db:"last_name"`
	DepartmentName *string `db:"department_name"`
}

// GeneratedCredentials echoes a freshly provisioned login back to the caller.
type GeneratedCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
