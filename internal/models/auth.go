package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds staff credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// StudentLoginRequest holds portal credentials.
type StudentLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserInfo describes the authenticated staff member in responses.
type UserInfo struct {
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
}

// LoginResponse returns the issued token for a staff login.
type LoginResponse struct {
	Success   bool     `json:"success"`
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expiresIn"`
	User      UserInfo `json:"user"`
}

// StudentInfo describes the authenticated student in responses.
type StudentInfo struct {
	StudentID      int64   `json:"StudentId"`
	StudentName    string  `json:"StudentName"`
	FirstName      string  `json:"FirstName"`
	LastName       string  `json:"LastName"`
	Email          string  `json:"Email"`
	DepartmentName *string `json:"DepartmentName"`
}

// StudentLoginResponse returns the issued token for a portal login.
type StudentLoginResponse struct {
	Success   bool        `json:"success"`
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expiresIn"`
	Student   StudentInfo `json:"student"`
}

// ChangePasswordRequest payload for updating the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// Identity is what an authenticated request knows about its caller.
type Identity struct {
	SubjectID string   `json:"subjectId"`
	Username  string   `json:"username,omitempty"`
	Email     string   `json:"email,omitempty"`
	Name      string   `json:"name"`
	Role      UserRole `json:"role"`
}

// JWTClaims represents the JWT payload for access tokens.
// UserID is the staff user id or, for students, the student id.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username,omitempty"`
	Email    string   `json:"email,omitempty"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Identity extracts the caller identity from the claims.
func (c *JWTClaims) Identity() Identity {
	return Identity{SubjectID: c.UserID, Username: c.Username, Email: c.Email, Name: c.Name, Role: c.Role}
}
