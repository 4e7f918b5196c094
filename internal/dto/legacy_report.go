package dto

import "github.com/Loggy-dot/Student-Management-system/internal/models"

// ReportRowRequest is the payload for the two-slot legacy report.
type ReportRowRequest struct {
	StudentID   int64  `json:"StudentId" validate:"required,gt=0"`
	StudentName string `json:"StudentName" validate:"required"`
	Course1     string `json:"Course1" validate:"required"`
	Grade1      string `json:"Grade1" validate:"required"`
	Course2     string `json:"Course2" validate:"required"`
	Grade2      string `json:"Grade2" validate:"required"`
	Department  string `json:"Department" validate:"required"`
}

// ReportUpdateRowRequest is the payload for one legacy update row.
type ReportUpdateRowRequest struct {
	StudentID   int64  `json:"StudentId" validate:"required,gt=0"`
	StudentName string `json:"StudentName" validate:"required"`
	Course      string `json:"Course" validate:"required"`
	Grade       string `json:"Grade" validate:"required"`
	Department  string `json:"Department" validate:"required"`
}

// ReportRowCreatedResponse echoes the stored row with the provisioned login.
type ReportRowCreatedResponse struct {
	models.ReportRow
	DepartmentID int64                        `json:"DepartmentId"`
	Credentials  *models.GeneratedCredentials `json:"credentials,omitempty"`
}
