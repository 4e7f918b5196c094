package dto

import "github.com/Loggy-dot/Student-Management-system/internal/models"

// BroadcastRequest sends one message to many students. Without recipients every active portal account is used.
type BroadcastRequest struct {
	Subject    string   `json:"subject" validate:"required,max=200"`
	Message    string   `json:"message" validate:"required"`
	Recipients []string `json:"recipients" validate:"omitempty,dive,email"`
}

// BroadcastFailure names one recipient that could not be reached.
type BroadcastFailure struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// BroadcastResult summarises a bulk send.
type BroadcastResult struct {
	Requested int                `json:"requested"`
	Sent      int                `json:"sent"`
	Failed    []BroadcastFailure `json:"failed"`
}

// ExportRequest asks for a rendered table.
type ExportRequest struct {
	Dataset models.ExportDataset `json:"dataset" validate:"required,oneof=students students-report departments"`
	Format  models.ExportFormat  `json:"format" validate:"required,oneof=csv pdf"`
}
