package models

import "time"

// ExportDataset names a table that can be exported.
type ExportDataset string

const (
	ExportDatasetStudents       ExportDataset = "students"
	ExportDatasetStudentsReport ExportDataset = "students-report"
	ExportDatasetDepartments    ExportDataset = "departments"
)

// ExportFormat is the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult describes a rendered file and its signed download link.
type ExportResult struct {
	Dataset   ExportDataset `json:"dataset"`
	Format    ExportFormat  `json:"format"`
	Rows      int           `json:"rows"`
	Token     string        `json:"token"`
	URL       string        `json:"url"`
	ExpiresAt time.Time     `json:"expiresAt"`
}
