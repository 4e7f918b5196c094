package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
	"github.com/Loggy-dot/Student-Management-system/pkg/export"
	"github.com/Loggy-dot/Student-Management-system/pkg/storage"
)

type exportStudentSource interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
}

type exportReportSource interface {
	ListReports(ctx context.Context, params models.ListParams) ([]models.ReportRow, int, error)
}

type exportDepartmentSource interface {
	List(ctx context.Context, params models.ListParams) ([]models.Department, int, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type renderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportSources groups the tables an export can read.
type ExportSources struct {
	Students    exportStudentSource
	Reports     exportReportSource
	Departments exportDepartmentSource
}

// ExportDownload is an opened export file ready to stream.
type ExportDownload struct {
	File        *os.File
	Filename    string
	ContentType string
}

// ExportService renders tables to CSV or PDF, stores them and hands out signed download links.
type ExportService struct {
	sources   ExportSources
	storage   fileStorage
	csv       renderer
	pdf       renderer
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(sources ExportSources, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		sources:   sources,
		storage:   files,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		signer:    signer,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		cfg:       cfg,
	}
}

// Generate renders the requested dataset, stores the file and returns a signed link to it.
func (s *ExportService) Generate(ctx context.Context, req dto.ExportRequest) (*models.ExportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "export")
	}

	dataset, err := s.buildDataset(ctx, req.Dataset)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch req.Format {
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset)
	}
	if err != nil {
		return nil, internalError(err, "failed to render export")
	}

	id := uuid.NewString()
	filename := fmt.Sprintf("%s_%s_%s.%s", req.Dataset, time.Now().UTC().Format("20060102_150405"), id[:8], req.Format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, internalError(err, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, internalError(err, "failed to sign export link")
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api"
	}

	s.metrics.RecordExport(string(req.Dataset), string(req.Format))
	s.logger.Info("export generated", zap.String("dataset", string(req.Dataset)), zap.String("format", string(req.Format)), zap.Int("rows", len(dataset.Rows)))

	return &models.ExportResult{
		Dataset:   req.Dataset,
		Format:    req.Format,
		Rows:      len(dataset.Rows),
		Token:     token,
		URL:       fmt.Sprintf("%s/exports/%s", prefix, token),
		ExpiresAt: expiresAt,
	}, nil
}

// Open validates a download token and opens the file it points at.
func (s *ExportService) Open(token string) (*ExportDownload, error) {
	obj, err := s.signer.Verify(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Forbidden("download link has expired")
		}
		return nil, appErrors.Forbidden("invalid download link")
	}
	file, err := s.storage.Open(obj.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.NotFound("export not found")
		}
		return nil, internalError(err, "failed to open export")
	}
	contentType := export.ContentTypeCSV
	if strings.EqualFold(filepath.Ext(obj.Path), ".pdf") {
		contentType = export.ContentTypePDF
	}
	return &ExportDownload{File: file, Filename: filepath.Base(obj.Path), ContentType: contentType}, nil
}

// Cleanup removes files older than ttl, or the configured result TTL when ttl <= 0.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildDataset(ctx context.Context, name models.ExportDataset) (export.Dataset, error) {
	switch name {
	case models.ExportDatasetStudents:
		rows, _, err := s.sources.Students.List(ctx, models.StudentFilter{})
		if err != nil {
			return export.Dataset{}, internalError(err, "failed to load students")
		}
		data := export.Dataset{
			Title:   "Students",
			Headers: []string{"StudentId", "StudentName", "Email", "Department", "Status", "AcademicYear", "Semester"},
		}
		for _, r := range rows {
			data.Rows = append(data.Rows, []string{
				strconv.FormatInt(r.ID, 10), r.StudentName, deref(r.Email), deref(r.DepartmentName), r.Status, r.AcademicYear, r.Semester,
			})
		}
		return data, nil
	case models.ExportDatasetStudentsReport:
		rows, _, err := s.sources.Reports.ListReports(ctx, models.ListParams{})
		if err != nil {
			return export.Dataset{}, internalError(err, "failed to load report rows")
		}
		data := export.Dataset{
			Title:   "Students Report",
			Headers: []string{"StudentId", "StudentName", "Course1", "Grade1", "Course2", "Grade2", "Department"},
		}
		for _, r := range rows {
			data.Rows = append(data.Rows, []string{
				strconv.FormatInt(r.StudentID, 10), r.StudentName, r.Course1, r.Grade1, r.Course2, r.Grade2, r.Department,
			})
		}
		return data, nil
	case models.ExportDatasetDepartments:
		rows, _, err := s.sources.Departments.List(ctx, models.ListParams{})
		if err != nil {
			return export.Dataset{}, internalError(err, "failed to load departments")
		}
		data := export.Dataset{
			Title:   "Departments",
			Headers: []string{"DepartmentId", "DepartmentName", "Code", "Head", "Building"},
		}
		for _, r := range rows {
			data.Rows = append(data.Rows, []string{
				strconv.FormatInt(r.ID, 10), r.Name, deref(r.Code), r.Head, r.Building,
			})
		}
		return data, nil
	}
	return export.Dataset{}, badRequest(fmt.Sprintf("unsupported dataset %s", name))
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
