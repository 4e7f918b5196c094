package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/repository"
)

type legacyReportRepository interface {
	ListReports(ctx context.Context, params models.ListParams) ([]models.ReportRow, int, error)
	CreateReport(ctx context.Context, exec sqlx.ExtContext, row *models.ReportRow) error
	UpdateReport(ctx context.Context, row *models.ReportRow) (int64, error)
	DeleteReport(ctx context.Context, studentID int64) (int64, error)
	ListUpdates(ctx context.Context, params models.ListParams) ([]models.ReportUpdateRow, int, error)
	CreateUpdate(ctx context.Context, row *models.ReportUpdateRow) error
	DeleteUpdate(ctx context.Context, id int64) (int64, error)
}

type departmentEnsurer interface {
	Ensure(ctx context.Context, exec sqlx.ExtContext, name, head string) (int64, error)
}

type studentInserter interface {
	InsertIfAbsent(ctx context.Context, exec sqlx.ExtContext, student *models.Student) (bool, error)
}

type credentialInserter interface {
	InsertIfAbsent(ctx context.Context, exec sqlx.ExtContext, cred *models.StudentCredential) (bool, error)
	ReleaseOrphans(ctx context.Context, exec sqlx.ExtContext, studentID int64, email string) (int64, error)
}

// LegacyReportService maintains the two-slot students_report table and its update rows.
type LegacyReportService struct {
	reports     legacyReportRepository
	departments departmentEnsurer
	students    studentInserter
	credentials credentialInserter
	tx          txRunner
	validator   *validator.Validate
	logger      *zap.Logger
	cache       *CacheService
}

// NewLegacyReportService constructs the service.
func NewLegacyReportService(reports legacyReportRepository, departments departmentEnsurer, students studentInserter, credentials credentialInserter, tx txRunner, validate *validator.Validate, logger *zap.Logger, cache *CacheService) *LegacyReportService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LegacyReportService{
		reports:     reports,
		departments: departments,
		students:    students,
		credentials: credentials,
		tx:          tx,
		validator:   validate,
		logger:      logger,
		cache:       cache,
	}
}

// ListReports returns report rows ordered by student name.
func (s *LegacyReportService) ListReports(ctx context.Context, params models.ListParams) ([]models.ReportRow, *models.Pagination, error) {
	params = params.Normalize()
	rows, total, err := s.reports.ListReports(ctx, params)
	if err != nil {
		return nil, nil, internalError(err, "failed to list report rows")
	}
	return rows, paginationFor(params, total), nil
}

// CreateReport stores a report row and, in the same transaction, makes sure the department,
// the student and the student's portal login exist. A login whose derived email already
// belongs to someone else is skipped. Any failure leaves nothing behind.
func (s *LegacyReportService) CreateReport(ctx context.Context, req dto.ReportRowRequest) (*dto.ReportRowCreatedResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "report")
	}
	row := reportRowFrom(req)
	email := deriveStudentEmail(row.StudentName)

	hashed, err := hashPassword(models.DefaultStudentPassword)
	if err != nil {
		return nil, internalError(err, "failed to hash password")
	}

	var (
		departmentID int64
		provisioned  bool
	)
	err = s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		var err error
		departmentID, err = s.departments.Ensure(ctx, exec, row.Department, models.DefaultDepartmentHead)
		if err != nil {
			return err
		}
		if err := s.reports.CreateReport(ctx, exec, row); err != nil {
			return err
		}
		first, last := splitName(row.StudentName)
		inserted, err := s.students.InsertIfAbsent(ctx, exec, &models.Student{
			ID:           row.StudentID,
			StudentName:  row.StudentName,
			FirstName:    first,
			LastName:     last,
			DepartmentID: &departmentID,
		})
		if err != nil {
			return err
		}
		if inserted {
			if _, err := s.credentials.ReleaseOrphans(ctx, exec, row.StudentID, email); err != nil {
				return err
			}
		}
		provisioned, err = s.credentials.InsertIfAbsent(ctx, exec, &models.StudentCredential{
			StudentID:    row.StudentID,
			Email:        email,
			PasswordHash: hashed,
			IsActive:     true,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError(err, "Report row already exists for this student")
		}
		return nil, internalError(err, "failed to create report row")
	}

	s.invalidate(ctx, row.StudentID)
	resp := &dto.ReportRowCreatedResponse{ReportRow: *row, DepartmentID: departmentID}
	if provisioned {
		resp.Credentials = &models.GeneratedCredentials{Email: email, Password: models.DefaultStudentPassword}
	}
	s.logger.Info("report row created", zap.Int64("student_id", row.StudentID), zap.Bool("credentials_created", provisioned))
	return resp, nil
}

// UpdateReport replaces the report row of a student.
func (s *LegacyReportService) UpdateReport(ctx context.Context, studentID int64, req dto.ReportRowRequest) (int64, error) {
	req.StudentID = studentID
	if err := s.validator.Struct(req); err != nil {
		return 0, validationError(err, "report")
	}
	changes, err := s.reports.UpdateReport(ctx, reportRowFrom(req))
	if err != nil {
		return 0, internalError(err, "failed to update report row")
	}
	s.invalidate(ctx, studentID)
	return changes, nil
}

// DeleteReport removes the report row of a student.
func (s *LegacyReportService) DeleteReport(ctx context.Context, studentID int64) (int64, error) {
	changes, err := s.reports.DeleteReport(ctx, studentID)
	if err != nil {
		return 0, internalError(err, "failed to delete report row")
	}
	s.invalidate(ctx, studentID)
	return changes, nil
}

// ListUpdates returns update rows ordered by student name.
func (s *LegacyReportService) ListUpdates(ctx context.Context, params models.ListParams) ([]models.ReportUpdateRow, *models.Pagination, error) {
	params = params.Normalize()
	rows, total, err := s.reports.ListUpdates(ctx, params)
	if err != nil {
		return nil, nil, internalError(err, "failed to list report updates")
	}
	return rows, paginationFor(params, total), nil
}

// CreateUpdate appends an update row. Rows for the same course are kept side by side.
func (s *LegacyReportService) CreateUpdate(ctx context.Context, req dto.ReportUpdateRowRequest) (*models.ReportUpdateRow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "report update")
	}
	row := &models.ReportUpdateRow{
		StudentID:   req.StudentID,
		StudentName: strings.TrimSpace(req.StudentName),
		Course:      strings.TrimSpace(req.Course),
		Grade:       strings.TrimSpace(req.Grade),
		Department:  strings.TrimSpace(req.Department),
	}
	if err := s.reports.CreateUpdate(ctx, row); err != nil {
		return nil, internalError(err, "failed to create report update")
	}
	s.invalidate(ctx, row.StudentID)
	return row, nil
}

// DeleteUpdate removes one update row.
func (s *LegacyReportService) DeleteUpdate(ctx context.Context, id int64) (int64, error) {
	changes, err := s.reports.DeleteUpdate(ctx, id)
	if err != nil {
		return 0, internalError(err, "failed to delete report update")
	}
	if changes > 0 {
		s.cache.Forget(ctx, everyStudentGrades)
	}
	return changes, nil
}

func (s *LegacyReportService) invalidate(ctx context.Context, studentID int64) {
	s.cache.Forget(ctx, studentGradesKey(studentID))
}

func reportRowFrom(req dto.ReportRowRequest) *models.ReportRow {
	return &models.ReportRow{
		StudentID:   req.StudentID,
		StudentName: strings.TrimSpace(req.StudentName),
		Course1:     strings.TrimSpace(req.Course1),
		Grade1:      strings.TrimSpace(req.Grade1),
		Course2:     strings.TrimSpace(req.Course2),
		Grade2:      strings.TrimSpace(req.Grade2),
		Department:  strings.TrimSpace(req.Department),
	}
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
