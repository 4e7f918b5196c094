package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/repository"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

type enrollmentRepository interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) (int64, error)
	Registrations(ctx context.Context, studentID int64) ([]models.Registration, error)
}

// EnrollmentService registers students in courses.
type EnrollmentService struct {
	repo      enrollmentRepository
	validator *validator.Validate
	logger    *zap.Logger
	cache     *CacheService
}

// NewEnrollmentService constructs the service.
func NewEnrollmentService(repo enrollmentRepository, validate *validator.Validate, logger *zap.Logger, cache *CacheService) *EnrollmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, validator: validate, logger: logger, cache: cache}
}

// List returns enrollments, optionally narrowed to a student or course.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, *models.Pagination, error) {
	filter.ListParams = filter.ListParams.Normalize()
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list enrollments")
	}
	return rows, paginationFor(filter.ListParams, total), nil
}

// Registrations lists the courses a student is registered in with their grades. An unknown student yields an empty list.
func (s *EnrollmentService) Registrations(ctx context.Context, studentID int64) ([]models.Registration, error) {
	rows, err := s.repo.Registrations(ctx, studentID)
	if err != nil {
		return nil, internalError(err, "failed to list registrations")
	}
	return rows, nil
}

// Create registers a student in a course for a term.
func (s *EnrollmentService) Create(ctx context.Context, req dto.EnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "enrollment")
	}
	enrolled, err := parseDate(req.EnrollmentDate)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.EnrollmentStatusEnrolled
	}
	enrollment := &models.Enrollment{
		StudentID:      req.StudentID,
		CourseID:       req.CourseID,
		TeacherID:      req.TeacherID,
		Semester:       req.Semester,
		AcademicYear:   req.AcademicYear,
		EnrollmentDate: enrolled,
		Status:         status,
		Grade:          req.Grade,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict, "Student is already enrolled in this course for the term")
		}
		return nil, internalError(err, "failed to create enrollment")
	}
	s.cache.Forget(ctx, studentGradesKey(enrollment.StudentID))
	return enrollment, nil
}

// Delete removes an enrollment. The affected student's cached grades are dropped.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) (int64, error) {
	changes, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, internalError(err, "failed to delete enrollment")
	}
	if changes > 0 {
		s.cache.Forget(ctx, everyStudentGrades)
	}
	return changes, nil
}
