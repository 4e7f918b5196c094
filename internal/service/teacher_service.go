package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/repository"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

const teacherStatusActive = "Active"

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.TeacherDetail, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// TeacherService provides business logic for teacher management.
type TeacherService struct {
	repo      teacherRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a teacher service.
func NewTeacherService(repo teacherRepository, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, validator: validate, logger: logger}
}

// List returns teachers. Only active teachers are listed unless a status is given; "all" lists everyone.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, *models.Pagination, error) {
	switch strings.ToLower(filter.Status) {
	case "":
		filter.Status = teacherStatusActive
	case "all":
		filter.Status = ""
	}
	filter.ListParams = filter.ListParams.Normalize()
	teachers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list teachers")
	}
	return teachers, paginationFor(filter.ListParams, total), nil
}

// Get returns one teacher.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.TeacherDetail, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("Teacher not found")
		}
		return nil, internalError(err, "failed to fetch teacher")
	}
	return teacher, nil
}

// Create adds a teacher.
func (s *TeacherService) Create(ctx context.Context, req dto.TeacherRequest) (*models.Teacher, error) {
	teacher, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError(err, "Teacher already exists")
		}
		return nil, internalError(err, "failed to create teacher")
	}
	s.logger.Info("teacher created", zap.Int64("teacher_id", teacher.ID), zap.String("employee_id", teacher.EmployeeID))
	return teacher, nil
}

// Update replaces a teacher. An omitted picture keeps the stored one.
func (s *TeacherService) Update(ctx context.Context, id int64, req dto.TeacherRequest) (int64, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	teacher, err := s.build(req)
	if err != nil {
		return 0, err
	}
	teacher.ID = id
	if teacher.ProfilePicture == nil {
		teacher.ProfilePicture = existing.ProfilePicture
	}
	if teacher.HireDate == nil {
		teacher.HireDate = existing.HireDate
	}
	changes, err := s.repo.Update(ctx, teacher)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, conflictError(err, "Teacher already exists")
		}
		return 0, internalError(err, "failed to update teacher")
	}
	return changes, nil
}

// Delete removes a teacher.
func (s *TeacherService) Delete(ctx context.Context, id int64) (int64, error) {
	changes, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, internalError(err, "failed to delete teacher")
	}
	return changes, nil
}

func (s *TeacherService) build(req dto.TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "teacher")
	}
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	hired, err := parseDate(req.HireDate)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = teacherStatusActive
	}
	return &models.Teacher{
		EmployeeID:     strings.TrimSpace(req.EmployeeID),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          req.Phone,
		DateOfBirth:    dob,
		HireDate:       hired,
		Qualification:  req.Qualification,
		Specialization: req.Specialization,
		DepartmentID:   req.DepartmentID,
		Position:       req.Position,
		Salary:         req.Salary,
		Status:         status,
		ProfilePicture: optionalString(req.ProfilePicture),
	}, nil
}
