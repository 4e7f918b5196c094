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

type departmentRepository interface {
	List(ctx context.Context, params models.ListParams) ([]models.Department, int, error)
	FindByID(ctx context.Context, id int64) (*models.Department, error)
	Create(ctx context.Context, department *models.Department) error
	Update(ctx context.Context, department *models.Department) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// DepartmentService manages departments. The unpaged list is cached.
type DepartmentService struct {
	repo      departmentRepository
	validator *validator.Validate
	logger    *zap.Logger
	cache     *CacheService
}

// NewDepartmentService constructs the service.
func NewDepartmentService(repo departmentRepository, validate *validator.Validate, logger *zap.Logger, cache *CacheService) *DepartmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{repo: repo, validator: validate, logger: logger, cache: cache}
}

// List returns departments ordered by name.
func (s *DepartmentService) List(ctx context.Context, params models.ListParams) ([]models.Department, *models.Pagination, error) {
	params = params.Normalize()
	if !params.Paginated() {
		var cached []models.Department
		if s.cache.Fetch(ctx, departmentListKey, &cached) {
			return cached, nil, nil
		}
	}
	gen := s.cache.Generation()

	departments, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, nil, internalError(err, "failed to list departments")
	}
	if !params.Paginated() {
		s.cache.Fill(ctx, departmentListKey, departments, gen)
	}
	return departments, paginationFor(params, total), nil
}

// Get returns one department.
func (s *DepartmentService) Get(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("Department not found")
		}
		return nil, internalError(err, "failed to fetch department")
	}
	return department, nil
}

// Create adds a department.
func (s *DepartmentService) Create(ctx context.Context, req dto.DepartmentRequest) (*models.Department, error) {
	department, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, department); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError(err, "Department already exists")
		}
		return nil, internalError(err, "failed to create department")
	}
	s.invalidate(ctx)
	return department, nil
}

// Update replaces a department.
func (s *DepartmentService) Update(ctx context.Context, id int64, req dto.DepartmentRequest) (int64, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return 0, err
	}
	department, err := s.build(req)
	if err != nil {
		return 0, err
	}
	department.ID = id
	changes, err := s.repo.Update(ctx, department)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, conflictError(err, "Department already exists")
		}
		return 0, internalError(err, "failed to update department")
	}
	s.invalidate(ctx)
	return changes, nil
}

// Delete removes a department. Students keep their dangling department id.
func (s *DepartmentService) Delete(ctx context.Context, id int64) (int64, error) {
	changes, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, internalError(err, "failed to delete department")
	}
	s.invalidate(ctx)
	return changes, nil
}

func (s *DepartmentService) build(req dto.DepartmentRequest) (*models.Department, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "department")
	}
	var code *string
	if c := optionalString(req.Code); c != nil {
		upper := strings.ToUpper(*c)
		code = &upper
	}
	return &models.Department{
		Name:            strings.TrimSpace(req.Name),
		Code:            code,
		Head:            req.Head,
		Description:     req.Description,
		EstablishedYear: req.EstablishedYear,
		Building:        req.Building,
		Phone:           req.Phone,
		Email:           req.Email,
	}, nil
}

// invalidate drops the department list and every cached grades view, which embeds department names.
func (s *DepartmentService) invalidate(ctx context.Context) {
	s.cache.Forget(ctx, departmentListKey, everyStudentGrades)
}
