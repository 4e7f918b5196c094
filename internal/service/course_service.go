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

type courseRepository interface {
	List(ctx context.Context, params models.ListParams) ([]models.CourseDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.CourseDetail, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// CourseService manages the course catalogue.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
	cache     *CacheService
}

// NewCourseService constructs the service.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger, cache *CacheService) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger, cache: cache}
}

// List returns courses ordered by name.
func (s *CourseService) List(ctx context.Context, params models.ListParams) ([]models.CourseDetail, *models.Pagination, error) {
	params = params.Normalize()
	if !params.Paginated() {
		var cached []models.CourseDetail
		if s.cache.Fetch(ctx, courseListKey, &cached) {
			return cached, nil, nil
		}
	}
	gen := s.cache.Generation()

	courses, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, nil, internalError(err, "failed to list courses")
	}
	if !params.Paginated() {
		s.cache.Fill(ctx, courseListKey, courses, gen)
	}
	return courses, paginationFor(params, total), nil
}

// Get returns one course.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.CourseDetail, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("Course not found")
		}
		return nil, internalError(err, "failed to fetch course")
	}
	return course, nil
}

// Create adds a course. A missing department is accepted.
func (s *CourseService) Create(ctx context.Context, req dto.CourseRequest) (*models.Course, error) {
	course, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, course); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError(err, "Course already exists")
		}
		return nil, internalError(err, "failed to create course")
	}
	s.invalidate(ctx)
	return course, nil
}

// Update replaces a course.
func (s *CourseService) Update(ctx context.Context, id int64, req dto.CourseRequest) (int64, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return 0, err
	}
	course, err := s.build(req)
	if err != nil {
		return 0, err
	}
	course.ID = id
	changes, err := s.repo.Update(ctx, course)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, conflictError(err, "Course already exists")
		}
		return 0, internalError(err, "failed to update course")
	}
	s.invalidate(ctx)
	return changes, nil
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id int64) (int64, error) {
	changes, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, internalError(err, "failed to delete course")
	}
	s.invalidate(ctx)
	return changes, nil
}

func (s *CourseService) build(req dto.CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "course")
	}
	credits := models.DefaultCourseCredits
	if req.Credits != nil {
		credits = *req.Credits
	}
	status := req.Status
	if status == "" {
		status = "Active"
	}
	var code *string
	if c := optionalString(req.Code); c != nil {
		upper := strings.ToUpper(*c)
		code = &upper
	}
	return &models.Course{
		Code:          code,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Credits:       credits,
		Prerequisites: req.Prerequisites,
		DepartmentID:  req.DepartmentID,
		Duration:      req.Duration,
		Status:        status,
	}, nil
}

// invalidate drops the course list and grades views that embed course names.
func (s *CourseService) invalidate(ctx context.Context) {
	s.cache.Forget(ctx, courseListKey, everyStudentGrades)
}
