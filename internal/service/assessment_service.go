package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

type assessmentRepository interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.Assessment, error)
	Create(ctx context.Context, assessment *models.Assessment) error
}

// AssessmentService manages gradable units of courses.
type AssessmentService struct {
	repo      assessmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssessmentService constructs the service.
func NewAssessmentService(repo assessmentRepository, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{repo: repo, validator: validate, logger: logger}
}

// ListByCourse returns a course's assessments by due date.
func (s *AssessmentService) ListByCourse(ctx context.Context, courseID int64) ([]models.Assessment, error) {
	rows, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, internalError(err, "failed to list assessments")
	}
	return rows, nil
}

// Create adds an assessment. The course is not checked for existence.
func (s *AssessmentService) Create(ctx context.Context, req dto.AssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "assessment")
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	assessment := &models.Assessment{
		CourseID:    req.CourseID,
		Type:        strings.TrimSpace(req.Type),
		Name:        strings.TrimSpace(req.Name),
		MaxPoints:   req.MaxPoints,
		Weight:      req.Weight,
		DueDate:     due,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, internalError(err, "failed to create assessment")
	}
	return assessment, nil
}
