package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

type gradeRepository interface {
	Upsert(ctx context.Context, grade *models.Grade) error
	ListByStudent(ctx context.Context, studentID int64) ([]models.AssessmentGrade, error)
	Notice(ctx context.Context, studentID, assessmentID int64) (*models.GradeNotice, error)
}

type reportSource interface {
	ReportsByStudent(ctx context.Context, studentID int64) ([]models.ReportRow, error)
	UpdatesByStudent(ctx context.Context, studentID int64) ([]models.ReportUpdateRow, error)
}

type registrationSource interface {
	Registrations(ctx context.Context, studentID int64) ([]models.Registration, error)
}

// GradeService records assessment grades and serves the merged grade history.
type GradeService struct {
	grades        gradeRepository
	reports       reportSource
	registrations registrationSource
	validator     *validator.Validate
	logger        *zap.Logger
	cache         *CacheService
	notifications *NotificationService
}

// NewGradeService constructs the service.
func NewGradeService(grades gradeRepository, reports reportSource, registrations registrationSource, validate *validator.Validate, logger *zap.Logger, cache *CacheService, notifications *NotificationService) *GradeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{
		grades:        grades,
		reports:       reports,
		registrations: registrations,
		validator:     validate,
		logger:        logger,
		cache:         cache,
		notifications: notifications,
	}
}

// StudentGrades merges the legacy report, the update rows and course registrations for a student.
// Entries are not de-duplicated. NotFound is returned only when every source is empty.
func (s *GradeService) StudentGrades(ctx context.Context, studentID int64) (*models.StudentGrades, error) {
	key := studentGradesKey(studentID)
	var cached models.StudentGrades
	if s.cache.Fetch(ctx, key, &cached) {
		return &cached, nil
	}
	gen := s.cache.Generation()

	var (
		reports       []models.ReportRow
		updates       []models.ReportUpdateRow
		registrations []models.Registration
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		reports, err = s.reports.ReportsByStudent(gctx, studentID)
		return err
	})
	g.Go(func() (err error) {
		updates, err = s.reports.UpdatesByStudent(gctx, studentID)
		return err
	})
	g.Go(func() (err error) {
		registrations, err = s.registrations.Registrations(gctx, studentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, internalError(err, "failed to load grades")
	}

	result := mergeGrades(studentID, reports, updates, registrations)
	if len(result.Grades) == 0 {
		return nil, appErrors.NotFound("No grades found for this student")
	}
	s.cache.Fill(ctx, key, result, gen)
	return &result, nil
}

// AssessmentGrades lists a student's assessment grades, newest first.
func (s *GradeService) AssessmentGrades(ctx context.Context, studentID int64) ([]models.AssessmentGrade, error) {
	rows, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, internalError(err, "failed to list grades")
	}
	return rows, nil
}

// Upsert records a grade, replacing any earlier grade for the same student and assessment.
// A notification email is queued afterwards; its failure does not affect the result.
func (s *GradeService) Upsert(ctx context.Context, req dto.GradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "grade")
	}
	grade := &models.Grade{
		StudentID:    req.StudentID,
		AssessmentID: req.AssessmentID,
		PointsEarned: *req.PointsEarned,
		LetterGrade:  optionalPtr(req.LetterGrade),
		Comments:     req.Comments,
	}
	if err := s.grades.Upsert(ctx, grade); err != nil {
		return nil, internalError(err, "failed to save grade")
	}
	s.cache.Forget(ctx, studentGradesKey(grade.StudentID))
	s.notifyGrade(ctx, grade)
	return grade, nil
}

func (s *GradeService) notifyGrade(ctx context.Context, grade *models.Grade) {
	if s.notifications == nil {
		return
	}
	notice, err := s.grades.Notice(ctx, grade.StudentID, grade.AssessmentID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("failed to load grade notice", zap.Int64("student_id", grade.StudentID), zap.Error(err))
		}
		return
	}
	if notice.Email == nil {
		return
	}
	letter := ""
	if grade.LetterGrade != nil {
		letter = *grade.LetterGrade
	}
	s.notifications.Notify(models.Notification{
		Kind:        models.NotificationGradePosted,
		To:          *notice.Email,
		StudentName: notice.StudentName,
		CourseName:  notice.CourseName,
		Grade:       letter,
	})
}

func mergeGrades(studentID int64, reports []models.ReportRow, updates []models.ReportUpdateRow, registrations []models.Registration) models.StudentGrades {
	result := models.StudentGrades{StudentID: studentID, Grades: make([]models.GradeEntry, 0)}
	var names, departments []string

	for _, r := range reports {
		names = append(names, r.StudentName)
		departments = append(departments, r.Department)
		result.Grades = append(result.Grades,
			models.GradeEntry{Course: r.Course1, Grade: stringPtr(r.Grade1), Source: models.GradeSourceMainReport},
			models.GradeEntry{Course: r.Course2, Grade: stringPtr(r.Grade2), Source: models.GradeSourceMainReport},
		)
	}
	for _, u := range updates {
		names = append(names, u.StudentName)
		departments = append(departments, u.Department)
		result.Grades = append(result.Grades, models.GradeEntry{Course: u.Course, Grade: stringPtr(u.Grade), Source: models.GradeSourceUpdatedReport})
	}
	for _, r := range registrations {
		names = append(names, r.StudentName)
		if r.DepartmentName != nil {
			departments = append(departments, *r.DepartmentName)
		}
		result.Grades = append(result.Grades, models.GradeEntry{Course: r.CourseName, Grade: r.Grade, Source: models.GradeSourceRegistration})
	}

	result.StudentName = firstNonEmpty(names)
	result.Department = firstNonEmpty(departments)
	return result
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return models.UnknownValue
}

func stringPtr(v string) *string {
	return &v
}

func optionalPtr(v *string) *string {
	if v == nil {
		return nil
	}
	return optionalString(*v)
}
