package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/repository"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	ListWithDepartments(ctx context.Context) ([]models.StudentWithDepartment, error)
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
	Create(ctx context.Context, exec sqlx.ExtContext, student *models.Student) error
	Update(ctx context.Context, student *models.Student) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type credentialWriter interface {
	Create(ctx context.Context, exec sqlx.ExtContext, cred *models.StudentCredential) error
	ReleaseOrphans(ctx context.Context, exec sqlx.ExtContext, studentID int64, email string) (int64, error)
}

type txRunner interface {
	WithinTx(ctx context.Context, fn func(exec sqlx.ExtContext) error) error
}

// StudentService handles student profiles and the portal login provisioned with them.
type StudentService struct {
	students      studentRepository
	credentials   credentialWriter
	tx            txRunner
	validator     *validator.Validate
	logger        *zap.Logger
	cache         *CacheService
	notifications *NotificationService
}

// NewStudentService creates a new student service.
func NewStudentService(students studentRepository, credentials credentialWriter, tx txRunner, validate *validator.Validate, logger *zap.Logger, cache *CacheService, notifications *NotificationService) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		students:      students,
		credentials:   credentials,
		tx:            tx,
		validator:     validate,
		logger:        logger,
		cache:         cache,
		notifications: notifications,
	}
}

// List returns students. Pagination is nil unless a page was requested.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	filter.ListParams = filter.ListParams.Normalize()
	students, total, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list students")
	}
	return students, paginationFor(filter.ListParams, total), nil
}

// ListWithDepartments returns the flat student/department roster.
func (s *StudentService) ListWithDepartments(ctx context.Context) ([]models.StudentWithDepartment, error) {
	rows, err := s.students.ListWithDepartments(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list students with departments")
	}
	return rows, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("Student not found")
		}
		return nil, internalError(err, "failed to fetch student")
	}
	return student, nil
}

// Create stores a student and its default portal login in one transaction, then queues a welcome email.
func (s *StudentService) Create(ctx context.Context, req dto.StudentRequest) (*dto.StudentCreatedResponse, error) {
	student, err := s.buildStudent(req)
	if err != nil {
		return nil, err
	}
	if student.Email == nil {
		derived := deriveStudentEmail(student.StudentName)
		student.Email = &derived
	}

	hashed, err := hashPassword(models.DefaultStudentPassword)
	if err != nil {
		return nil, internalError(err, "failed to hash password")
	}

	err = s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		if err := s.students.Create(ctx, exec, student); err != nil {
			return err
		}
		if _, err := s.credentials.ReleaseOrphans(ctx, exec, student.ID, *student.Email); err != nil {
			return err
		}
		return s.credentials.Create(ctx, exec, &models.StudentCredential{
			StudentID:    student.ID,
			Email:        *student.Email,
			PasswordHash: hashed,
			IsActive:     true,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError(err, "Student already exists")
		}
		return nil, internalError(err, "failed to create student")
	}

	s.logger.Info("student created", zap.Int64("student_id", student.ID))
	s.notifications.Notify(models.Notification{
		Kind:        models.NotificationWelcome,
		To:          *student.Email,
		StudentName: student.StudentName,
		Password:    models.DefaultStudentPassword,
	})

	return &dto.StudentCreatedResponse{
		ID:          student.ID,
		StudentID:   student.ID,
		StudentName: student.StudentName,
		Email:       *student.Email,
		Credentials: models.GeneratedCredentials{Email: *student.Email, Password: models.DefaultStudentPassword},
	}, nil
}

// Update replaces a student's profile. An omitted picture or email keeps the stored value.
func (s *StudentService) Update(ctx context.Context, id int64, req dto.StudentRequest) (int64, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	student, err := s.buildStudent(req)
	if err != nil {
		return 0, err
	}
	student.ID = id
	if student.Email == nil {
		student.Email = existing.Email
	}
	if student.ProfilePicture == nil {
		student.ProfilePicture = existing.ProfilePicture
	}
	if student.EnrollmentDate == nil {
		student.EnrollmentDate = existing.EnrollmentDate
	}

	changes, err := s.students.Update(ctx, student)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, conflictError(err, "Student already exists")
		}
		return 0, internalError(err, "failed to update student")
	}
	s.invalidateGrades(ctx, id)
	return changes, nil
}

// Delete removes a student. Zero changes is not an error.
func (s *StudentService) Delete(ctx context.Context, id int64) (int64, error) {
	changes, err := s.students.Delete(ctx, id)
	if err != nil {
		return 0, internalError(err, "failed to delete student")
	}
	s.invalidateGrades(ctx, id)
	return changes, nil
}

func (s *StudentService) buildStudent(req dto.StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "student")
	}

	name := strings.TrimSpace(req.StudentName)
	if name == "" {
		name = strings.TrimSpace(strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName))
	}
	if name == "" {
		return nil, badRequest("StudentName or FirstName and LastName are required")
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	enrolled, err := parseDate(req.EnrollmentDate)
	if err != nil {
		return nil, err
	}
	graduated, err := parseDate(req.GraduationDate)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StudentStatusActive
	}

	var email *string
	if e := optionalString(req.Email); e != nil {
		lowered := strings.ToLower(*e)
		email = &lowered
	}

	return &models.Student{
		ID:               req.StudentID,
		StudentName:      name,
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            email,
		Phone:            req.Phone,
		DateOfBirth:      dob,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		ProfilePicture:   optionalString(req.ProfilePicture),
		EnrollmentDate:   enrolled,
		GraduationDate:   graduated,
		Status:           status,
		DepartmentID:     req.DepartmentID,
		AcademicYear:     req.AcademicYear,
		Semester:         req.Semester,
	}, nil
}

func (s *StudentService) invalidateGrades(ctx context.Context, id int64) {
	s.cache.Forget(ctx, studentGradesKey(id))
}
