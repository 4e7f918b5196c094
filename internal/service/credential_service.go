package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/repository"
)

// CredentialService lets administrators provision portal logins by hand.
type CredentialService struct {
	repo      credentialWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCredentialService constructs the service.
func NewCredentialService(repo credentialWriter, validate *validator.Validate, logger *zap.Logger) *CredentialService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CredentialService{repo: repo, validator: validate, logger: logger}
}

// Create stores a hashed login for a student. A taken email or an existing login is a conflict.
func (s *CredentialService) Create(ctx context.Context, req dto.CredentialRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "credential")
	}
	hashed, err := hashPassword(req.Password)
	if err != nil {
		return internalError(err, "failed to hash password")
	}
	cred := &models.StudentCredential{
		StudentID:    req.StudentID,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hashed,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, nil, cred); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return conflictError(err, "Credentials already exist for this student")
		}
		return internalError(err, "failed to create credentials")
	}
	s.logger.Info("student credentials created", zap.Int64("student_id", req.StudentID))
	return nil
}
