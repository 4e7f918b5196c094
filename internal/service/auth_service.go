package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/pkg/config"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

type authUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	CreateIfAbsent(ctx context.Context, user *models.User) (bool, error)
	UpdateLastLogin(ctx context.Context, id int64, ts time.Time) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string, updatedAt time.Time) error
}

type authCredentialRepository interface {
	FindAccountByEmail(ctx context.Context, email string) (*models.StudentAccount, error)
	FindByStudentID(ctx context.Context, studentID int64) (*models.StudentCredential, error)
	UpdatePassword(ctx context.Context, studentID int64, hash string) error
	TouchLastLogin(ctx context.Context, studentID int64) error
}

// compareHash is swapped by tests.
var compareHash = bcrypt.CompareHashAndPassword

var (
	placeholderOnce sync.Once
	placeholderHash []byte
)

// burnCompare does the bcrypt work of a real check so unknown accounts answer as slowly as known ones.
func burnCompare(password string) {
	placeholderOnce.Do(func() {
		placeholderHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-account"), passwordCost)
	})
	_ = compareHash(placeholderHash, []byte(password))
}

type tokenRevocationRepository interface {
	Revoke(ctx context.Context, jti, subject string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// AuthService authenticates staff and students and issues access tokens.
type AuthService struct {
	users       authUserRepository
	credentials authCredentialRepository
	tokens      tokenRevocationRepository
	validator   *validator.Validate
	logger      *zap.Logger
	metrics     *MetricsService
	config      AuthConfig
	now         func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, credentials authCredentialRepository, tokens tokenRevocationRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, cfg AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = 24 * time.Hour
	}
	return &AuthService{
		users:       users,
		credentials: credentials,
		tokens:      tokens,
		validator:   validate,
		logger:      logger,
		metrics:     metrics,
		config:      cfg,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Login authenticates an admin or teacher account.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "login")
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			burnCompare(req.Password)
			s.metrics.RecordLogin("staff", false)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, internalError(err, "failed to fetch user")
	}

	if err := compareHash([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.metrics.RecordLogin("staff", false)
		return nil, appErrors.ErrInvalidCredentials
	}
	if !user.Active {
		s.metrics.RecordLogin("staff", false)
		return nil, appErrors.ErrInactiveAccount
	}

	id := strconv.FormatInt(user.ID, 10)
	token, err := s.issueToken(models.JWTClaims{
		UserID:   id,
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
	}, "user:"+id)
	if err != nil {
		return nil, internalError(err, "failed to create access token")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn("failed to update last login", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	s.metrics.RecordLogin("staff", true)

	return &models.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: int64(s.config.Expiry.Seconds()),
		User: models.UserInfo{
			Username: user.Username,
			Name:     user.Name,
			Role:     user.Role,
		},
	}, nil
}

// StudentLogin authenticates a portal account by email.
func (s *AuthService) StudentLogin(ctx context.Context, req models.StudentLoginRequest) (*models.StudentLoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "login")
	}

	invalid := appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid email or password")
	account, err := s.credentials.FindAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			burnCompare(req.Password)
			s.metrics.RecordLogin("student", false)
			return nil, invalid
		}
		return nil, internalError(err, "failed to fetch student credentials")
	}

	if err := compareHash([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		s.metrics.RecordLogin("student", false)
		return nil, invalid
	}
	if !account.IsActive {
		s.metrics.RecordLogin("student", false)
		return nil, appErrors.ErrInactiveAccount
	}

	id := strconv.FormatInt(account.StudentID, 10)
	token, err := s.issueToken(models.JWTClaims{
		UserID: id,
		Email:  account.Email,
		Name:   account.StudentName,
		Role:   models.RoleStudent,
	}, "student:"+id)
	if err != nil {
		return nil, internalError(err, "failed to create access token")
	}

	if err := s.credentials.TouchLastLogin(ctx, account.StudentID); err != nil {
		s.logger.Warn("failed to update student last login", zap.Int64("student_id", account.StudentID), zap.Error(err))
	}
	s.metrics.RecordLogin("student", true)

	return &models.StudentLoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: int64(s.config.Expiry.Seconds()),
		Student: models.StudentInfo{
			StudentID:      account.StudentID,
			StudentName:    account.StudentName,
			FirstName:      account.FirstName,
			LastName:       account.LastName,
			Email:          account.Email,
			DepartmentName: account.DepartmentName,
		},
	}, nil
}

// ValidateToken parses and validates an access token, rejecting revoked ones.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized, "Invalid or expired token")
	}
	if !claims.Role.Valid() || claims.UserID == "" {
		return nil, appErrors.Unauthorized("Invalid or expired token")
	}

	if s.tokens != nil && claims.ID != "" {
		revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, internalError(err, "failed to check token revocation")
		}
		if revoked {
			return nil, appErrors.Unauthorized("Token has been revoked")
		}
	}
	return claims, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *models.JWTClaims) error {
	if claims == nil || claims.ID == "" || s.tokens == nil {
		return nil
	}
	expiresAt := s.now().Add(s.config.Expiry)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.tokens.Revoke(ctx, claims.ID, claims.Subject, expiresAt); err != nil {
		return internalError(err, "failed to revoke token")
	}
	return nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, identity models.Identity, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "change password")
	}
	id, err := strconv.ParseInt(identity.SubjectID, 10, 64)
	if err != nil {
		return appErrors.Unauthorized("Invalid or expired token")
	}

	var currentHash string
	if identity.Role == models.RoleStudent {
		cred, err := s.credentials.FindByStudentID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFound("credentials not found")
			}
			return internalError(err, "failed to fetch credentials")
		}
		currentHash = cred.PasswordHash
	} else {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFound("user not found")
			}
			return internalError(err, "failed to fetch user")
		}
		currentHash = user.PasswordHash
	}

	if err := compareHash([]byte(currentHash), []byte(req.CurrentPassword)); err != nil {
		return appErrors.Forbidden("current password does not match")
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return internalError(err, "failed to hash password")
	}

	if identity.Role == models.RoleStudent {
		err = s.credentials.UpdatePassword(ctx, id, hashed)
	} else {
		err = s.users.UpdatePassword(ctx, id, hashed, s.now())
	}
	if err != nil {
		return internalError(err, "failed to update password")
	}
	return nil
}

// EnsureBootstrapAccounts creates configured staff accounts that do not exist yet. Existing passwords are left alone.
func (s *AuthService) EnsureBootstrapAccounts(ctx context.Context, accounts []config.BootstrapAccount) error {
	for _, account := range accounts {
		role := models.UserRole(account.Role)
		if role != models.RoleAdmin && role != models.RoleTeacher {
			s.logger.Warn("skipping bootstrap account with unsupported role", zap.String("username", account.Username), zap.String("role", account.Role))
			continue
		}
		hashed, err := hashPassword(account.Password)
		if err != nil {
			return fmt.Errorf("hash bootstrap password for %s: %w", account.Username, err)
		}
		name := account.Name
		if name == "" {
			name = account.Username
		}
		created, err := s.users.CreateIfAbsent(ctx, &models.User{
			Username:     account.Username,
			PasswordHash: hashed,
			Name:         name,
			Role:         role,
			Active:       true,
		})
		if err != nil {
			return fmt.Errorf("create bootstrap account %s: %w", account.Username, err)
		}
		if created {
			s.logger.Info("bootstrap account created", zap.String("username", account.Username), zap.String("role", account.Role))
		}
	}
	return nil
}

func (s *AuthService) issueToken(claims models.JWTClaims, subject string) (string, error) {
	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.config.Issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}
