package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Loggy-dot/Student-Management-system/api/swagger"
	"github.com/Loggy-dot/Student-Management-system/internal/handler"
	"github.com/Loggy-dot/Student-Management-system/internal/middleware"
	"github.com/Loggy-dot/Student-Management-system/internal/repository"
	"github.com/Loggy-dot/Student-Management-system/internal/seed"
	"github.com/Loggy-dot/Student-Management-system/internal/service"
	"github.com/Loggy-dot/Student-Management-system/pkg/cache"
	"github.com/Loggy-dot/Student-Management-system/pkg/config"
	"github.com/Loggy-dot/Student-Management-system/pkg/database"
	"github.com/Loggy-dot/Student-Management-system/pkg/logger"
	"github.com/Loggy-dot/Student-Management-system/pkg/mail"
	corsmiddleware "github.com/Loggy-dot/Student-Management-system/pkg/middleware/cors"
	reqidmiddleware "github.com/Loggy-dot/Student-Management-system/pkg/middleware/requestid"
	"github.com/Loggy-dot/Student-Management-system/pkg/storage"
)

// @title Student Management API
// @version 1.0.0
// @description Student records, grades and portal accounts
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const housekeepingInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	if cfg.CanReset() {
		logr.Warn("resetting database", zap.String("env", cfg.Env))
		if err := database.Reset(ctx, db); err != nil {
			return fmt.Errorf("reset database: %w", err)
		}
	}
	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	if cfg.SeedData {
		if err := seed.Run(ctx, db, logr); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer client.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(client, "student-api")
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cacheRepo != nil)

	uploadStore, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		return fmt.Errorf("prepare uploads: %w", err)
	}
	exportStore, err := storage.NewLocalStorage(cfg.Exports.Dir)
	if err != nil {
		return fmt.Errorf("prepare exports: %w", err)
	}

	var sender mail.Sender = mail.NewLogSender(logr)
	if cfg.SMTP.Host != "" && cfg.SMTP.User != "" {
		sender = mail.NewSMTPSender(cfg.SMTP)
	}

	txManager := repository.NewTxManager(db)
	studentRepo := repository.NewStudentRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	reportRepo := repository.NewLegacyReportRepository(db)

	notifications := service.NewNotificationService(sender, credentialRepo, nil, logr, metrics, cfg.Notifications)
	notifications.Start(ctx)
	defer notifications.Stop()

	authSvc := service.NewAuthService(userRepo, credentialRepo, tokenRepo, nil, logr, metrics, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})
	if err := authSvc.EnsureBootstrapAccounts(ctx, cfg.Bootstrap); err != nil {
		return fmt.Errorf("bootstrap accounts: %w", err)
	}

	studentSvc := service.NewStudentService(studentRepo, credentialRepo, txManager, nil, logr, cacheSvc, notifications)
	gradeSvc := service.NewGradeService(gradeRepo, reportRepo, enrollmentRepo, nil, logr, cacheSvc, notifications)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, nil, logr, cacheSvc)
	exportSvc := service.NewExportService(service.ExportSources{
		Students:    studentRepo,
		Reports:     reportRepo,
		Departments: departmentRepo,
	}, exportStore, storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL), service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, nil, logr, metrics)

	uploader := handler.NewUploader(uploadStore, cfg.Uploads.MaxBytes, cfg.Uploads.AllowedMIMEs, "/uploads")
	handlers := handler.Handlers{
		Health:        handler.NewHealthHandler(metrics, db),
		Auth:          handler.NewAuthHandler(authSvc),
		Students:      handler.NewStudentHandler(studentSvc, gradeSvc, enrollmentSvc, uploader),
		Departments:   handler.NewDepartmentHandler(service.NewDepartmentService(departmentRepo, nil, logr, cacheSvc)),
		Courses:       handler.NewCourseHandler(service.NewCourseService(courseRepo, nil, logr, cacheSvc), service.NewAssessmentService(assessmentRepo, nil, logr)),
		Teachers:      handler.NewTeacherHandler(service.NewTeacherService(teacherRepo, nil, logr), uploader),
		Enrollments:   handler.NewEnrollmentHandler(enrollmentSvc),
		Grades:        handler.NewGradeHandler(gradeSvc),
		Reports:       handler.NewLegacyReportHandler(service.NewLegacyReportService(reportRepo, departmentRepo, studentRepo, credentialRepo, txManager, nil, logr, cacheSvc)),
		Credentials:   handler.NewCredentialHandler(service.NewCredentialService(credentialRepo, nil, logr)),
		Exports:       handler.NewExportHandler(exportSvc),
		Notifications: handler.NewNotificationHandler(notifications),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.MaxMultipartMemory = cfg.Uploads.MaxBytes

	r.Static("/uploads", uploadStore.Dir())
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, authSvc)

	go housekeeping(ctx, logr, exportSvc, tokenRepo, cfg.Exports.SignedURLTTL)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type tokenPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// housekeeping removes stale export files and expired token revocations until ctx ends.
func housekeeping(ctx context.Context, logr *zap.Logger, exports *service.ExportService, tokens tokenPurger, exportTTL time.Duration) {
	ticker := time.NewTicker(housekeepingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed, err := exports.Cleanup(exportTTL); err != nil {
				logr.Warn("export cleanup failed", zap.Error(err))
			} else if len(removed) > 0 {
				logr.Info("export files removed", zap.Int("count", len(removed)))
			}
			if purged, err := tokens.PurgeExpired(ctx, now); err != nil {
				logr.Warn("token purge failed", zap.Error(err))
			} else if purged > 0 {
				logr.Info("expired revocations purged", zap.Int64("count", purged))
			}
		}
	}
}
