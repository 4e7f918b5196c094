package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/pkg/config"
	"github.com/Loggy-dot/Student-Management-system/pkg/jobs"
	"github.com/Loggy-dot/Student-Management-system/pkg/mail"
)

const emailLayout = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
{{template "content" .}}
<p>Best regards,<br>Academic Administration</p>
</div>`

var notificationTemplates = map[models.NotificationKind]*template.Template{
	models.NotificationWelcome: mustTemplate(`{{define "content"}}
<h2 style="color: #2563eb;">Welcome to Our Student Management System!</h2>
<p>Dear {{.StudentName}},</p>
<p>Your student account has been created successfully. Here are your login credentials:</p>
<div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
<p><strong>Email:</strong> {{.To}}</p>
<p><strong>Password:</strong> {{.Password}}</p>
</div>
<p>Please log in to the student portal to view your grades and academic information.</p>
<p><strong>Important:</strong> Please change your password after your first login for security.</p>
{{end}}`),
	models.NotificationGradePosted: mustTemplate(`{{define "content"}}
<h2 style="color: #2563eb;">Grade Notification</h2>
<p>Dear {{.StudentName}},</p>
<p>A new grade has been posted for your course:</p>
<div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
<p><strong>Course:</strong> {{.CourseName}}</p>
<p><strong>Grade:</strong> {{.Grade}}</p>
</div>
<p>Please log in to the student portal to view your complete academic record.</p>
{{end}}`),
	models.NotificationBroadcast: mustTemplate(`{{define "content"}}
<p>Dear {{if .StudentName}}{{.StudentName}}{{else}}Student{{end}},</p>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}{{end}}`),
}

var notificationSubjects = map[models.NotificationKind]string{
	models.NotificationWelcome:     "Welcome to Student Management System",
	models.NotificationGradePosted: "New Grade Posted",
}

func mustTemplate(content string) *template.Template {
	return template.Must(template.Must(template.New("layout").Parse(emailLayout)).Parse(content))
}

type contactRepository interface {
	ActiveContacts(ctx context.Context) ([]models.StudentContact, error)
}

// NotificationService queues student emails and delivers them from background workers.
// Failures are logged and counted; they never fail the write that triggered them.
type NotificationService struct {
	queue           *jobs.Queue[models.Notification]
	sender          mail.Sender
	contacts        contactRepository
	validator       *validator.Validate
	logger          *zap.Logger
	metrics         *MetricsService
	bulkConcurrency int
}

// NewNotificationService builds the service and its worker queue. Call Start before notifying.
func NewNotificationService(sender mail.Sender, contacts contactRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, cfg config.NotificationsConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if sender == nil {
		sender = mail.NewLogSender(logger)
	}
	if cfg.BulkConcurrency <= 0 {
		cfg.BulkConcurrency = 5
	}
	s := &NotificationService{
		sender:          sender,
		contacts:        contacts,
		validator:       validate,
		logger:          logger,
		metrics:         metrics,
		bulkConcurrency: cfg.BulkConcurrency,
	}
	s.queue = jobs.New("notifications", s.handle, jobs.Config{
		Workers:      cfg.Workers,
		BufferSize:   cfg.BufferSize,
		MaxRetries:   cfg.MaxRetries,
		RetryDelay:   cfg.RetryDelay,
		DrainTimeout: cfg.DrainTimeout,
		Logger:       logger,
	})
	return s
}

// Start launches the workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop delivers what is already queued, within the drain timeout, and halts the workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Notify queues a notification without blocking. A nil service or an empty recipient is a no-op.
func (s *NotificationService) Notify(n models.Notification) {
	if s == nil {
		return
	}
	if strings.TrimSpace(n.To) == "" {
		s.logger.Debug("notification skipped, no recipient", zap.String("kind", string(n.Kind)))
		return
	}
	if _, err := s.queue.Offer(n); err != nil {
		s.metrics.RecordNotification(string(n.Kind), false)
		s.logger.Warn("notification dropped", zap.String("kind", string(n.Kind)), zap.String("to", n.To), zap.Error(err))
	}
}

func (s *NotificationService) handle(ctx context.Context, job jobs.Job[models.Notification]) error {
	n := job.Payload
	msg, err := renderNotification(n)
	if err != nil {
		s.logger.Error("render notification", zap.String("kind", string(n.Kind)), zap.Error(err))
		return nil
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.metrics.RecordNotification(string(n.Kind), false)
		return fmt.Errorf("send %s to %s: %w", n.Kind, n.To, err)
	}
	s.metrics.RecordNotification(string(n.Kind), true)
	s.logger.Info("notification sent", zap.String("kind", string(n.Kind)), zap.String("to", n.To))
	return nil
}

// Broadcast sends one message to the given recipients, or to every active portal account.
func (s *NotificationService) Broadcast(ctx context.Context, req dto.BroadcastRequest) (*dto.BroadcastResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "broadcast")
	}

	recipients := make([]models.Notification, 0, len(req.Recipients))
	if len(req.Recipients) > 0 {
		seen := make(map[string]struct{}, len(req.Recipients))
		for _, to := range req.Recipients {
			to = strings.ToLower(strings.TrimSpace(to))
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			recipients = append(recipients, models.Notification{Kind: models.NotificationBroadcast, To: to})
		}
	} else {
		if s.contacts == nil {
			return nil, badRequest("recipients are required")
		}
		contacts, err := s.contacts.ActiveContacts(ctx)
		if err != nil {
			return nil, internalError(err, "failed to list recipients")
		}
		for _, c := range contacts {
			if c.Email == nil || *c.Email == "" {
				continue
			}
			recipients = append(recipients, models.Notification{Kind: models.NotificationBroadcast, To: *c.Email, StudentName: c.StudentName})
		}
	}

	msgs := make([]mail.Message, 0, len(recipients))
	for _, n := range recipients {
		n.Subject = req.Subject
		n.Body = req.Message
		msg, err := renderNotification(n)
		if err != nil {
			return nil, internalError(err, "failed to render broadcast")
		}
		msgs = append(msgs, msg)
	}

	failures := mail.SendBulk(ctx, s.sender, msgs, s.bulkConcurrency)
	result := &dto.BroadcastResult{
		Requested: len(msgs),
		Sent:      len(msgs) - len(failures),
		Failed:    make([]dto.BroadcastFailure, 0, len(failures)),
	}
	for _, f := range failures {
		result.Failed = append(result.Failed, dto.BroadcastFailure{Email: f.To, Error: f.Err.Error()})
		s.metrics.RecordNotification(string(models.NotificationBroadcast), false)
	}
	for i := 0; i < result.Sent; i++ {
		s.metrics.RecordNotification(string(models.NotificationBroadcast), true)
	}
	s.logger.Info("broadcast finished", zap.Int("requested", result.Requested), zap.Int("failed", len(failures)))
	return result, nil
}

type notificationView struct {
	models.Notification
	Paragraphs []string
}

func renderNotification(n models.Notification) (mail.Message, error) {
	tmpl, ok := notificationTemplates[n.Kind]
	if !ok {
		return mail.Message{}, fmt.Errorf("no template for notification kind %q", n.Kind)
	}
	subject := n.Subject
	if subject == "" {
		subject = notificationSubjects[n.Kind]
	}
	if n.Kind == models.NotificationGradePosted && n.Grade == "" {
		n.Grade = "Pending"
	}

	view := notificationView{Notification: n}
	for _, p := range strings.Split(n.Body, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			view.Paragraphs = append(view.Paragraphs, p)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", view); err != nil {
		return mail.Message{}, err
	}
	return mail.Message{To: n.To, Subject: subject, HTML: buf.String()}, nil
}
