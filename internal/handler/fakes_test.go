package handler

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/repository"
)

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(exec sqlx.ExtContext) error) error {
	return fn(nil)
}

type memUsers struct {
	mu   sync.Mutex
	rows map[string]*models.User
}

func newMemUsers() *memUsers { return &memUsers{rows: map[string]*models.User{}} }

func (m *memUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.rows[strings.ToLower(username)]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memUsers) FindByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUsers) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(user.Username)
	if _, ok := m.rows[key]; ok {
		return false, nil
	}
	user.ID = int64(len(m.rows) + 1)
	cp := *user
	m.rows[key] = &cp
	return true, nil
}

func (m *memUsers) UpdateLastLogin(ctx context.Context, id int64, ts time.Time) error { return nil }

func (m *memUsers) UpdatePassword(ctx context.Context, id int64, passwordHash string, updatedAt time.Time) error {
	return nil
}

type memTokens struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (m *memTokens) Revoke(ctx context.Context, jti, subject string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = map[string]bool{}
	}
	m.revoked[jti] = true
	return nil
}

func (m *memTokens) IsRevoked(ctx context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[jti], nil
}

// memSchool holds the tables touched by the legacy report flow and student login.
type memSchool struct {
	mu          sync.Mutex
	departments map[string]int64
	reports     map[int64]models.ReportRow
	students    map[int64]models.Student
	credentials map[int64]models.StudentCredential
}

func newMemSchool() *memSchool {
	return &memSchool{
		departments: map[string]int64{},
		reports:     map[int64]models.ReportRow{},
		students:    map[int64]models.Student{},
		credentials: map[int64]models.StudentCredential{},
	}
}

func (m *memSchool) Ensure(ctx context.Context, exec sqlx.ExtContext, name, head string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.departments[name]; ok {
		return id, nil
	}
	id := int64(len(m.departments) + 1)
	m.departments[name] = id
	return id, nil
}

func (m *memSchool) ListReports(ctx context.Context, params models.ListParams) ([]models.ReportRow, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ReportRow, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, r)
	}
	return out, len(out), nil
}

func (m *memSchool) CreateReport(ctx context.Context, exec sqlx.ExtContext, row *models.ReportRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[row.StudentID]; ok {
		return &repository.DuplicateError{Constraint: "students_report_pkey"}
	}
	m.reports[row.StudentID] = *row
	return nil
}

func (m *memSchool) UpdateReport(ctx context.Context, row *models.ReportRow) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[row.StudentID]; !ok {
		return 0, nil
	}
	m.reports[row.StudentID] = *row
	return 1, nil
}

func (m *memSchool) DeleteReport(ctx context.Context, studentID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[studentID]; !ok {
		return 0, nil
	}
	delete(m.reports, studentID)
	return 1, nil
}

func (m *memSchool) ListUpdates(ctx context.Context, params models.ListParams) ([]models.ReportUpdateRow, int, error) {
	return []models.ReportUpdateRow{}, 0, nil
}

func (m *memSchool) CreateUpdate(ctx context.Context, row *models.ReportUpdateRow) error { return nil }

func (m *memSchool) DeleteUpdate(ctx context.Context, id int64) (int64, error) { return 0, nil }

func (m *memSchool) InsertIfAbsent(ctx context.Context, exec sqlx.ExtContext, student *models.Student) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[student.ID]; ok {
		return false, nil
	}
	m.students[student.ID] = *student
	return true, nil
}

func (m *memSchool) ReportsByStudent(ctx context.Context, studentID int64) ([]models.ReportRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.reports[studentID]; ok {
		return []models.ReportRow{row}, nil
	}
	return nil, nil
}

func (m *memSchool) UpdatesByStudent(ctx context.Context, studentID int64) ([]models.ReportUpdateRow, error) {
	return nil, nil
}

func (m *memSchool) Registrations(ctx context.Context, studentID int64) ([]models.Registration, error) {
	return nil, nil
}

// memLogins implements the credential side of memSchool.
type memLogins struct{ *memSchool }

func (m memLogins) InsertIfAbsent(ctx context.Context, exec sqlx.ExtContext, cred *models.StudentCredential) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.credentials[cred.StudentID]; ok {
		return false, nil
	}
	cred.Email = strings.ToLower(cred.Email)
	for _, existing := range m.credentials {
		if existing.Email == cred.Email {
			return false, nil
		}
	}
	m.credentials[cred.StudentID] = *cred
	return true, nil
}

func (m memLogins) ReleaseOrphans(ctx context.Context, exec sqlx.ExtContext, studentID int64, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var released int64
	for id, cred := range m.credentials {
		if cred.IsActive || (id != studentID && cred.Email != strings.ToLower(email)) {
			continue
		}
		if _, live := m.students[id]; live && id != studentID {
			continue
		}
		delete(m.credentials, id)
		released++
	}
	return released, nil
}

func (m memLogins) FindAccountByEmail(ctx context.Context, email string) (*models.StudentAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cred := range m.credentials {
		if cred.Email == strings.ToLower(strings.TrimSpace(email)) {
			student := m.students[cred.StudentID]
			return &models.StudentAccount{
				StudentCredential: cred,
				StudentName:       student.StudentName,
				FirstName:         student.FirstName,
				LastName:          student.LastName,
			}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m memLogins) FindByStudentID(ctx context.Context, studentID int64) (*models.StudentCredential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cred, ok := m.credentials[studentID]; ok {
		return &cred, nil
	}
	return nil, sql.ErrNoRows
}

func (m memLogins) UpdatePassword(ctx context.Context, studentID int64, hash string) error { return nil }

func (m memLogins) TouchLastLogin(ctx context.Context, studentID int64) error { return nil }
