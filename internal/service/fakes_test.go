package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/repository"
)

func init() {
	passwordCost = bcrypt.MinCost
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(exec sqlx.ExtContext) error) error {
	f.calls++
	return fn(nil)
}

type memStudents struct {
	mu     sync.Mutex
	rows   map[int64]models.StudentDetail
	emails map[string]int64
	next   int64
	logins *memCredentials
}

func newMemStudents() *memStudents {
	return &memStudents{rows: map[int64]models.StudentDetail{}, emails: map[string]int64{}, next: 1000}
}

func (m *memStudents) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.StudentDetail, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	return out, len(out), nil
}

func (m *memStudents) ListWithDepartments(ctx context.Context) ([]models.StudentWithDepartment, error) {
	return nil, nil
}

func (m *memStudents) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

func (m *memStudents) Create(ctx context.Context, exec sqlx.ExtContext, student *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if student.ID == 0 {
		m.next++
		student.ID = m.next
	}
	if _, ok := m.rows[student.ID]; ok {
		return &repository.DuplicateError{Constraint: "students_pkey"}
	}
	if student.Email != nil {
		if _, ok := m.emails[*student.Email]; ok {
			return &repository.DuplicateError{Constraint: "students_email_key"}
		}
		m.emails[*student.Email] = student.ID
	}
	m.rows[student.ID] = models.StudentDetail{Student: *student}
	return nil
}

func (m *memStudents) InsertIfAbsent(ctx context.Context, exec sqlx.ExtContext, student *models.Student) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[student.ID]; ok {
		return false, nil
	}
	m.rows[student.ID] = models.StudentDetail{Student: *student}
	return true, nil
}

func (m *memStudents) Update(ctx context.Context, student *models.Student) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[student.ID]; !ok {
		return 0, nil
	}
	m.rows[student.ID] = models.StudentDetail{Student: *student}
	return 1, nil
}

func (m *memStudents) Delete(ctx context.Context, id int64) (int64, error) {
	m.mu.Lock()
	row, ok := m.rows[id]
	if ok {
		if row.Email != nil {
			delete(m.emails, *row.Email)
		}
		delete(m.rows, id)
	}
	m.mu.Unlock()
	if !ok {
		return 0, nil
	}
	if m.logins != nil {
		m.logins.deactivate(id)
	}
	return 1, nil
}

type memCredentials struct {
	mu       sync.Mutex
	students *memStudents
	rows     map[int64]models.StudentCredential
}

func newMemCredentials(students *memStudents) *memCredentials {
	m := &memCredentials{students: students, rows: map[int64]models.StudentCredential{}}
	if students != nil {
		students.logins = m
	}
	return m
}

func (m *memCredentials) deactivate(studentID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cred, ok := m.rows[studentID]; ok {
		cred.IsActive = false
		m.rows[studentID] = cred
	}
}

func (m *memCredentials) Create(ctx context.Context, exec sqlx.ExtContext, cred *models.StudentCredential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cred.Email = strings.ToLower(cred.Email)
	if _, ok := m.rows[cred.StudentID]; ok {
		return &repository.DuplicateError{Constraint: "student_credentials_pkey"}
	}
	for _, existing := range m.rows {
		if existing.Email == cred.Email {
			return &repository.DuplicateError{Constraint: "student_credentials_email_key"}
		}
	}
	m.rows[cred.StudentID] = *cred
	return nil
}

func (m *memCredentials) InsertIfAbsent(ctx context.Context, exec sqlx.ExtContext, cred *models.StudentCredential) (bool, error) {
	if err := m.Create(ctx, exec, cred); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *memCredentials) ReleaseOrphans(ctx context.Context, exec sqlx.ExtContext, studentID int64, email string) (int64, error) {
	email = strings.ToLower(email)
	var live map[int64]bool
	if m.students != nil {
		m.students.mu.Lock()
		live = make(map[int64]bool, len(m.students.rows))
		for id := range m.students.rows {
			live[id] = true
		}
		m.students.mu.Unlock()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var released int64
	for id, cred := range m.rows {
		if cred.IsActive || (id != studentID && cred.Email != email) {
			continue
		}
		if id != studentID && live[id] {
			continue
		}
		delete(m.rows, id)
		released++
	}
	return released, nil
}

func (m *memCredentials) FindAccountByEmail(ctx context.Context, email string) (*models.StudentAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, cred := range m.rows {
		if cred.Email != email {
			continue
		}
		account := &models.StudentAccount{StudentCredential: cred}
		if m.students != nil {
			if st, err := m.students.FindByID(ctx, cred.StudentID); err == nil {
				account.StudentName = st.StudentName
				account.FirstName = st.FirstName
				account.LastName = st.LastName
			}
		}
		return account, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memCredentials) FindByStudentID(ctx context.Context, studentID int64) (*models.StudentCredential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cred, ok := m.rows[studentID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &cred, nil
}

func (m *memCredentials) UpdatePassword(ctx context.Context, studentID int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cred := m.rows[studentID]
	cred.PasswordHash = hash
	m.rows[studentID] = cred
	return nil
}

func (m *memCredentials) TouchLastLogin(ctx context.Context, studentID int64) error {
	return nil
}

func (m *memCredentials) ActiveContacts(ctx context.Context) ([]models.StudentContact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.StudentContact, 0, len(m.rows))
	for _, cred := range m.rows {
		email := cred.Email
		out = append(out, models.StudentContact{StudentID: cred.StudentID, Email: &email})
	}
	return out, nil
}

type memUsers struct {
	mu     sync.Mutex
	rows   map[string]*models.User
	nextID int64
}

func newMemUsers() *memUsers {
	return &memUsers{rows: map[string]*models.User{}}
}

func (m *memUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.rows[strings.ToLower(username)]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memUsers) FindByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.ID == id {
			copied := *u
			return &copied, nil
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
	m.nextID++
	user.ID = m.nextID
	copied := *user
	m.rows[key] = &copied
	return true, nil
}

func (m *memUsers) UpdateLastLogin(ctx context.Context, id int64, ts time.Time) error {
	return nil
}

func (m *memUsers) UpdatePassword(ctx context.Context, id int64, passwordHash string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.ID == id {
			u.PasswordHash = passwordHash
		}
	}
	return nil
}

type memTokens struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMemTokens() *memTokens {
	return &memTokens{revoked: map[string]time.Time{}}
}

func (m *memTokens) Revoke(ctx context.Context, jti, subject string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = expiresAt
	return nil
}

func (m *memTokens) IsRevoked(ctx context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}
