package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

// CredentialRepository stores student portal logins.
type CredentialRepository struct {
	db *sqlx.DB
}

// NewCredentialRepository constructs a CredentialRepository.
func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create inserts a credential. A taken email or an existing login for the student is a duplicate.
func (r *CredentialRepository) Create(ctx context.Context, exec sqlx.ExtContext, cred *models.StudentCredential) error {
	cred.Email = strings.ToLower(cred.Email)
	cred.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO student_credentials (student_id, email, password_hash, is_active, created_at)
        VALUES (:student_id, :email, :password_hash, :is_active, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, pick(r.db, exec), query, cred); err != nil {
		return writeError("create credential", err)
	}
	return nil
}

// InsertIfAbsent inserts a credential unless the student already has one or the email is taken.
// Neither case is an error; the bool reports whether a row was written.
func (r *CredentialRepository) InsertIfAbsent(ctx context.Context, exec sqlx.ExtContext, cred *models.StudentCredential) (bool, error) {
	cred.Email = strings.ToLower(cred.Email)
	cred.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO student_credentials (student_id, email, password_hash, is_active, created_at)
        VALUES (:student_id, :email, :password_hash, :is_active, :created_at)
        ON CONFLICT DO NOTHING`
	res, err := sqlx.NamedExecContext(ctx, pick(r.db, exec), query, cred)
	if err != nil {
		return false, writeError("insert credential", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert credential rows: %w", err)
	}
	return affected > 0, nil
}

// ReleaseOrphans drops inactive credentials left behind by deleted students when they hold
// studentID or email. Call it only after inserting student studentID in the same transaction.
func (r *CredentialRepository) ReleaseOrphans(ctx context.Context, exec sqlx.ExtContext, studentID int64, email string) (int64, error) {
	const query = `DELETE FROM student_credentials c
        WHERE c.is_active = FALSE AND (c.student_id = $1 OR c.email = $2)
        AND NOT EXISTS (SELECT 1 FROM students s WHERE s.id = c.student_id AND s.id <> $1)`
	res, err := pick(r.db, exec).ExecContext(ctx, query, studentID, strings.ToLower(email))
	if err != nil {
		return 0, fmt.Errorf("release orphan credentials: %w", err)
	}
	return res.RowsAffected()
}

// FindAccountByEmail loads a credential with the profile fields used at login.
func (r *CredentialRepository) FindAccountByEmail(ctx context.Context, email string) (*models.StudentAccount, error) {
	const query = `SELECT sc.student_id, sc.email, sc.password_hash, sc.is_active, sc.last_login, sc.created_at,
        s.student_name, s.first_name, s.last_name, d.name AS department_name
        FROM student_credentials sc
        JOIN students s ON s.id = sc.student_id
        LEFT JOIN departments d ON d.id = s.department_id
        WHERE sc.email = $1`
	var account models.StudentAccount
	if err := r.db.GetContext(ctx, &account, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByStudentID loads the credential of a student.
func (r *CredentialRepository) FindByStudentID(ctx context.Context, studentID int64) (*models.StudentCredential, error) {
	const query = `SELECT student_id, email, password_hash, is_active, last_login, created_at
        FROM student_credentials WHERE student_id = $1`
	var cred models.StudentCredential
	if err := r.db.GetContext(ctx, &cred, query, studentID); err != nil {
		return nil, err
	}
	return &cred, nil
}

// UpdatePassword replaces the stored hash.
func (r *CredentialRepository) UpdatePassword(ctx context.Context, studentID int64, hash string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE student_credentials SET password_hash = $2 WHERE student_id = $1`, studentID, hash); err != nil {
		return fmt.Errorf("update credential password: %w", err)
	}
	return nil
}

// TouchLastLogin stamps a successful login.
func (r *CredentialRepository) TouchLastLogin(ctx context.Context, studentID int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE student_credentials SET last_login = $2 WHERE student_id = $1`, studentID, time.Now().UTC()); err != nil {
		return fmt.Errorf("update credential last login: %w", err)
	}
	return nil
}

// ActiveContacts lists every active portal account for bulk messages.
func (r *CredentialRepository) ActiveContacts(ctx context.Context) ([]models.StudentContact, error) {
	const query = `SELECT sc.student_id, s.student_name, sc.email
        FROM student_credentials sc
        JOIN students s ON s.id = sc.student_id
        WHERE sc.is_active
        ORDER BY s.student_name ASC, sc.student_id ASC`
	contacts := make([]models.StudentContact, 0)
	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, fmt.Errorf("list active contacts: %w", err)
	}
	return contacts, nil
}
