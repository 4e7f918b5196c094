// Package seed loads the demo dataset: departments, the legacy report tables,
// students and their portal logins.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

// passwordCost is lowered by tests.
var passwordCost = bcrypt.DefaultCost

const (
	insertDepartment = `INSERT INTO departments (id, name, head) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`
	syncDepartmentID = `SELECT setval('departments_id_seq', (SELECT COALESCE(MAX(id), 1) FROM departments))`
	insertReport     = `INSERT INTO students_report (student_id, student_name, course1, grade1, course2, grade2, department)
		VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT DO NOTHING`
	insertUpdate = `INSERT INTO students_report_update (student_id, student_name, course, grade, department)
		SELECT $1, $2, $3, $4, $5
		WHERE NOT EXISTS (SELECT 1 FROM students_report_update WHERE student_id = $1 AND course = $3)`
	insertStudent = `INSERT INTO students (id, student_name, first_name, last_name, email, department_id)
		VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`
	insertCredential = `INSERT INTO student_credentials (student_id, email, password_hash, is_active)
		VALUES ($1, $2, $3, TRUE) ON CONFLICT DO NOTHING`
)

// Run inserts the demo rows that are missing. Existing rows are never modified, so it is safe on every boot.
func Run(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(models.DefaultStudentPassword), passwordCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, d := range departments {
		if _, err := tx.ExecContext(ctx, insertDepartment, d.id, d.name, d.head); err != nil {
			return fmt.Errorf("seed department %s: %w", d.name, err)
		}
	}
	if _, err := tx.ExecContext(ctx, syncDepartmentID); err != nil {
		return fmt.Errorf("sync department sequence: %w", err)
	}

	for _, r := range reportRows {
		if _, err := tx.ExecContext(ctx, insertReport, r.studentID, r.name, r.course1, r.grade1, r.course2, r.grade2, r.department); err != nil {
			return fmt.Errorf("seed report row %d: %w", r.studentID, err)
		}
	}
	for _, u := range reportUpdates {
		if _, err := tx.ExecContext(ctx, insertUpdate, u.studentID, u.name, u.course, u.grade, u.department); err != nil {
			return fmt.Errorf("seed report update %d: %w", u.studentID, err)
		}
	}

	emails := make(map[int64]string, len(credentials))
	for _, c := range credentials {
		emails[c.studentID] = c.email
	}
	for _, s := range students {
		first, last := splitName(s.name)
		var email *string
		if e, ok := emails[s.id]; ok {
			email = &e
		}
		if _, err := tx.ExecContext(ctx, insertStudent, s.id, s.name, first, last, email, s.departmentID); err != nil {
			return fmt.Errorf("seed student %d: %w", s.id, err)
		}
	}
	for _, c := range credentials {
		if _, err := tx.ExecContext(ctx, insertCredential, c.studentID, c.email, string(hashed)); err != nil {
			return fmt.Errorf("seed credential %d: %w", c.studentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	logger.Info("seed data ensured",
		zap.Int("departments", len(departments)),
		zap.Int("report_rows", len(reportRows)),
		zap.Int("report_updates", len(reportUpdates)),
		zap.Int("students", len(students)),
		zap.Int("credentials", len(credentials)),
	)
	return nil
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
