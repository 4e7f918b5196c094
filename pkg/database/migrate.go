package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is applied in order on every boot. Every statement is idempotent.
// Foreign keys are intentionally absent: departments, courses and students are soft references.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		code TEXT UNIQUE,
		head TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		established_year INTEGER,
		building TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE SEQUENCE IF NOT EXISTS students_id_seq`,
	`CREATE TABLE IF NOT EXISTS students (
		id BIGINT PRIMARY KEY DEFAULT nextval('students_id_seq'),
		student_name TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT UNIQUE,
		phone TEXT NOT NULL DEFAULT '',
		date_of_birth DATE,
		address TEXT NOT NULL DEFAULT '',
		emergency_contact TEXT NOT NULL DEFAULT '',
		emergency_phone TEXT NOT NULL DEFAULT '',
		profile_picture TEXT,
		enrollment_date DATE DEFAULT CURRENT_DATE,
		graduation_date DATE,
		status TEXT NOT NULL DEFAULT 'Active',
		department_id BIGINT,
		academic_year TEXT NOT NULL DEFAULT '',
		semester TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_students_department ON students (department_id)`,
	`CREATE TABLE IF NOT EXISTS teachers (
		id BIGSERIAL PRIMARY KEY,
		employee_id TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL DEFAULT '',
		date_of_birth DATE,
		hire_date DATE DEFAULT CURRENT_DATE,
		qualification TEXT NOT NULL DEFAULT '',
		specialization TEXT NOT NULL DEFAULT '',
		department_id BIGINT,
		position TEXT NOT NULL DEFAULT '',
		salary NUMERIC(12,2),
		status TEXT NOT NULL DEFAULT 'Active',
		profile_picture TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id BIGSERIAL PRIMARY KEY,
		course_code TEXT UNIQUE,
		course_name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		credits INTEGER NOT NULL DEFAULT 3,
		prerequisites TEXT NOT NULL DEFAULT '',
		department_id BIGINT,
		duration TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS enrollments (
		id BIGSERIAL PRIMARY KEY,
		student_id BIGINT NOT NULL,
		course_id BIGINT NOT NULL,
		teacher_id BIGINT,
		semester TEXT NOT NULL DEFAULT '',
		academic_year TEXT NOT NULL DEFAULT '',
		enrollment_date DATE DEFAULT CURRENT_DATE,
		status TEXT NOT NULL DEFAULT 'Enrolled',
		grade TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (student_id, course_id, semester, academic_year)
	)`,
	`CREATE TABLE IF NOT EXISTS assessments (
		id BIGSERIAL PRIMARY KEY,
		course_id BIGINT NOT NULL,
		assessment_type TEXT NOT NULL,
		assessment_name TEXT NOT NULL,
		max_points NUMERIC(8,2) NOT NULL,
		weight NUMERIC(6,2),
		due_date DATE,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assessments_course ON assessments (course_id)`,
	`CREATE TABLE IF NOT EXISTS grades (
		id BIGSERIAL PRIMARY KEY,
		student_id BIGINT NOT NULL,
		assessment_id BIGINT NOT NULL,
		points_earned NUMERIC(8,2) NOT NULL,
		letter_grade TEXT,
		grade_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		comments TEXT NOT NULL DEFAULT '',
		UNIQUE (student_id, assessment_id)
	)`,
	`CREATE TABLE IF NOT EXISTS student_credentials (
		student_id BIGINT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_login TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL CHECK (role IN ('admin', 'teacher')),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_login TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS revoked_tokens (
		jti TEXT PRIMARY KEY,
		subject TEXT NOT NULL DEFAULT '',
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS students_report (
		student_id BIGINT PRIMARY KEY,
		student_name TEXT NOT NULL,
		course1 TEXT NOT NULL,
		grade1 TEXT NOT NULL,
		course2 TEXT NOT NULL,
		grade2 TEXT NOT NULL,
		department TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS students_report_update (
		id BIGSERIAL PRIMARY KEY,
		student_id BIGINT NOT NULL,
		student_name TEXT NOT NULL,
		course TEXT NOT NULL,
		grade TEXT NOT NULL,
		department TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_students_report_update_student ON students_report_update (student_id)`,
}

// dropOrder lists every application table for Reset.
var dropOrder = []string{
	"revoked_tokens",
	"users",
	"student_credentials",
	"grades",
	"assessments",
	"enrollments",
	"courses",
	"teachers",
	"students",
	"departments",
	"students_report_update",
	"students_report",
}

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

// Reset drops every application table and the student id sequence.
func Reset(ctx context.Context, db *sqlx.DB) error {
	for _, table := range dropOrder {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	if _, err := db.ExecContext(ctx, "DROP SEQUENCE IF EXISTS students_id_seq"); err != nil {
		return fmt.Errorf("drop students_id_seq: %w", err)
	}
	return nil
}

// Ping reports whether the database answers.
func Ping(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database not configured")
	}
	return db.PingContext(ctx)
}
