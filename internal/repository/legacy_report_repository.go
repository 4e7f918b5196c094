package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

// LegacyReportRepository reads and writes the students_report and students_report_update tables.
type LegacyReportRepository struct {
	db *sqlx.DB
}

// NewLegacyReportRepository constructs a LegacyReportRepository.
func NewLegacyReportRepository(db *sqlx.DB) *LegacyReportRepository {
	return &LegacyReportRepository{db: db}
}

// ListReports returns report rows ordered by student name.
func (r *LegacyReportRepository) ListReports(ctx context.Context, params models.ListParams) ([]models.ReportRow, int, error) {
	query := paginate(`SELECT student_id, student_name, course1, grade1, course2, grade2, department
        FROM students_report ORDER BY student_name ASC, student_id ASC`, params)
	rows := make([]models.ReportRow, 0)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, 0, fmt.Errorf("list report rows: %w", err)
	}
	total, err := count(ctx, r.db, params, len(rows), "SELECT COUNT(*) FROM students_report")
	if err != nil {
		return nil, 0, fmt.Errorf("count report rows: %w", err)
	}
	return rows, total, nil
}

// ReportsByStudent returns the report rows of one student.
func (r *LegacyReportRepository) ReportsByStudent(ctx context.Context, studentID int64) ([]models.ReportRow, error) {
	const query = `SELECT student_id, student_name, course1, grade1, course2, grade2, department
        FROM students_report WHERE student_id = $1`
	rows := make([]models.ReportRow, 0)
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student report rows: %w", err)
	}
	return rows, nil
}

// CreateReport inserts a report row.
func (r *LegacyReportRepository) CreateReport(ctx context.Context, exec sqlx.ExtContext, row *models.ReportRow) error {
	const query = `INSERT INTO students_report (student_id, student_name, course1, grade1, course2, grade2, department)
        VALUES (:student_id, :student_name, :course1, :grade1, :course2, :grade2, :department)`
	if _, err := sqlx.NamedExecContext(ctx, pick(r.db, exec), query, row); err != nil {
		return writeError("create report row", err)
	}
	return nil
}

// UpdateReport replaces a report row and returns the rows changed.
func (r *LegacyReportRepository) UpdateReport(ctx context.Context, row *models.ReportRow) (int64, error) {
	const query = `UPDATE students_report SET student_name = :student_name, course1 = :course1, grade1 = :grade1,
        course2 = :course2, grade2 = :grade2, department = :department
        WHERE student_id = :student_id`
	res, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return 0, fmt.Errorf("update report row: %w", err)
	}
	return res.RowsAffected()
}

// DeleteReport removes a report row.
func (r *LegacyReportRepository) DeleteReport(ctx context.Context, studentID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students_report WHERE student_id = $1`, studentID)
	if err != nil {
		return 0, fmt.Errorf("delete report row: %w", err)
	}
	return res.RowsAffected()
}

// ListUpdates returns update rows ordered by student name.
func (r *LegacyReportRepository) ListUpdates(ctx context.Context, params models.ListParams) ([]models.ReportUpdateRow, int, error) {
	query := paginate(`SELECT id, student_id, student_name, course, grade, department
        FROM students_report_update ORDER BY student_name ASC, id ASC`, params)
	rows := make([]models.ReportUpdateRow, 0)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, 0, fmt.Errorf("list report updates: %w", err)
	}
	total, err := count(ctx, r.db, params, len(rows), "SELECT COUNT(*) FROM students_report_update")
	if err != nil {
		return nil, 0, fmt.Errorf("count report updates: %w", err)
	}
	return rows, total, nil
}

// UpdatesByStudent returns the update rows of one student in insertion order.
func (r *LegacyReportRepository) UpdatesByStudent(ctx context.Context, studentID int64) ([]models.ReportUpdateRow, error) {
	const query = `SELECT id, student_id, student_name, course, grade, department
        FROM students_report_update WHERE student_id = $1 ORDER BY id ASC`
	rows := make([]models.ReportUpdateRow, 0)
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student report updates: %w", err)
	}
	return rows, nil
}

// CreateUpdate inserts an update row and fills its id.
func (r *LegacyReportRepository) CreateUpdate(ctx context.Context, row *models.ReportUpdateRow) error {
	const query = `INSERT INTO students_report_update (student_id, student_name, course, grade, department)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.GetContext(ctx, &row.ID, query, row.StudentID, row.StudentName, row.Course, row.Grade, row.Department); err != nil {
		return fmt.Errorf("create report update: %w", err)
	}
	return nil
}

// DeleteUpdate removes an update row.
func (r *LegacyReportRepository) DeleteUpdate(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students_report_update WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete report update: %w", err)
	}
	return res.RowsAffected()
}
