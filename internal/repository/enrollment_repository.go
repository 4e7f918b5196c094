package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns enrollments filtered by student or course.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error) {
	base := `FROM enrollments e
LEFT JOIN students s ON s.id = e.student_id
LEFT JOIN courses c ON c.id = e.course_id`
	var conditions []string
	var args []interface{}

	if filter.StudentID != nil {
		conditions = append(conditions, fmt.Sprintf("e.student_id = $%d", len(args)+1))
		args = append(args, *filter.StudentID)
	}
	if filter.CourseID != nil {
		conditions = append(conditions, fmt.Sprintf("e.course_id = $%d", len(args)+1))
		args = append(args, *filter.CourseID)
	}
	if len(conditions) > 0 {
		base += " WHERE " + strings.Join(conditions, " AND ")
	}

	query := paginate(fmt.Sprintf(`SELECT e.id, e.student_id, e.course_id, e.teacher_id, e.semester, e.academic_year,
        e.enrollment_date, e.status, e.grade, e.created_at,
        s.student_name, c.course_name, c.course_code
        %s ORDER BY e.academic_year ASC, e.semester ASC, e.id ASC`, base), filter.ListParams)
	enrollments := make([]models.EnrollmentDetail, 0)
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list enrollments: %w", err)
	}
	total, err := count(ctx, r.db, filter.ListParams, len(enrollments), "SELECT COUNT(*) "+base, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}
	return enrollments, total, nil
}

// Create registers a student in a course. The (student, course, semester, year) tuple is unique.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO enrollments (student_id, course_id, teacher_id, semester, academic_year, enrollment_date, status, grade, created_at)
        VALUES ($1, $2, $3, $4, $5, COALESCE($6, CURRENT_DATE), $7, $8, $9) RETURNING id`
	if err := r.db.GetContext(ctx, &enrollment.ID, query,
		enrollment.StudentID, enrollment.CourseID, enrollment.TeacherID, enrollment.Semester, enrollment.AcademicYear,
		enrollment.EnrollmentDate, enrollment.Status, enrollment.Grade, enrollment.CreatedAt,
	); err != nil {
		return writeError("create enrollment", err)
	}
	return nil
}

// Delete removes an enrollment.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete enrollment: %w", err)
	}
	return res.RowsAffected()
}

// Registrations lists the courses a student is registered in along with the registration grade.
// Enrollments whose course was deleted are skipped.
func (r *EnrollmentRepository) Registrations(ctx context.Context, studentID int64) ([]models.Registration, error) {
	const query = `SELECT s.student_name, c.course_name, e.grade, d.name AS department_name
        FROM enrollments e
        JOIN students s ON s.id = e.student_id
        JOIN courses c ON c.id = e.course_id
        LEFT JOIN departments d ON d.id = s.department_id
        WHERE e.student_id = $1
        ORDER BY e.academic_year ASC, e.semester ASC, e.id ASC`
	registrations := make([]models.Registration, 0)
	if err := r.db.SelectContext(ctx, &registrations, query, studentID); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return registrations, nil
}
