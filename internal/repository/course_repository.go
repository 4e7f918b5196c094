package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

const courseColumns = `c.id, c.course_code, c.course_name, c.description, c.credits, c.prerequisites, c.department_id,
        c.duration, c.status, c.created_at, c.updated_at`

// CourseRepository manages courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses ordered by name.
func (r *CourseRepository) List(ctx context.Context, params models.ListParams) ([]models.CourseDetail, int, error) {
	query := paginate(fmt.Sprintf(`SELECT %s, d.name AS department_name
        FROM courses c
        LEFT JOIN departments d ON d.id = c.department_id
        ORDER BY c.course_name ASC, c.id ASC`, courseColumns), params)
	courses := make([]models.CourseDetail, 0)
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	total, err := count(ctx, r.db, params, len(courses), "SELECT COUNT(*) FROM courses")
	if err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// FindByID fetches a course with department name.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.CourseDetail, error) {
	query := fmt.Sprintf(`SELECT %s, d.name AS department_name
        FROM courses c
        LEFT JOIN departments d ON d.id = c.department_id
        WHERE c.id = $1`, courseColumns)
	var course models.CourseDetail
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	const query = `INSERT INTO courses (course_code, course_name, description, credits, prerequisites, department_id, duration, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if err := r.db.GetContext(ctx, &course.ID, query,
		course.Code, course.Name, course.Description, course.Credits, course.Prerequisites, course.DepartmentID,
		course.Duration, course.Status, course.CreatedAt, course.UpdatedAt,
	); err != nil {
		return writeError("create course", err)
	}
	return nil
}

// Update replaces a course row and returns the rows changed.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) (int64, error) {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET course_code = :course_code, course_name = :course_name, description = :description,
        credits = :credits, prerequisites = :prerequisites, department_id = :department_id, duration = :duration,
        status = :status, updated_at = :updated_at
        WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return 0, writeError("update course", err)
	}
	return res.RowsAffected()
}

// Delete removes a course. Assessments and enrollments referencing it remain.
func (r *CourseRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete course: %w", err)
	}
	return res.RowsAffected()
}
