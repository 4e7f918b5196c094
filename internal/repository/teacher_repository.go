package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

const teacherColumns = `t.id, t.employee_id, t.first_name, t.last_name, t.email, t.phone, t.date_of_birth, t.hire_date,
        t.qualification, t.specialization, t.department_id, t.position, t.salary, t.status, t.profile_picture,
        t.created_at, t.updated_at`

// TeacherRepository manages teacher persistence.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns teachers ordered by last then first name. An empty status returns every teacher.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, int, error) {
	base := "FROM teachers t LEFT JOIN departments d ON d.id = t.department_id"
	var args []interface{}
	if filter.Status != "" {
		base += " WHERE t.status = $1"
		args = append(args, filter.Status)
	}
	query := paginate(fmt.Sprintf("SELECT %s, d.name AS department_name %s ORDER BY t.last_name ASC, t.first_name ASC, t.id ASC", teacherColumns, base), filter.ListParams)
	teachers := make([]models.TeacherDetail, 0)
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}
	total, err := count(ctx, r.db, filter.ListParams, len(teachers), "SELECT COUNT(*) "+base, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count teachers: %w", err)
	}
	return teachers, total, nil
}

// FindByID fetches a teacher with department name.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.TeacherDetail, error) {
	query := fmt.Sprintf(`SELECT %s, d.name AS department_name
        FROM teachers t
        LEFT JOIN departments d ON d.id = t.department_id
        WHERE t.id = $1`, teacherColumns)
	var teacher models.TeacherDetail
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts a teacher.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	now := time.Now().UTC()
	teacher.CreatedAt = now
	teacher.UpdatedAt = now
	teacher.Email = strings.ToLower(teacher.Email)
	const query = `INSERT INTO teachers (employee_id, first_name, last_name, email, phone, date_of_birth, hire_date,
        qualification, specialization, department_id, position, salary, status, profile_picture, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, CURRENT_DATE), $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING id`
	if err := r.db.GetContext(ctx, &teacher.ID, query,
		teacher.EmployeeID, teacher.FirstName, teacher.LastName, teacher.Email, teacher.Phone, teacher.DateOfBirth,
		teacher.HireDate, teacher.Qualification, teacher.Specialization, teacher.DepartmentID, teacher.Position,
		teacher.Salary, teacher.Status, teacher.ProfilePicture, teacher.CreatedAt, teacher.UpdatedAt,
	); err != nil {
		return writeError("create teacher", err)
	}
	return nil
}

// Update replaces a teacher row and returns the rows changed.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) (int64, error) {
	teacher.UpdatedAt = time.Now().UTC()
	teacher.Email = strings.ToLower(teacher.Email)
	const query = `UPDATE teachers SET employee_id = :employee_id, first_name = :first_name, last_name = :last_name,
        email = :email, phone = :phone, date_of_birth = :date_of_birth, hire_date = :hire_date,
        qualification = :qualification, specialization = :specialization, department_id = :department_id,
        position = :position, salary = :salary, status = :status, profile_picture = :profile_picture,
        updated_at = :updated_at
        WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, teacher)
	if err != nil {
		return 0, writeError("update teacher", err)
	}
	return res.RowsAffected()
}

// Delete removes a teacher.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete teacher: %w", err)
	}
	return res.RowsAffected()
}
