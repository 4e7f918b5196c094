package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

const departmentColumns = `id, name, code, head, description, established_year, building, phone, email, created_at, updated_at`

// DepartmentRepository manages departments.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository constructs a DepartmentRepository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List returns departments ordered by name.
func (r *DepartmentRepository) List(ctx context.Context, params models.ListParams) ([]models.Department, int, error) {
	query := paginate("SELECT "+departmentColumns+" FROM departments ORDER BY name ASC, id ASC", params)
	departments := make([]models.Department, 0)
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, 0, fmt.Errorf("list departments: %w", err)
	}
	total, err := count(ctx, r.db, params, len(departments), "SELECT COUNT(*) FROM departments")
	if err != nil {
		return nil, 0, fmt.Errorf("count departments: %w", err)
	}
	return departments, total, nil
}

// FindByID fetches a department.
func (r *DepartmentRepository) FindByID(ctx context.Context, id int64) (*models.Department, error) {
	var department models.Department
	if err := r.db.GetContext(ctx, &department, "SELECT "+departmentColumns+" FROM departments WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &department, nil
}

// Create inserts a department and fills its id.
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	now := time.Now().UTC()
	department.CreatedAt = now
	department.UpdatedAt = now
	const query = `INSERT INTO departments (name, code, head, description, established_year, building, phone, email, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if err := r.db.GetContext(ctx, &department.ID, query,
		department.Name, department.Code, department.Head, department.Description, department.EstablishedYear,
		department.Building, department.Phone, department.Email, department.CreatedAt, department.UpdatedAt,
	); err != nil {
		return writeError("create department", err)
	}
	return nil
}

// Ensure returns the id of the department with the given name, creating it with head when missing.
func (r *DepartmentRepository) Ensure(ctx context.Context, exec sqlx.ExtContext, name, head string) (int64, error) {
	const query = `INSERT INTO departments (name, head) VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
        RETURNING id`
	var id int64
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &id, query, name, head); err != nil {
		return 0, fmt.Errorf("ensure department %q: %w", name, err)
	}
	return id, nil
}

// Update replaces a department row and returns the rows changed.
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) (int64, error) {
	department.UpdatedAt = time.Now().UTC()
	const query = `UPDATE departments SET name = :name, code = :code, head = :head, description = :description,
        established_year = :established_year, building = :building, phone = :phone, email = :email, updated_at = :updated_at
        WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, department)
	if err != nil {
		return 0, writeError("update department", err)
	}
	return res.RowsAffected()
}

// Delete removes a department. Referencing students, teachers and courses keep their dangling id.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete department: %w", err)
	}
	return res.RowsAffected()
}
