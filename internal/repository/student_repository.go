package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

const studentColumns = `s.id, s.student_name, s.first_name, s.last_name, s.email, s.phone, s.date_of_birth, s.address,
        s.emergency_contact, s.emergency_phone, s.profile_picture, s.enrollment_date, s.graduation_date, s.status,
        s.department_id, s.academic_year, s.semester, s.created_at, s.updated_at`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters ordered by name then id.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	base := "FROM students s LEFT JOIN departments d ON d.id = s.department_id"
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(s.student_name) LIKE $%d OR LOWER(COALESCE(s.email, '')) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.DepartmentID != nil {
		conditions = append(conditions, fmt.Sprintf("s.department_id = $%d", len(args)+1))
		args = append(args, *filter.DepartmentID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if len(conditions) > 0 {
		base += " WHERE " + strings.Join(conditions, " AND ")
	}

	query := paginate(fmt.Sprintf("SELECT %s, d.name AS department_name, d.code AS department_code %s ORDER BY s.student_name ASC, s.id ASC", studentColumns, base), filter.ListParams)
	students := make([]models.StudentDetail, 0)
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}
	total, err := count(ctx, r.db, filter.ListParams, len(students), "SELECT COUNT(*) "+base, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// ListWithDepartments returns the flat roster. Students whose department is gone carry a null name.
func (r *StudentRepository) ListWithDepartments(ctx context.Context) ([]models.StudentWithDepartment, error) {
	const query = `SELECT s.id AS student_id, s.student_name, d.name AS department_name, d.head
        FROM students s
        LEFT JOIN departments d ON d.id = s.department_id
        ORDER BY s.student_name ASC, s.id ASC`
	rows := make([]models.StudentWithDepartment, 0)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list students with departments: %w", err)
	}
	return rows, nil
}

// FindByID fetches a student with department details.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	query := fmt.Sprintf(`SELECT %s, d.name AS department_name, d.code AS department_code
        FROM students s
        LEFT JOIN departments d ON d.id = s.department_id
        WHERE s.id = $1`, studentColumns)
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a student. A zero ID is replaced by the next sequence value.
func (r *StudentRepository) Create(ctx context.Context, exec sqlx.ExtContext, student *models.Student) error {
	target := pick(r.db, exec)
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, student_name, first_name, last_name, email, phone, date_of_birth, address,
        emergency_contact, emergency_phone, profile_picture, enrollment_date, graduation_date, status,
        department_id, academic_year, semester, created_at, updated_at)
        VALUES (COALESCE(NULLIF($1::bigint, 0), nextval('students_id_seq')), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
        COALESCE($12, CURRENT_DATE), $13, $14, $15, $16, $17, $18, $19)
        RETURNING id`
	if err := sqlx.GetContext(ctx, target, &student.ID, query,
		student.ID, student.StudentName, student.FirstName, student.LastName, student.Email, student.Phone,
		student.DateOfBirth, student.Address, student.EmergencyContact, student.EmergencyPhone, student.ProfilePicture,
		student.EnrollmentDate, student.GraduationDate, student.Status, student.DepartmentID, student.AcademicYear,
		student.Semester, student.CreatedAt, student.UpdatedAt,
	); err != nil {
		return writeError("create student", err)
	}
	return r.advanceSequence(ctx, target, student.ID)
}

// InsertIfAbsent inserts a minimal student row unless the id already exists. It reports whether a row was written.
func (r *StudentRepository) InsertIfAbsent(ctx context.Context, exec sqlx.ExtContext, student *models.Student) (bool, error) {
	target := pick(r.db, exec)
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	if student.Status == "" {
		student.Status = models.StudentStatusActive
	}
	const query = `INSERT INTO students (id, student_name, first_name, last_name, email, department_id, status, created_at, updated_at)
        VALUES (:id, :student_name, :first_name, :last_name, :email, :department_id, :status, :created_at, :updated_at)
        ON CONFLICT (id) DO NOTHING`
	res, err := sqlx.NamedExecContext(ctx, target, query, student)
	if err != nil {
		return false, writeError("insert student", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert student rows: %w", err)
	}
	if affected == 0 {
		return false, nil
	}
	return true, r.advanceSequence(ctx, target, student.ID)
}

// Update replaces every mutable column. It returns the number of rows changed.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) (int64, error) {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET student_name = :student_name, first_name = :first_name, last_name = :last_name,
        email = :email, phone = :phone, date_of_birth = :date_of_birth, address = :address,
        emergency_contact = :emergency_contact, emergency_phone = :emergency_phone, profile_picture = :profile_picture,
        enrollment_date = :enrollment_date, graduation_date = :graduation_date, status = :status,
        department_id = :department_id, academic_year = :academic_year, semester = :semester, updated_at = :updated_at
        WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return 0, writeError("update student", err)
	}
	return res.RowsAffected()
}

// Delete removes a student and deactivates its portal login in the same statement.
// Grades, enrollments and the credential row stay in place.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `WITH removed AS (DELETE FROM students WHERE id = $1 RETURNING id),
        retired AS (UPDATE student_credentials SET is_active = FALSE WHERE student_id IN (SELECT id FROM removed))
        SELECT COUNT(*) FROM removed`
	var changes int64
	if err := r.db.GetContext(ctx, &changes, query, id); err != nil {
		return 0, fmt.Errorf("delete student: %w", err)
	}
	return changes, nil
}

// advanceSequence keeps generated ids clear of caller supplied ones.
func (r *StudentRepository) advanceSequence(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	const query = `SELECT setval('students_id_seq', GREATEST($1::bigint, (SELECT last_value FROM students_id_seq)))`
	if _, err := exec.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("advance student sequence: %w", err)
	}
	return nil
}
