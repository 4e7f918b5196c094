package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

const assessmentColumns = `id, course_id, assessment_type, assessment_name, max_points, weight, due_date, description, created_at`

// AssessmentRepository manages assessments.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository constructs an AssessmentRepository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// ListByCourse returns a course's assessments by due date, undated last.
func (r *AssessmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Assessment, error) {
	query := "SELECT " + assessmentColumns + " FROM assessments WHERE course_id = $1 ORDER BY due_date ASC NULLS LAST, id ASC"
	assessments := make([]models.Assessment, 0)
	if err := r.db.SelectContext(ctx, &assessments, query, courseID); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, nil
}

// FindByID fetches an assessment.
func (r *AssessmentRepository) FindByID(ctx context.Context, id int64) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := r.db.GetContext(ctx, &assessment, "SELECT "+assessmentColumns+" FROM assessments WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// Create inserts an assessment.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	assessment.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO assessments (course_id, assessment_type, assessment_name, max_points, weight, due_date, description, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.GetContext(ctx, &assessment.ID, query,
		assessment.CourseID, assessment.Type, assessment.Name, assessment.MaxPoints, assessment.Weight,
		assessment.DueDate, assessment.Description, assessment.CreatedAt,
	); err != nil {
		return writeError("create assessment", err)
	}
	return nil
}
