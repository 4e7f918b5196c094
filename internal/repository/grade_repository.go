package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

// GradeRepository persists assessment grades.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// Upsert records a grade. A second write for the same student and assessment replaces the first.
func (r *GradeRepository) Upsert(ctx context.Context, grade *models.Grade) error {
	const query = `INSERT INTO grades (student_id, assessment_id, points_earned, letter_grade, comments, grade_date)
        VALUES ($1, $2, $3, $4, $5, NOW())
        ON CONFLICT (student_id, assessment_id) DO UPDATE SET
            points_earned = EXCLUDED.points_earned,
            letter_grade = EXCLUDED.letter_grade,
            comments = EXCLUDED.comments,
            grade_date = NOW()
        RETURNING id, grade_date`
	row := r.db.QueryRowxContext(ctx, query, grade.StudentID, grade.AssessmentID, grade.PointsEarned, grade.LetterGrade, grade.Comments)
	if err := row.Scan(&grade.ID, &grade.GradeDate); err != nil {
		return fmt.Errorf("upsert grade: %w", err)
	}
	return nil
}

// ListByStudent returns a student's assessment grades, newest first.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.AssessmentGrade, error) {
	const query = `SELECT g.id, g.student_id, g.assessment_id, g.points_earned, g.letter_grade, g.grade_date, g.comments,
        a.assessment_name, a.assessment_type, a.max_points, c.course_name, c.course_code
        FROM grades g
        JOIN assessments a ON a.id = g.assessment_id
        JOIN courses c ON c.id = a.course_id
        WHERE g.student_id = $1
        ORDER BY g.grade_date DESC, g.id DESC`
	grades := make([]models.AssessmentGrade, 0)
	if err := r.db.SelectContext(ctx, &grades, query, studentID); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// Notice resolves the recipient and course of a grade notification.
func (r *GradeRepository) Notice(ctx context.Context, studentID, assessmentID int64) (*models.GradeNotice, error) {
	const query = `SELECT COALESCE(s.email, sc.email) AS email, s.student_name, c.course_name
        FROM students s
        LEFT JOIN student_credentials sc ON sc.student_id = s.id
        CROSS JOIN assessments a
        JOIN courses c ON c.id = a.course_id
        WHERE s.id = $1 AND a.id = $2`
	var notice models.GradeNotice
	if err := r.db.GetContext(ctx, &notice, query, studentID, assessmentID); err != nil {
		return nil, err
	}
	return &notice, nil
}
