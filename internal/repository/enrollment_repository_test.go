package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
)

func TestEnrollmentRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	studentID := int64(175025256)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.student_id = $1 ORDER BY e.academic_year ASC, e.semester ASC, e.id ASC")).
		WithArgs(studentID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "course_id", "teacher_id", "semester", "academic_year",
			"enrollment_date", "status", "grade", "created_at", "student_name", "course_name", "course_code"}).
			AddRow(1, studentID, 2, nil, "Fall", "2024", now, "Enrolled", "A-", now, "Nadia Ofori", "DBMS", nil))

	items, total, err := repo.List(context.Background(), models.EnrollmentFilter{StudentID: &studentID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "A-", *items[0].Grade)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCreateDuplicate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO enrollments")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Enrollment{StudentID: 1, CourseID: 2, Status: models.EnrollmentStatusEnrolled})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestEnrollmentRepositoryRegistrations(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT s.student_name, c.course_name, e.grade")).
		WithArgs(int64(175827698)).
		WillReturnRows(sqlmock.NewRows([]string{"student_name", "course_name", "grade", "department_name"}).
			AddRow("Nana Owusu", "Cloud Computing", nil, "Computer Science"))

	regs, err := repo.Registrations(context.Background(), 175827698)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Nil(t, regs[0].Grade)
	assert.NoError(t, mock.ExpectationsWereMet())
}
