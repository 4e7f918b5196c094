package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

func newStudentServiceForTest() (*StudentService, *memStudents, *memCredentials, *fakeTx) {
	students := newMemStudents()
	credentials := newMemCredentials(students)
	tx := &fakeTx{}
	svc := NewStudentService(students, credentials, tx, nil, zap.NewNop(), nil, nil)
	return svc, students, credentials, tx
}

func TestStudentServiceCreateProvisionsLogin(t *testing.T) {
	svc, students, credentials, tx := newStudentServiceForTest()
	ctx := context.Background()

	resp, err := svc.Create(ctx, dto.StudentRequest{
		FirstName:      "Grace",
		LastName:       "Hopper",
		Email:          "Grace@Example.com",
		EnrollmentDate: "2024-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, "Grace Hopper", resp.StudentName)
	assert.Equal(t, "grace@example.com", resp.Email)
	assert.Equal(t, models.GeneratedCredentials{Email: "grace@example.com", Password: "password123"}, resp.Credentials)
	assert.Equal(t, resp.ID, resp.StudentID)

	stored, err := svc.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StudentStatusActive, stored.Status)
	require.NotNil(t, stored.EnrollmentDate)
	assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), *stored.EnrollmentDate)

	auth := NewAuthService(newMemUsers(), credentials, newMemTokens(), nil, nil, nil, AuthConfig{Secret: "s", Expiry: time.Hour})
	login, err := auth.StudentLogin(ctx, models.StudentLoginRequest{Email: resp.Email, Password: models.DefaultStudentPassword})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, login.Student.StudentID)
	assert.Len(t, students.rows, 1)
}

func TestStudentServiceCreateDerivesEmail(t *testing.T) {
	svc, _, credentials, _ := newStudentServiceForTest()

	resp, err := svc.Create(context.Background(), dto.StudentRequest{StudentID: 999001, StudentName: "Ada  Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, int64(999001), resp.ID)
	assert.Equal(t, "ada.lovelace@student.edu", resp.Email)
	assert.Equal(t, "ada.lovelace@student.edu", credentials.rows[999001].Email)
}

func TestStudentServiceCreateDuplicateEmail(t *testing.T) {
	svc, students, _, _ := newStudentServiceForTest()
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.StudentRequest{StudentName: "First Student", Email: "same@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.StudentRequest{StudentName: "Second Student", Email: "same@example.com"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, "Email already exists", appErr.Message)
	assert.Len(t, students.rows, 1)
}

func TestStudentServiceRecreateAfterDelete(t *testing.T) {
	svc, _, credentials, _ := newStudentServiceForTest()
	ctx := context.Background()

	first, err := svc.Create(ctx, dto.StudentRequest{StudentName: "Grace Hopper"})
	require.NoError(t, err)
	changes, err := svc.Delete(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), changes)
	assert.False(t, credentials.rows[first.ID].IsActive)

	second, err := svc.Create(ctx, dto.StudentRequest{StudentName: "Grace Hopper"})
	require.NoError(t, err)
	assert.Equal(t, "grace.hopper@student.edu", second.Email)
	assert.NotContains(t, credentials.rows, first.ID)
	assert.True(t, credentials.rows[second.ID].IsActive)
}

func TestStudentServiceCreateKeepsDeactivatedLoginOfLiveStudent(t *testing.T) {
	svc, students, credentials, _ := newStudentServiceForTest()
	ctx := context.Background()
	_, err := students.InsertIfAbsent(ctx, nil, &models.Student{ID: 7, StudentName: "Holder"})
	require.NoError(t, err)
	require.NoError(t, credentials.Create(ctx, nil, &models.StudentCredential{StudentID: 7, Email: "held@example.com", PasswordHash: "x", IsActive: false}))

	_, err = svc.Create(ctx, dto.StudentRequest{StudentName: "Other", Email: "held@example.com"})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
	assert.Contains(t, credentials.rows, int64(7))
}

func TestStudentServiceCreateDuplicateID(t *testing.T) {
	svc, _, _, _ := newStudentServiceForTest()
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.StudentRequest{StudentID: 5, StudentName: "One"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.StudentRequest{StudentID: 5, StudentName: "Two"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, "Student already exists", appErr.Message)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc, _, _, _ := newStudentServiceForTest()

	cases := map[string]dto.StudentRequest{
		"missing name":   {Email: "x@example.com"},
		"bad email":      {StudentName: "X", Email: "nope"},
		"bad date":       {StudentName: "X", DateOfBirth: "01/02/2003"},
		"unknown status": {StudentName: "X", Status: "Expelled"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
		})
	}
}

func TestStudentServiceUpdateKeepsStoredValues(t *testing.T) {
	svc, students, _, _ := newStudentServiceForTest()
	ctx := context.Background()
	created, err := svc.Create(ctx, dto.StudentRequest{StudentName: "Alan Turing", EnrollmentDate: "2023-01-15", ProfilePicture: "/uploads/alan.png"})
	require.NoError(t, err)

	changes, err := svc.Update(ctx, created.ID, dto.StudentRequest{StudentName: "Alan M. Turing", Status: "Graduated"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), changes)

	stored := students.rows[created.ID]
	assert.Equal(t, "Alan M. Turing", stored.StudentName)
	assert.Equal(t, "Graduated", stored.Status)
	require.NotNil(t, stored.Email)
	assert.Equal(t, "alan.turing@student.edu", *stored.Email)
	require.NotNil(t, stored.ProfilePicture)
	assert.Equal(t, "/uploads/alan.png", *stored.ProfilePicture)
	require.NotNil(t, stored.EnrollmentDate)
}

func TestStudentServiceGetAndDeleteMissing(t *testing.T) {
	svc, _, _, _ := newStudentServiceForTest()

	_, err := svc.Get(context.Background(), 77)
	require.Error(t, err)
	assert.Equal(t, "Student not found", appErrors.FromError(err).Message)

	_, err = svc.Update(context.Background(), 77, dto.StudentRequest{StudentName: "Nobody"})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	changes, err := svc.Delete(context.Background(), 77)
	require.NoError(t, err)
	assert.Zero(t, changes)
}
