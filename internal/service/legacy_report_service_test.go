package service

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/repository"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

type memReports struct {
	reports map[int64]models.ReportRow
	updates []models.ReportUpdateRow
}

func newMemReports() *memReports {
	return &memReports{reports: map[int64]models.ReportRow{}}
}

func (m *memReports) ListReports(ctx context.Context, params models.ListParams) ([]models.ReportRow, int, error) {
	out := make([]models.ReportRow, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, r)
	}
	return out, len(out), nil
}

func (m *memReports) CreateReport(ctx context.Context, exec sqlx.ExtContext, row *models.ReportRow) error {
	if _, ok := m.reports[row.StudentID]; ok {
		return &repository.DuplicateError{Constraint: "students_report_pkey"}
	}
	m.reports[row.StudentID] = *row
	return nil
}

func (m *memReports) UpdateReport(ctx context.Context, row *models.ReportRow) (int64, error) {
	if _, ok := m.reports[row.StudentID]; !ok {
		return 0, nil
	}
	m.reports[row.StudentID] = *row
	return 1, nil
}

func (m *memReports) DeleteReport(ctx context.Context, studentID int64) (int64, error) {
	if _, ok := m.reports[studentID]; !ok {
		return 0, nil
	}
	delete(m.reports, studentID)
	return 1, nil
}

func (m *memReports) ListUpdates(ctx context.Context, params models.ListParams) ([]models.ReportUpdateRow, int, error) {
	return m.updates, len(m.updates), nil
}

func (m *memReports) CreateUpdate(ctx context.Context, row *models.ReportUpdateRow) error {
	row.ID = int64(len(m.updates) + 1)
	m.updates = append(m.updates, *row)
	return nil
}

func (m *memReports) DeleteUpdate(ctx context.Context, id int64) (int64, error) {
	for i, u := range m.updates {
		if u.ID == id {
			m.updates = append(m.updates[:i], m.updates[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type memDepartments struct {
	ids   map[string]int64
	heads map[string]string
}

func (m *memDepartments) Ensure(ctx context.Context, exec sqlx.ExtContext, name, head string) (int64, error) {
	if m.ids == nil {
		m.ids = map[string]int64{}
		m.heads = map[string]string{}
	}
	if id, ok := m.ids[name]; ok {
		return id, nil
	}
	id := int64(len(m.ids) + 1)
	m.ids[name] = id
	m.heads[name] = head
	return id, nil
}

type legacyFixture struct {
	svc         *LegacyReportService
	reports     *memReports
	departments *memDepartments
	students    *memStudents
	credentials *memCredentials
}

func newLegacyFixture() legacyFixture {
	reports := newMemReports()
	departments := &memDepartments{}
	students := newMemStudents()
	credentials := newMemCredentials(students)
	svc := NewLegacyReportService(reports, departments, students, credentials, &fakeTx{}, nil, zap.NewNop(), nil)
	return legacyFixture{svc: svc, reports: reports, departments: departments, students: students, credentials: credentials}
}

func adaReport() dto.ReportRowRequest {
	return dto.ReportRowRequest{
		StudentID:   999001,
		StudentName: "Ada Lovelace",
		Course1:     "Analytical Engines",
		Grade1:      "A",
		Course2:     "Mathematics",
		Grade2:      "A-",
		Department:  "Computer Science",
	}
}

func TestLegacyReportCreateProvisionsStudentAndLogin(t *testing.T) {
	f := newLegacyFixture()

	resp, err := f.svc.CreateReport(context.Background(), adaReport())
	require.NoError(t, err)
	assert.Equal(t, int64(999001), resp.StudentID)
	assert.Equal(t, int64(1), resp.DepartmentID)
	require.NotNil(t, resp.Credentials)
	assert.Equal(t, "ada.lovelace@student.edu", resp.Credentials.Email)
	assert.Equal(t, "password123", resp.Credentials.Password)

	assert.Equal(t, "TBD", f.departments.heads["Computer Science"])
	student, ok := f.students.rows[999001]
	require.True(t, ok)
	assert.Equal(t, "Ada", student.FirstName)
	assert.Equal(t, "Lovelace", student.LastName)
	require.NotNil(t, student.DepartmentID)
	assert.Equal(t, int64(1), *student.DepartmentID)

	auth := NewAuthService(newMemUsers(), f.credentials, newMemTokens(), nil, nil, nil, AuthConfig{Secret: "s"})
	login, err := auth.StudentLogin(context.Background(), models.StudentLoginRequest{Email: "ada.lovelace@student.edu", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, int64(999001), login.Student.StudentID)
}

func TestLegacyReportCreateKeepsExistingLogin(t *testing.T) {
	f := newLegacyFixture()
	require.NoError(t, f.credentials.Create(context.Background(), nil, &models.StudentCredential{StudentID: 999001, Email: "ada@example.com", PasswordHash: "x", IsActive: true}))

	resp, err := f.svc.CreateReport(context.Background(), adaReport())
	require.NoError(t, err)
	assert.Nil(t, resp.Credentials)
	assert.Equal(t, "ada@example.com", f.credentials.rows[999001].Email)
}

func TestLegacyReportCreateNamesakeSkipsLogin(t *testing.T) {
	f := newLegacyFixture()
	ctx := context.Background()
	_, err := f.svc.CreateReport(ctx, adaReport())
	require.NoError(t, err)

	namesake := adaReport()
	namesake.StudentID = 999002
	resp, err := f.svc.CreateReport(ctx, namesake)
	require.NoError(t, err)
	assert.Nil(t, resp.Credentials)
	assert.Contains(t, f.reports.reports, int64(999002))
	assert.Contains(t, f.students.rows, int64(999002))
	assert.NotContains(t, f.credentials.rows, int64(999002))
	assert.Equal(t, int64(999001), f.credentials.rows[999001].StudentID)
}

func TestLegacyReportCreateAfterStudentDeleteIssuesFreshLogin(t *testing.T) {
	f := newLegacyFixture()
	ctx := context.Background()
	_, err := f.svc.CreateReport(ctx, adaReport())
	require.NoError(t, err)
	require.NoError(t, f.credentials.UpdatePassword(ctx, 999001, "stale-hash"))

	changes, err := f.students.Delete(ctx, 999001)
	require.NoError(t, err)
	require.Equal(t, int64(1), changes)
	assert.False(t, f.credentials.rows[999001].IsActive)
	_, err = f.svc.DeleteReport(ctx, 999001)
	require.NoError(t, err)

	resp, err := f.svc.CreateReport(ctx, adaReport())
	require.NoError(t, err)
	require.NotNil(t, resp.Credentials)
	assert.True(t, f.credentials.rows[999001].IsActive)
	assert.NotEqual(t, "stale-hash", f.credentials.rows[999001].PasswordHash)
}

func TestLegacyReportCreateDuplicateRow(t *testing.T) {
	f := newLegacyFixture()
	_, err := f.svc.CreateReport(context.Background(), adaReport())
	require.NoError(t, err)

	_, err = f.svc.CreateReport(context.Background(), adaReport())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, "Report row already exists for this student", appErr.Message)
}

func TestLegacyReportCreateRequiresEveryField(t *testing.T) {
	f := newLegacyFixture()
	req := adaReport()
	req.Grade2 = ""
	req.Department = ""

	_, err := f.svc.CreateReport(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Grade2 and Department are required", appErrors.FromError(err).Message)
	assert.Empty(t, f.reports.reports)
}

func TestLegacyReportUpdateUsesPathID(t *testing.T) {
	f := newLegacyFixture()
	_, err := f.svc.CreateReport(context.Background(), adaReport())
	require.NoError(t, err)

	req := adaReport()
	req.StudentID = 1
	req.Grade1 = "B"
	changes, err := f.svc.UpdateReport(context.Background(), 999001, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changes)
	assert.Equal(t, "B", f.reports.reports[999001].Grade1)

	changes, err = f.svc.DeleteReport(context.Background(), 424242)
	require.NoError(t, err)
	assert.Zero(t, changes)
}

func TestLegacyReportUpdatesAppend(t *testing.T) {
	f := newLegacyFixture()
	ctx := context.Background()
	req := dto.ReportUpdateRowRequest{StudentID: 5, StudentName: "Bo", Course: "Math", Grade: "C", Department: "Science"}

	first, err := f.svc.CreateUpdate(ctx, req)
	require.NoError(t, err)
	req.Grade = "B"
	second, err := f.svc.CreateUpdate(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	rows, pagination, err := f.svc.ListUpdates(ctx, models.ListParams{})
	require.NoError(t, err)
	assert.Nil(t, pagination)
	assert.Len(t, rows, 2)

	changes, err := f.svc.DeleteUpdate(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changes)
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Mary Ann Evans")
	assert.Equal(t, "Mary", first)
	assert.Equal(t, "Ann Evans", last)

	first, last = splitName("Plato")
	assert.Equal(t, "Plato", first)
	assert.Empty(t, last)
}
