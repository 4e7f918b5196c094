package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
	"github.com/Loggy-dot/Student-Management-system/pkg/export"
	"github.com/Loggy-dot/Student-Management-system/pkg/storage"
)

type stubDepartmentList struct {
	rows []models.Department
}

func (s stubDepartmentList) List(ctx context.Context, params models.ListParams) ([]models.Department, int, error) {
	return s.rows, len(s.rows), nil
}

func newExportServiceForTest(t *testing.T, ttl time.Duration) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	students := newMemStudents()
	email := "ada.lovelace@student.edu"
	require.NoError(t, students.Create(context.Background(), nil, &models.Student{ID: 999001, StudentName: "Ada Lovelace", Email: &email, Status: "Active"}))
	reports := newMemReports()
	reports.reports[999001] = models.ReportRow{StudentID: 999001, StudentName: "Ada Lovelace", Course1: "Math", Grade1: "A", Course2: "Art", Grade2: "B", Department: "Science"}
	code := "CS"
	departments := stubDepartmentList{rows: []models.Department{{ID: 1, Name: "Computer Science", Code: &code, Head: "Dr. Smith", Building: "Tech"}}}

	signer := storage.NewSignedURLSigner("export-secret", ttl)
	svc := NewExportService(ExportSources{Students: students, Reports: reports, Departments: departments}, store, signer, ExportConfig{APIPrefix: "/api/"}, nil, zap.NewNop(), nil)
	return svc, store
}

func TestExportServiceGenerateAndOpenCSV(t *testing.T) {
	svc, _ := newExportServiceForTest(t, time.Hour)

	result, err := svc.Generate(context.Background(), dto.ExportRequest{Dataset: models.ExportDatasetStudentsReport, Format: models.ExportFormatCSV})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)
	assert.Equal(t, "/api/exports/"+result.Token, result.URL)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	download, err := svc.Open(result.Token)
	require.NoError(t, err)
	defer download.File.Close()
	assert.Equal(t, export.ContentTypeCSV, download.ContentType)
	assert.True(t, strings.HasPrefix(download.Filename, "students-report_"))
	assert.True(t, strings.HasSuffix(download.Filename, ".csv"))

	body, err := io.ReadAll(download.File)
	require.NoError(t, err)
	assert.Contains(t, string(body), "StudentId,StudentName,Course1,Grade1,Course2,Grade2,Department")
	assert.Contains(t, string(body), "999001,Ada Lovelace,Math,A,Art,B,Science")
}

func TestExportServiceGeneratePDF(t *testing.T) {
	svc, _ := newExportServiceForTest(t, time.Hour)

	for _, dataset := range []models.ExportDataset{models.ExportDatasetStudents, models.ExportDatasetDepartments} {
		result, err := svc.Generate(context.Background(), dto.ExportRequest{Dataset: dataset, Format: models.ExportFormatPDF})
		require.NoError(t, err)
		download, err := svc.Open(result.Token)
		require.NoError(t, err)
		assert.Equal(t, export.ContentTypePDF, download.ContentType)
		head := make([]byte, 4)
		_, err = io.ReadFull(download.File, head)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(head))
		download.File.Close()
	}
}

func TestExportServiceRejectsUnknownDataset(t *testing.T) {
	svc, _ := newExportServiceForTest(t, time.Hour)

	_, err := svc.Generate(context.Background(), dto.ExportRequest{Dataset: "grades", Format: models.ExportFormatCSV})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestExportServiceOpenRejectsBadTokens(t *testing.T) {
	svc, _ := newExportServiceForTest(t, time.Hour)

	_, err := svc.Open("garbage")
	require.Error(t, err)
	assert.Equal(t, "invalid download link", appErrors.FromError(err).Message)

	expired, _ := newExportServiceForTest(t, time.Nanosecond)
	result, err := expired.Generate(context.Background(), dto.ExportRequest{Dataset: models.ExportDatasetDepartments, Format: models.ExportFormatCSV})
	require.NoError(t, err)
	_, err = expired.Open(result.Token)
	require.Error(t, err)
	assert.Equal(t, "download link has expired", appErrors.FromError(err).Message)
}

func TestExportServiceOpenMissingFile(t *testing.T) {
	svc, store := newExportServiceForTest(t, time.Hour)
	result, err := svc.Generate(context.Background(), dto.ExportRequest{Dataset: models.ExportDatasetDepartments, Format: models.ExportFormatCSV})
	require.NoError(t, err)

	removed, err := store.CleanupOlderThan(-time.Second)
	require.NoError(t, err)
	require.Len(t, removed, 1)

	_, err = svc.Open(result.Token)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
