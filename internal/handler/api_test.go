package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/service"
	"github.com/Loggy-dot/Student-Management-system/pkg/config"
)

const apiSecret = "handler-secret"

type testAPI struct {
	router *gin.Engine
	school *memSchool
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	school := newMemSchool()
	logins := memLogins{school}
	auth := service.NewAuthService(newMemUsers(), logins, &memTokens{}, nil, nil, nil, service.AuthConfig{Secret: apiSecret, Expiry: time.Hour})
	require.NoError(t, auth.EnsureBootstrapAccounts(context.Background(), []config.BootstrapAccount{
		{Username: "admin", Password: "admin123", Role: "admin", Name: "Administrator"},
		{Username: "teacher", Password: "teacher123", Role: "teacher", Name: "Teacher"},
	}))
	reports := service.NewLegacyReportService(school, school, school, logins, fakeTx{}, nil, nil, nil)
	grades := service.NewGradeService(nil, school, school, nil, nil, nil, nil)

	router := gin.New()
	RegisterRoutes(router, "/api", Handlers{
		Health:        NewHealthHandler(service.NewMetricsService(), nil),
		Auth:          NewAuthHandler(auth),
		Students:      NewStudentHandler(service.NewStudentService(nil, nil, nil, nil, nil, nil, nil), grades, nil, nil),
		Departments:   NewDepartmentHandler(service.NewDepartmentService(nil, nil, nil, nil)),
		Courses:       NewCourseHandler(service.NewCourseService(nil, nil, nil, nil), service.NewAssessmentService(nil, nil, nil)),
		Teachers:      NewTeacherHandler(service.NewTeacherService(nil, nil, nil), nil),
		Enrollments:   NewEnrollmentHandler(service.NewEnrollmentService(nil, nil, nil, nil)),
		Grades:        NewGradeHandler(nil),
		Reports:       NewLegacyReportHandler(reports),
		Credentials:   NewCredentialHandler(service.NewCredentialService(nil, nil, nil)),
		Exports:       NewExportHandler(nil),
		Notifications: NewNotificationHandler(nil),
	}, auth)
	return &testAPI{router: router, school: school}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestHealthEndpoints(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/health", "/api/health"} {
		rec := api.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"OK"`)
	}

	rec := api.do(t, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminLogin(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid credentials", body["error"])

	token := api.login(t, "admin", "admin123")
	rec = api.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)

	rec = api.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLegacyReportProvisionsPortalLogin(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "teacher", "teacher123")

	payload := gin.H{
		"StudentId":   999001,
		"StudentName": "Ada Lovelace",
		"Course1":     "Math",
		"Grade1":      "A",
		"Course2":     "Physics",
		"Grade2":      "B",
		"Department":  "Computer Science",
	}
	rec := api.do(t, http.MethodPost, "/api/students-report", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		StudentID   int64 `json:"StudentId"`
		Credentials struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"credentials"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(999001), created.StudentID)
	assert.Equal(t, "ada.lovelace@student.edu", created.Credentials.Email)
	assert.Equal(t, models.DefaultStudentPassword, created.Credentials.Password)
	assert.Contains(t, api.school.students, int64(999001))

	rec = api.do(t, http.MethodPost, "/api/student-login", "", gin.H{"email": "ada.lovelace@student.edu", "password": "password123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login models.StudentLoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.Equal(t, int64(999001), login.Student.StudentID)

	rec = api.do(t, http.MethodPost, "/api/students-report", token, payload)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/students-report", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ada Lovelace")

	rec = api.do(t, http.MethodGet, "/api/student-grades/999001", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var grades models.StudentGrades
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grades))
	assert.Equal(t, "Ada Lovelace", grades.StudentName)
	assert.Equal(t, "Computer Science", grades.Department)
	require.Len(t, grades.Grades, 2)
	for _, entry := range grades.Grades {
		assert.Equal(t, models.GradeSourceMainReport, entry.Source)
	}
	assert.Equal(t, "Math", grades.Grades[0].Course)
	assert.Equal(t, "A", *grades.Grades[0].Grade)
	assert.Equal(t, "Physics", grades.Grades[1].Course)

	rec = api.do(t, http.MethodGet, "/api/student-grades/424242", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLegacyReportNamesakeStillCreatesRow(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "teacher", "teacher123")

	payload := gin.H{
		"StudentId": 999001, "StudentName": "Ada Lovelace",
		"Course1": "Math", "Grade1": "A", "Course2": "Physics", "Grade2": "B",
		"Department": "Computer Science",
	}
	rec := api.do(t, http.MethodPost, "/api/students-report", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	payload["StudentId"] = 999002
	rec = api.do(t, http.MethodPost, "/api/students-report", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), `"credentials"`)
	assert.Contains(t, api.school.reports, int64(999002))
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/students-report", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, models.JWTClaims{
		UserID: "1",
		Name:   "Administrator",
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte(apiSecret))
	require.NoError(t, err)

	rec = api.do(t, http.MethodPost, "/api/students-report", signed, gin.H{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/students-report", signed+"x", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleGates(t *testing.T) {
	api := newTestAPI(t)
	teacher := api.login(t, "teacher", "teacher123")

	rec := api.do(t, http.MethodPost, "/api/student-credentials", teacher, gin.H{"StudentId": 1, "Email": "a@b.com", "Password": "secret1"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient permissions")
}

func TestInvalidPathID(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/students/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid id")
}
