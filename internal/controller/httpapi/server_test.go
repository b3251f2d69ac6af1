package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/Freeeeeet/tutor_portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRoleResolver struct {
	roles map[int64]model.Role
}

func (s *stubRoleResolver) ResolveRole(_ context.Context, userID int64) (model.Role, error) {
	return s.roles[userID], nil
}

type stubSessionStore struct {
	sessions map[int64]*model.ClassSession
}

func (s *stubSessionStore) GetByID(_ context.Context, id int64) (*model.ClassSession, error) {
	return s.sessions[id], nil
}

func (s *stubSessionStore) UpdateQRToken(_ context.Context, id int64, token string, expiresAt time.Time) error {
	sess := s.sessions[id]
	sess.QRToken = token
	sess.QRTokenExpiresAt = &expiresAt
	return nil
}

func (s *stubSessionStore) ClearExpiredQRTokens(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type stubStudentDirectory struct {
	students []*model.Student
}

func (s *stubStudentDirectory) GetByID(_ context.Context, id int64) (*model.Student, error) {
	for _, st := range s.students {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, nil
}

func (s *stubStudentDirectory) GetByCheckinCode(_ context.Context, code string) (*model.Student, error) {
	for _, st := range s.students {
		if st.CheckinCode == code {
			return st, nil
		}
	}
	return nil, nil
}

type stubEnrollments struct{}

func (stubEnrollments) IsActiveMember(_ context.Context, _, _ int64) (bool, error) {
	return true, nil
}

type stubAttendances struct{}

func (stubAttendances) UpsertPresent(_ context.Context, sessionID, studentID int64) (*model.Attendance, error) {
	return &model.Attendance{
		ID:        1,
		SessionID: sessionID,
		StudentID: studentID,
		Status:    model.AttendancePresent,
	}, nil
}

func newTestServer(t *testing.T) (*Server, *stubSessionStore) {
	t.Helper()

	expires := time.Now().Add(5 * time.Minute)
	sessions := &stubSessionStore{sessions: map[int64]*model.ClassSession{
		1: {
			ID:               1,
			GroupID:          10,
			TeacherID:        100,
			Date:             time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			StartTime:        model.NewTimeOfDay(16, 0),
			QRToken:          "valid-token",
			QRTokenExpiresAt: &expires,
		},
	}}
	students := &stubStudentDirectory{students: []*model.Student{
		{ID: 7, FirstName: "Аня", LastName: "Иванова", CheckinCode: "ABCD1234"},
	}}

	logger := zap.NewNop()
	attendance := service.NewAttendanceService(sessions, students, stubEnrollments{}, stubAttendances{}, time.Minute, logger)

	resolver := &stubRoleResolver{roles: map[int64]model.Role{
		1: {Kind: model.RoleTeacher, TeacherID: 100},
		2: {Kind: model.RoleStudent, StudentID: 7},
	}}

	srv := NewServer(nil, attendance, nil, nil, nil, nil, resolver, "http://portal.test", logger)
	return srv, sessions
}

func doRequest(srv *Server, method, target, body, userID string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
	}

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestCheckInByCodeRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/sessions/1/checkin",
		`{"token":"valid-token","code":"ABCD1234"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"PRESENT"`)
	assert.Contains(t, rec.Body.String(), "Аня Иванова")
}

func TestCheckInByCodeRoute_TokenFromQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/sessions/1/checkin?token=valid-token",
		`{"code":"ABCD1234"}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckInByCodeRoute_BadToken(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/sessions/1/checkin",
		`{"token":"stale-token","code":"ABCD1234"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckInByCodeRoute_UnknownCode(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/sessions/1/checkin",
		`{"token":"valid-token","code":"NOPE0000"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckInByCodeRoute_SessionNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/sessions/999/checkin",
		`{"token":"valid-token","code":"ABCD1234"}`, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckInSelfRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/sessions/1/checkin/self",
		`{"token":"valid-token"}`, "2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"student_id":7`)
}

func TestCheckInSelfRoute_RequiresStudent(t *testing.T) {
	srv, _ := newTestServer(t)

	// Анонимный запрос
	rec := doRequest(srv, http.MethodPost, "/api/sessions/1/checkin/self",
		`{"token":"valid-token"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Учитель тоже не может отметиться за ученика
	rec = doRequest(srv, http.MethodPost, "/api/sessions/1/checkin/self",
		`{"token":"valid-token"}`, "1")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRefreshQRRoute_RequiresTeacher(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/sessions/1/qr/refresh", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(srv, http.MethodPost, "/api/sessions/1/qr/refresh", "", "2")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRefreshQRRoute(t *testing.T) {
	srv, sessions := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/sessions/1/qr/refresh",
		`{"ttl_seconds":30}`, "1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, "valid-token", sessions.sessions[1].QRToken)
	assert.Contains(t, rec.Body.String(), "scan_url")
	assert.Contains(t, rec.Body.String(), "http://portal.test/api/sessions/1/checkin?token=")
}

func TestQRImageRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/sessions/1/qr.png", "", "1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestInvalidUserIDHeader(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/sessions/1/checkin",
		`{"token":"valid-token","code":"ABCD1234"}`, "not-a-number")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
