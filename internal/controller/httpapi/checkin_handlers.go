package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type checkInRequest struct {
	Token string `json:"token"`
	Code  string `json:"code" validate:"required"`
}

type checkInSelfRequest struct {
	Token string `json:"token"`
}

type checkInResponse struct {
	SessionID   int64  `json:"session_id"`
	StudentID   int64  `json:"student_id"`
	StudentName string `json:"student_name"`
	Status      string `json:"status"`
}

// handleCheckInByCode отмечает ученика по постоянному коду.
// Используется киоском у входа: токен приходит из отсканированного QR,
// код ученик вводит сам.
func (s *Server) handleCheckInByCode(c echo.Context) error {
	sessionID, err := pathID(c)
	if err != nil {
		return err
	}

	var req checkInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Token == "" {
		// QR-ссылка несёт токен в query-строке
		req.Token = c.QueryParam("token")
	}

	result, err := s.attendance.CheckInByCode(c.Request().Context(), sessionID, req.Token, req.Code)
	if err != nil {
		return s.domainError(c, err)
	}

	return c.JSON(http.StatusOK, checkInResponse{
		SessionID:   result.Attendance.SessionID,
		StudentID:   result.Student.ID,
		StudentName: result.Student.DisplayName(),
		Status:      string(result.Attendance.Status),
	})
}

// handleCheckInSelf отмечает аутентифицированного ученика за себя
func (s *Server) handleCheckInSelf(c echo.Context) error {
	sessionID, err := pathID(c)
	if err != nil {
		return err
	}

	var req checkInSelfRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Token == "" {
		req.Token = c.QueryParam("token")
	}

	role := RoleFromContext(c)
	result, err := s.attendance.CheckInSelf(c.Request().Context(), sessionID, role.StudentID, req.Token)
	if err != nil {
		return s.domainError(c, err)
	}

	return c.JSON(http.StatusOK, checkInResponse{
		SessionID:   result.Attendance.SessionID,
		StudentID:   result.Student.ID,
		StudentName: result.Student.DisplayName(),
		Status:      string(result.Attendance.Status),
	})
}
