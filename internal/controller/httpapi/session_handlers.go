package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/Freeeeeet/tutor_portal/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type generateRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type generateResponse struct {
	Created int `json:"created"`
}

// handleGenerate генерирует занятия из блоков расписания для диапазона
// дат. Генерация идёт только по группам учителя, который её запросил.
func (s *Server) handleGenerate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	startDate, _ := time.Parse(dateLayout, req.StartDate)
	endDate, _ := time.Parse(dateLayout, req.EndDate)
	if endDate.Before(startDate) {
		return echo.NewHTTPError(http.StatusBadRequest, "end_date is before start_date")
	}

	role := RoleFromContext(c)
	created, err := s.scheduling.GenerateSessionsForRange(c.Request().Context(), startDate, endDate, &role.TeacherID)
	if err != nil {
		s.logger.Error("Session generation failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate sessions")
	}

	return c.JSON(http.StatusOK, generateResponse{Created: created})
}

type generateUpcomingRequest struct {
	Days      int  `json:"days" validate:"omitempty,min=1,max=366"`
	FromToday bool `json:"from_today"`
}

// handleGenerateUpcoming генерирует занятия на ближайшие дни
func (s *Server) handleGenerateUpcoming(c echo.Context) error {
	var req generateUpcomingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role := RoleFromContext(c)
	created, err := s.scheduling.GenerateUpcoming(c.Request().Context(), req.Days, req.FromToday, &role.TeacherID)
	if err != nil {
		s.logger.Error("Session generation failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate sessions")
	}

	return c.JSON(http.StatusOK, generateResponse{Created: created})
}

type refreshQRRequest struct {
	TTLSeconds int `json:"ttl_seconds" validate:"omitempty,min=10,max=600"`
}

type refreshQRResponse struct {
	SessionID int64     `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
	ScanURL   string    `json:"scan_url"`
}

// handleRefreshQR выпускает новый QR-токен занятия. Предыдущий токен
// сразу перестаёт действовать.
func (s *Server) handleRefreshQR(c echo.Context) error {
	sessionID, err := pathID(c)
	if err != nil {
		return err
	}

	var req refreshQRRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := s.ownedSession(c, sessionID)
	if err != nil {
		return err
	}

	session, err = s.attendance.RefreshQRToken(c.Request().Context(),
		session.ID, time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		return s.domainError(c, err)
	}

	return c.JSON(http.StatusOK, refreshQRResponse{
		SessionID: session.ID,
		ExpiresAt: *session.QRTokenExpiresAt,
		ScanURL:   s.scanURL(session),
	})
}

// handleQRImage отдаёт PNG с QR-кодом занятия. Если действующего токена
// нет, сначала выпускает новый с дефолтным TTL.
func (s *Server) handleQRImage(c echo.Context) error {
	sessionID, err := pathID(c)
	if err != nil {
		return err
	}

	session, err := s.ownedSession(c, sessionID)
	if err != nil {
		return err
	}

	if !s.attendance.TokenIsValid(session, session.QRToken) {
		session, err = s.attendance.RefreshQRToken(c.Request().Context(), session.ID, 0)
		if err != nil {
			return s.domainError(c, err)
		}
	}

	png, err := qrcode.Encode(s.scanURL(session), qrcode.Medium, 512)
	if err != nil {
		s.logger.Error("Failed to encode QR code", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render qr code")
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

type updateSessionRequest struct {
	Topic *string `json:"topic" validate:"omitempty,max=255"`
	Notes *string `json:"notes"`
}

// handleUpdateSession правит тему и заметки занятия
func (s *Server) handleUpdateSession(c echo.Context) error {
	sessionID, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := s.ownedSession(c, sessionID)
	if err != nil {
		return err
	}

	if req.Topic != nil {
		session.Topic = *req.Topic
	}
	if req.Notes != nil {
		session.Notes = *req.Notes
	}

	if err := s.sessionRepo.UpdateTopicNotes(c.Request().Context(), session.ID, session.Topic, session.Notes); err != nil {
		s.logger.Error("Failed to update session", zap.Int64("session_id", session.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update session")
	}

	return c.JSON(http.StatusOK, session)
}

// ownedSession загружает занятие и проверяет, что оно принадлежит
// учителю из контекста запроса
func (s *Server) ownedSession(c echo.Context, sessionID int64) (*model.ClassSession, error) {
	session, err := s.attendance.GetSession(c.Request().Context(), sessionID)
	if err != nil {
		return nil, s.domainError(c, err)
	}

	if session.TeacherID != RoleFromContext(c).TeacherID {
		return nil, echo.NewHTTPError(http.StatusForbidden, "session belongs to another teacher")
	}

	return session, nil
}

// scanURL собирает URL, который зашивается в QR-код
func (s *Server) scanURL(session *model.ClassSession) string {
	return fmt.Sprintf("%s/api/sessions/%d/checkin?token=%s", s.baseURL, session.ID, session.QRToken)
}

// pathID читает :id из пути
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// domainError переводит отказы доменного слоя в HTTP-статусы
func (s *Server) domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrTokenInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, "qr token is invalid or expired")
	case errors.Is(err, service.ErrUnknownCode):
		return echo.NewHTTPError(http.StatusBadRequest, "unknown check-in code")
	case errors.Is(err, service.ErrNotEnrolled):
		return echo.NewHTTPError(http.StatusForbidden, "student is not an active member of this group")
	}

	s.logger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
