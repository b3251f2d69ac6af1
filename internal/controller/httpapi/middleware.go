package httpapi

import (
	"net/http"
	"strconv"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Ключ, под которым роль лежит в контексте echo
const roleContextKey = "portal.role"

// Заголовок с id пользователя от внешнего шлюза аутентификации
const userIDHeader = "X-User-ID"

// resolveRole один раз на запрос превращает id пользователя в роль.
// Без заголовка или с неизвестным id запрос продолжается анонимным,
// дальше его отсекут проверки requireTeacher/requireStudent.
func (s *Server) resolveRole(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role := model.Role{Kind: model.RoleNone}

		if raw := c.Request().Header.Get(userIDHeader); raw != "" {
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid user id header")
			}

			resolved, err := s.roles.ResolveRole(c.Request().Context(), userID)
			if err != nil {
				s.logger.Error("Failed to resolve user role",
					zap.Int64("user_id", userID), zap.Error(err))
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve role")
			}
			role = resolved
		}

		c.Set(roleContextKey, role)
		return next(c)
	}
}

// RoleFromContext возвращает роль текущего запроса
func RoleFromContext(c echo.Context) model.Role {
	if role, ok := c.Get(roleContextKey).(model.Role); ok {
		return role
	}
	return model.Role{Kind: model.RoleNone}
}

// requireTeacher пускает дальше только учителя
func (s *Server) requireTeacher(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !RoleFromContext(c).IsTeacher() {
			return echo.NewHTTPError(http.StatusForbidden, "teacher role required")
		}
		return next(c)
	}
}

// requireStudent пускает дальше только ученика
func (s *Server) requireStudent(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !RoleFromContext(c).IsStudent() {
			return echo.NewHTTPError(http.StatusForbidden, "student role required")
		}
		return next(c)
	}
}
