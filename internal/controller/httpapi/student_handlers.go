package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type createStudentRequest struct {
	FirstName string `json:"first_name" validate:"required,max=60"`
	LastName  string `json:"last_name" validate:"required,max=60"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Email     string `json:"email" validate:"omitempty,email"`
	ParentID  *int64 `json:"parent_id"`
}

// handleCreateStudent заводит ученика; код отметки генерируется,
// если не задан
func (s *Server) handleCreateStudent(c echo.Context) error {
	var req createStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	student := &model.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		ParentID:  req.ParentID,
	}

	if err := s.students.CreateStudent(c.Request().Context(), student); err != nil {
		s.logger.Error("Failed to create student", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create student")
	}

	return c.JSON(http.StatusCreated, student)
}
