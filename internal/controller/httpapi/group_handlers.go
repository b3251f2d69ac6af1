package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/tutor_portal/internal/render"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// handleGroupScheduleImage отдаёт недельную сетку группы одной картинкой
func (s *Server) handleGroupScheduleImage(c echo.Context) error {
	groupID, err := pathID(c)
	if err != nil {
		return err
	}

	group, err := s.groupRepo.GetByID(c.Request().Context(), groupID)
	if err != nil {
		s.logger.Error("Failed to load group", zap.Int64("group_id", groupID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load group")
	}
	if group == nil {
		return echo.NewHTTPError(http.StatusNotFound, "group not found")
	}

	blocks, err := s.blockRepo.GetByGroupID(c.Request().Context(), groupID)
	if err != nil {
		s.logger.Error("Failed to load schedule blocks", zap.Int64("group_id", groupID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load schedule")
	}

	png, err := render.WeekImage(group, blocks)
	if err != nil {
		s.logger.Error("Failed to render week image", zap.Int64("group_id", groupID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render schedule image")
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
