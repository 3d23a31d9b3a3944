package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loanlink-backend/internal/usecase/dashboard"
)

type DashboardHandler struct{ uc *dashboard.Usecase }

func NewDashboardHandler(uc *dashboard.Usecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary  Role-scoped dashboard counters
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	stats, err := h.uc.Stats(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"stats": stats})
}
