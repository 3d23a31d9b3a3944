package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loanlink-backend/internal/usecase/application"
)

type ApplicationHandler struct{ uc *application.Usecase }

func NewApplicationHandler(uc *application.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type rejectReq struct {
	Reason string `json:"reason" validate:"max=1000"`
}

// Mine godoc
// @Summary  The caller's applications
// @Tags     applications
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/applications/my-applications [get]
func (h *ApplicationHandler) Mine(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	apps, err := h.uc.ListMine(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"applications": apps})
}

// Pending godoc
// @Summary  Pending applications on the manager's loans
// @Tags     applications
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/applications/pending [get]
func (h *ApplicationHandler) Pending(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	apps, err := h.uc.ListPending(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"applications": apps})
}

// Approved godoc
// @Summary  Approved applications on the manager's loans, latest approval first
// @Tags     applications
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/applications/approved [get]
func (h *ApplicationHandler) Approved(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	apps, err := h.uc.ListApproved(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"applications": apps})
}

// All godoc
// @Summary  Every application, optionally by status
// @Tags     applications
// @Produce  json
// @Param    status query string false "pending, approved, rejected, cancelled or all"
// @Success  200 {object} map[string]any
// @Router   /api/applications/all [get]
func (h *ApplicationHandler) All(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	apps, err := h.uc.ListAll(c.Request().Context(), who, c.QueryParam("status"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"applications": apps})
}

// Get godoc
// @Summary  One application
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id"
// @Success  200 {object} map[string]any
// @Router   /api/applications/{id} [get]
func (h *ApplicationHandler) Get(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), who, appID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"application": dto})
}

// Approve godoc
// @Summary  Approve a pending application
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id"
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]any "not pending"
// @Router   /api/applications/{id}/approve [patch]
func (h *ApplicationHandler) Approve(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.Approve(c.Request().Context(), who, appID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Application approved successfully", echo.Map{"application": dto})
}

// Reject godoc
// @Summary  Reject a pending application
// @Tags     applications
// @Accept   json
// @Produce  json
// @Param    id   path string    true "application id"
// @Param    body body rejectReq false "reason"
// @Success  200 {object} map[string]any
// @Router   /api/applications/{id}/reject [patch]
func (h *ApplicationHandler) Reject(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req rejectReq
	if c.Request().ContentLength != 0 {
		if err := bindStrict(c, &req); err != nil {
			return err
		}
	}
	dto, err := h.uc.Reject(c.Request().Context(), who, appID, req.Reason)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Application rejected", echo.Map{"application": dto})
}

// Cancel godoc
// @Summary  Withdraw your own pending application
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id"
// @Success  200 {object} map[string]any
// @Router   /api/applications/{id}/cancel [patch]
func (h *ApplicationHandler) Cancel(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.Cancel(c.Request().Context(), who, appID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Application cancelled", echo.Map{"application": dto})
}
