package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loanlink-backend/internal/adapter/middleware"
	"loanlink-backend/internal/domain/policy"
	"loanlink-backend/internal/usecase/user"
)

type UserHandler struct{ uc *user.Usecase }

func NewUserHandler(uc *user.Usecase) *UserHandler { return &UserHandler{uc: uc} }

type updateProfileReq struct {
	Name     *string `json:"name"     validate:"omitempty,min=1,max=120"`
	PhotoURL *string `json:"photoURL" validate:"omitempty,url"`
}

type roleReq struct {
	Role string `json:"role" validate:"required,role"`
}

type suspendReq struct {
	Reason          string `json:"reason"          validate:"required,max=500"`
	Feedback        string `json:"feedback"        validate:"max=2000"`
	DurationMinutes int    `json:"durationMinutes" validate:"min=0,max=5256000"`
}

// actor is the resolved caller; routes without Authenticate never reach it.
func actor(c echo.Context) (policy.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return policy.Identity{}, policy.ErrUnauthenticated
	}
	return id, nil
}

// Me godoc
// @Summary  Current user
// @Tags     users
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.Me(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"user": dto})
}

// UpdateProfile godoc
// @Summary  Update name or photo
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body updateProfileReq true "profile"
// @Success  200 {object} map[string]any
// @Router   /api/users/me [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	var req updateProfileReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.UpdateProfile(c.Request().Context(), who, user.ProfileInput{Name: req.Name, PhotoURL: req.PhotoURL})
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Profile updated successfully", echo.Map{"user": dto})
}

// SelectRole godoc
// @Summary  Pick a role while none is set
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body roleReq true "borrower or manager"
// @Success  200 {object} map[string]any
// @Router   /api/users/me/role [patch]
func (h *UserHandler) SelectRole(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	var req roleReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.SelectRole(c.Request().Context(), who, req.Role)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Role updated successfully", echo.Map{"user": dto})
}

// ListUsers godoc
// @Summary  All users, optionally by role
// @Tags     admin
// @Produce  json
// @Param    role query string false "role filter"
// @Success  200 {object} map[string]any
// @Router   /api/admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	users, err := h.uc.ListUsers(c.Request().Context(), who, c.QueryParam("role"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"users": users})
}

// ListBorrowers godoc
// @Summary  Borrowers visible to a manager
// @Tags     manager
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/manager/borrowers [get]
func (h *UserHandler) ListBorrowers(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	users, err := h.uc.ListBorrowers(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", echo.Map{"users": users})
}

// ChangeRole godoc
// @Summary  Change another user's role
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    id   path string  true "user id"
// @Param    body body roleReq true "role"
// @Success  200 {object} map[string]any
// @Router   /api/admin/users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	target, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req roleReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.ChangeRole(c.Request().Context(), who, target, req.Role)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "User role updated successfully", echo.Map{"user": dto})
}

// Suspend godoc
// @Summary  Suspend a user
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    id   path string     true "user id"
// @Param    body body suspendReq true "reason, feedback, duration"
// @Success  200 {object} map[string]any
// @Router   /api/admin/users/{id}/suspend [patch]
func (h *UserHandler) Suspend(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	target, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req suspendReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.Suspend(c.Request().Context(), who, target, user.SuspendInput{
		Reason:          req.Reason,
		Feedback:        req.Feedback,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "User suspended successfully", echo.Map{"user": dto})
}

// Unsuspend godoc
// @Summary  Lift a suspension
// @Tags     admin
// @Produce  json
// @Param    id path string true "user id"
// @Success  200 {object} map[string]any
// @Router   /api/admin/users/{id}/unsuspend [patch]
func (h *UserHandler) Unsuspend(c echo.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	target, err := pathID(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.uc.Unsuspend(c.Request().Context(), who, target)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "User unsuspended successfully", echo.Map{"user": dto})
}
