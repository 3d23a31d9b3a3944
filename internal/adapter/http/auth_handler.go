package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loanlink-backend/internal/adapter/middleware"
	"loanlink-backend/internal/config"
	"loanlink-backend/internal/logger"
	"loanlink-backend/internal/usecase/session"
)

type AuthHandler struct {
	uc     *session.Usecase
	cookie config.CookieConfig
}

func NewAuthHandler(uc *session.Usecase, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"omitempty,max=120"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
	Role     string `json:"role"     validate:"omitempty,oneof=borrower manager"`
}

type registerReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"omitempty,max=120"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
	Role     string `json:"role"     validate:"omitempty,oneof=borrower manager"`
}

type passwordLoginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login godoc
// @Summary  Sign in with an externally verified identity
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body loginReq true "identity"
// @Success  200 {object} map[string]any
// @Failure  403 {object} map[string]any "suspended"
// @Router   /api/auth/jwt [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	res, err := h.uc.Login(c.Request().Context(), session.LoginInput{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return h.signedIn(c, http.StatusOK, "Login successful", res)
}

// Register godoc
// @Summary  Create a password account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body registerReq true "account"
// @Success  201 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Router   /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	res, err := h.uc.Register(c.Request().Context(), session.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return h.signedIn(c, http.StatusCreated, "Registration successful", res)
}

// PasswordLogin godoc
// @Summary  Sign in with email and password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body passwordLoginReq true "credentials"
// @Success  200 {object} map[string]any
// @Failure  401 {object} map[string]any
// @Router   /api/auth/login [post]
func (h *AuthHandler) PasswordLogin(c echo.Context) error {
	var req passwordLoginReq
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	res, err := h.uc.PasswordLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.signedIn(c, http.StatusOK, "Login successful", res)
}

// Logout godoc
// @Summary  Revoke the current session
// @Tags     auth
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	if err := h.uc.Logout(c.Request().Context(), claims); err != nil {
		// the cookie is cleared regardless; the token just stays valid until expiry
		logger.WarnContext(c.Request().Context(), "logout: revoke failed", "error", err)
	}
	c.SetCookie(h.sessionCookie("", time.Unix(0, 0), -1))
	return success(c, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) signedIn(c echo.Context, code int, msg string, res *session.AuthResult) error {
	c.SetCookie(h.sessionCookie(res.Token, res.ExpiresAt, int(time.Until(res.ExpiresAt).Seconds())))
	return success(c, code, msg, echo.Map{"token": res.Token, "user": res.User})
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	}
}
