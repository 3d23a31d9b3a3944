package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{ version string }

func NewHandler(version string) *Handler { return &Handler{version: version} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Root summarises what the API offers.
func (h *Handler) Root(c echo.Context) error {
	return success(c, http.StatusOK, "LoanLink API is running", echo.Map{
		"version": h.version,
		"features": []string{
			"federated and password sign-in with cookie sessions",
			"loan catalog with home page curation",
			"application fee checkout with webhook and poll reconciliation",
			"manager review of applications on owned loans",
			"user governance with timed suspensions",
			"role-scoped dashboard statistics",
		},
		"docs": "/swagger/index.html",
	})
}
