package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"

	mw "loanlink-backend/internal/adapter/middleware"
	"loanlink-backend/internal/domain/user"
)

// Handlers groups every resource handler mounted by Register.
type Handlers struct {
	Base         *Handler
	Auth         *AuthHandler
	Users        *UserHandler
	Loans        *LoanHandler
	Applications *ApplicationHandler
	Payments     *PaymentHandler
	Dashboard    *DashboardHandler
}

type Deps struct {
	Tokens     mw.TokenValidator
	Sessions   mw.SessionResolver
	CookieName string
	Redis      *redis.Client
	IdempTTL   time.Duration
	Dev        bool
}

// Register wires validation, error rendering and routes.
func Register(e *echo.Echo, d Deps, h Handlers) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewErrorHandler(d.Dev)

	authed := mw.Authenticate(d.Tokens, d.Sessions, d.CookieName)
	active := mw.RequireActive()
	borrower := mw.RequireRole(user.RoleBorrower)
	manager := mw.RequireRole(user.RoleManager)
	admin := mw.RequireRole(user.RoleAdmin)

	e.GET("/", h.Base.Root)
	e.GET("/health", h.Base.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	a := api.Group("/auth")
	a.POST("/jwt", h.Auth.Login)
	a.POST("/register", h.Auth.Register)
	a.POST("/login", h.Auth.PasswordLogin)
	a.POST("/logout", h.Auth.Logout, authed)

	u := api.Group("/users", authed)
	u.GET("/me", h.Users.Me)
	u.PATCH("/me", h.Users.UpdateProfile, active)
	u.PATCH("/me/role", h.Users.SelectRole)

	l := api.Group("/loans")
	l.GET("", h.Loans.List)
	l.GET("/home", h.Loans.Home)
	l.GET("/featured", h.Loans.Home)
	l.GET("/:id", h.Loans.Get)
	l.POST("", h.Loans.Create, authed, manager, active)
	l.PUT("/:id", h.Loans.Update, authed, manager, active)
	l.DELETE("/:id", h.Loans.Delete, authed, manager, active)
	l.PATCH("/:id/toggle-home", h.Loans.ToggleHome, authed, admin)

	ap := api.Group("/applications", authed)
	ap.GET("/my-applications", h.Applications.Mine)
	ap.GET("/pending", h.Applications.Pending, manager)
	ap.GET("/approved", h.Applications.Approved, manager)
	ap.GET("/all", h.Applications.All, admin)
	ap.GET("/:id", h.Applications.Get)
	ap.PATCH("/:id/approve", h.Applications.Approve, manager, active)
	ap.PATCH("/:id/reject", h.Applications.Reject, manager, active)
	ap.PATCH("/:id/cancel", h.Applications.Cancel, active)

	p := api.Group("/payments")
	p.POST("/webhook", h.Payments.Webhook)
	p.POST("/checkout", h.Payments.Checkout, authed, borrower, active, mw.Idempotency(d.Redis, d.IdempTTL))
	p.POST("/confirm-session", h.Payments.ConfirmSession, authed)
	p.GET("/history", h.Payments.History, authed)
	p.GET("/receipt/:sessionId", h.Payments.Receipt, authed)
	p.GET("/application/:applicationId", h.Payments.ByApplication, authed)

	m := api.Group("/manager", authed, manager)
	m.GET("/loans", h.Loans.Mine)
	m.GET("/borrowers", h.Users.ListBorrowers)
	m.PATCH("/borrowers/:id/suspend", h.Users.Suspend, active)
	m.PATCH("/borrowers/:id/unsuspend", h.Users.Unsuspend, active)

	ad := api.Group("/admin", authed, admin)
	ad.GET("/users", h.Users.ListUsers)
	ad.PATCH("/users/:id/role", h.Users.ChangeRole)
	ad.PATCH("/users/:id/suspend", h.Users.Suspend)
	ad.PATCH("/users/:id/unsuspend", h.Users.Unsuspend)

	api.GET("/dashboard/stats", h.Dashboard.Stats, authed)
}
