package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	_ "loanlink-backend/docs" // swagger docs

	httpadp "loanlink-backend/internal/adapter/http"
	mw "loanlink-backend/internal/adapter/middleware"
	"loanlink-backend/internal/adapter/processor/stripe"
	mysqlrepo "loanlink-backend/internal/adapter/repository/mysql"
	"loanlink-backend/internal/auth"
	"loanlink-backend/internal/config"
	domainPay "loanlink-backend/internal/domain/payment"
	"loanlink-backend/internal/infrastructure/cache"
	"loanlink-backend/internal/infrastructure/db"
	"loanlink-backend/internal/infrastructure/scheduler"
	"loanlink-backend/internal/logger"
	appUC "loanlink-backend/internal/usecase/application"
	dashUC "loanlink-backend/internal/usecase/dashboard"
	loanUC "loanlink-backend/internal/usecase/loan"
	payUC "loanlink-backend/internal/usecase/payment"
	sessionUC "loanlink-backend/internal/usecase/session"
	userUC "loanlink-backend/internal/usecase/user"
)

const version = "1.0.0"

// @title LoanLink API
// @version 1.0
// @description Loan marketplace: catalog, applications with a paid fee, and role based moderation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config: invalid", "error", err)
	}
	logger.SetLogger(logger.New(cfg.IsDev()))

	gormDB, err := db.OpenGorm(cfg.MySQLDSN(), cfg.IsDev())
	if err != nil {
		logger.Fatal("db: open failed", "error", err)
	}
	if err := gormDB.AutoMigrate(mysqlrepo.Models()...); err != nil {
		logger.Fatal("db: auto-migrate failed", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("db: handle", "error", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatal("redis: connect failed", "error", err)
	}

	// repositories
	users := mysqlrepo.NewUserRepository(gormDB)
	loans := mysqlrepo.NewLoanRepository(gormDB)
	apps := mysqlrepo.NewApplicationRepository(gormDB)
	pays := mysqlrepo.NewPaymentRepository(gormDB)
	tx := mysqlrepo.NewGormUoW(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cache.NewClient(rdb))

	var verifier domainPay.EventVerifier
	if cfg.Stripe.WebhookSecret != "" {
		verifier = stripe.NewWebhookVerifier(cfg.Stripe.WebhookSecret)
	} else {
		logger.Warn("stripe: STRIPE_WEBHOOK_SECRET unset, webhook signatures are not checked")
	}
	processor := stripe.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.APIBase)

	// usecases
	sessions := sessionUC.NewUsecase(users, jwtService, tokenStore)
	userService := userUC.NewUsecase(users)
	loanService := loanUC.NewUsecase(loans)
	appService := appUC.NewUsecase(loans, apps, tx)
	payService := payUC.NewUsecase(loans, apps, pays, tx, processor, verifier, cfg.ClientURL)
	dashService := dashUC.NewUsecase(users, loans, apps, pays)

	jobs := scheduler.New(30 * time.Second)
	err = jobs.Add("suspension-sweep", cfg.SuspensionSweepSpec, func(ctx context.Context) error {
		n, err := userService.SweepExpiredSuspensions(ctx)
		if n > 0 {
			logger.Info("scheduler: suspensions lifted", "count", n)
		}
		return err
	})
	if err != nil {
		logger.Fatal("scheduler: bad spec", "spec", cfg.SuspensionSweepSpec, "error", err)
	}
	jobs.Start()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(mw.RequestID())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("request_id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Default().LogAttrs(c.Request().Context(), level, "http request", attrs...)
			return nil
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Origins(),
		AllowCredentials: true,
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, mw.IdempotencyKeyHeader, echo.HeaderXRequestID,
		},
	}))
	e.Use(mw.Metrics())

	httpadp.Register(e, httpadp.Deps{
		Tokens:     jwtService,
		Sessions:   sessions,
		CookieName: cfg.Cookie.Name,
		Redis:      rdb,
		IdempTTL:   time.Duration(cfg.IdempTTLSecs) * time.Second,
		Dev:        cfg.IsDev(),
	}, httpadp.Handlers{
		Base:         httpadp.NewHandler(version),
		Auth:         httpadp.NewAuthHandler(sessions, cfg.Cookie),
		Users:        httpadp.NewUserHandler(userService),
		Loans:        httpadp.NewLoanHandler(loanService),
		Applications: httpadp.NewApplicationHandler(appService),
		Payments:     httpadp.NewPaymentHandler(payService, stripe.SignatureHeader),
		Dashboard:    httpadp.NewDashboardHandler(dashService),
	})

	go func() {
		addr := ":" + cfg.AppPort
		logger.Info("server: listening", "addr", addr, "mode", cfg.AppMode)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server: start failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server: shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("server: shutdown", "error", err)
	}
	jobs.Stop(ctx)
	if err := rdb.Close(); err != nil {
		logger.Warn("redis: close", "error", err)
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("db: close", "error", err)
	}
	logger.Info("server: stopped")
}
