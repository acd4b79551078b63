package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/artem13815/mockinterview/docs"

	httpapi "github.com/artem13815/mockinterview/api/http"
	"github.com/artem13815/mockinterview/api/http/handlers"
	"github.com/artem13815/mockinterview/api/http/middleware"
	"github.com/artem13815/mockinterview/pkg/admin"
	"github.com/artem13815/mockinterview/pkg/auth"
	"github.com/artem13815/mockinterview/pkg/config"
	"github.com/artem13815/mockinterview/pkg/health"
	"github.com/artem13815/mockinterview/pkg/health/checkers"
	"github.com/artem13815/mockinterview/pkg/interview"
	"github.com/artem13815/mockinterview/pkg/metrics"
	"github.com/artem13815/mockinterview/pkg/resume"
	"github.com/artem13815/mockinterview/pkg/security/jwt"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP API (default command)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()
	if err := st.migrate(ctx, cfg.DBDriver, log); err != nil {
		return err
	}

	prompts, err := config.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	model, guarded, modelName, err := newChatModel(ctx, cfg, m, log)
	if err != nil {
		return err
	}

	// Token generator
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authUC := auth.NewAuthService(st.users, jwtGen, cfg.AdminCode)

	interviewUC := interview.NewService(st.sessions, model,
		interview.WithLogger(log.Named("interview")),
		interview.WithMetrics(m),
		interview.WithPrompts(prompts.Interview))
	adminUC := admin.NewService(st.users, st.sessions, log.Named("admin"))
	resumeUC := resume.NewService(model, modelName, prompts.Resume, log.Named("resume"))

	// Health service: compose checkers
	readiness := health.NewService(st.checker, checkers.NewBreakerChecker(guarded))

	limiter := middleware.NewLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer limiter.Close()

	app := fiber.New(fiber.Config{
		AppName:               appName,
		BodyLimit:             cfg.UploadMaxBytes + 1<<20,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log.Named("http"), m))

	httpapi.Register(app, httpapi.Handlers{
		Auth:      handlers.NewAuthHandler(authUC),
		Health:    handlers.NewHealthHandler(readiness),
		Interview: handlers.NewInterviewHandler(interviewUC, log.Named("http")),
		Admin:     handlers.NewAdminHandler(adminUC, log.Named("http")),
		Resume:    handlers.NewResumeHandler(resumeUC, int64(cfg.UploadMaxBytes), log.Named("http")),
	}, httpapi.Middleware{
		Auth:      jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		Admin:     jwt.RequireAdmin(),
		RateLimit: middleware.RateLimit(limiter, log.Named("ratelimit")),
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
