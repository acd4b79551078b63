package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/mockinterview/api/http/handlers"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Health    *handlers.HealthHandler
	Interview *handlers.InterviewHandler
	Admin     *handlers.AdminHandler
	Resume    *handlers.ResumeHandler
}

// Middleware groups the route guards. RateLimit may be nil.
type Middleware struct {
	Auth      fiber.Handler
	Admin     fiber.Handler
	RateLimit fiber.Handler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, mw Middleware) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	authMW := mw.Auth
	limit := mw.RateLimit
	if limit == nil {
		limit = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Interview session lifecycle; calls that reach the model are rate limited
	v1.Post("/start-interview", authMW, limit, h.Interview.Start)
	v1.Post("/answer", authMW, limit, h.Interview.Answer)
	v1.Post("/interview-summary", authMW, h.Interview.Summary)
	v1.Post("/ideal-answers", authMW, limit, h.Interview.IdealAnswers)
	v1.Get("/my-interviews", authMW, h.Interview.ListMine)

	rg := v1.Group("/resume", authMW)
	rg.Post("/extract", h.Resume.Extract)
	rg.Post("/analyze", limit, h.Resume.Analyze)

	adm := v1.Group("/admin", authMW, mw.Admin)
	adm.Get("/all-interviews", h.Admin.ListInterviews)
	adm.Get("/users", h.Admin.ListUsers)
	adm.Put("/users/:id", h.Admin.UpdateRole)
	adm.Delete("/users/:id", h.Admin.DeleteUser)
	adm.Get("/users/:id/interviews", h.Admin.UserInterviews)
	adm.Delete("/interviews/:id", h.Admin.DeleteInterview)
}
