package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/mockinterview/api/http/presenter"
	"github.com/artem13815/mockinterview/pkg/health"
)

const readinessTimeout = 2 * time.Second

type statusResponse struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status string               `json:"status"`
	Checks []health.CheckResult `json:"checks"`
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct{ svc health.ReadinessUseCase }

func NewHealthHandler(svc health.ReadinessUseCase) *HealthHandler { return &HealthHandler{svc: svc} }

// Health reports that the process is serving.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} statusResponse
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, statusResponse{Status: "ok"})
}

// Ready checks the store and the model breaker, one entry per dependency.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()
	rep := h.svc.Report(ctx)
	if !rep.Ready {
		return presenter.JSON(c, http.StatusServiceUnavailable, readinessResponse{Status: "not_ready", Checks: rep.Checks})
	}
	return presenter.JSON(c, http.StatusOK, readinessResponse{Status: "ready", Checks: rep.Checks})
}
