package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Akm1923/FutureProof-AI/api/http/presenter"
	"github.com/Akm1923/FutureProof-AI/pkg/health"
)

type HealthHandler struct {
	readiness health.ReadinessUseCase
}

func NewHealthHandler(readiness health.ReadinessUseCase) *HealthHandler {
	return &HealthHandler{readiness: readiness}
}

// Health is a liveness probe; it answers as long as the process is up.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": "healthy"})
}

// Ready checks downstream dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := h.readiness.Ready(c.Context()); err != nil {
		return presenter.Error(c, http.StatusServiceUnavailable, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": "ready"})
}
