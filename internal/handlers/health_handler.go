package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/bias-aware-recruitment/internal/models"
)

const (
	appName    = "Bias-Aware Recruitment API"
	appVersion = "1.0.0"
)

type HealthHandler struct {
	persistence bool
	structurer  string
}

func NewHealthHandler(persistence bool, structurer string) *HealthHandler {
	return &HealthHandler{
		persistence: persistence,
		structurer:  structurer,
	}
}

// HandleHealth handles GET /health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:      "healthy",
		Persistence: h.persistence,
		Structurer:  h.structurer,
	})
}

// HandleIndex handles GET /
func (h *HealthHandler) HandleIndex(c *fiber.Ctx) error {
	endpoints := []string{
		"GET /api/v1/health",
		"POST /api/v1/upload",
		"POST /api/v1/evaluate_bias",
		"POST /api/v1/evaluate_bias/export",
	}
	if h.persistence {
		endpoints = append(endpoints,
			"GET /api/v1/assessments",
			"GET /api/v1/assessments/:id",
			"GET /api/v1/fairness/:id",
		)
	}

	return c.JSON(fiber.Map{
		"message":   "Bias-Aware Recruitment System Backend Running!",
		"name":      appName,
		"version":   appVersion,
		"endpoints": endpoints,
	})
}
