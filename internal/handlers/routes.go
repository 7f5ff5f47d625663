package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the route handlers. Result is nil when persistence is
// disabled and its routes are not registered.
type Handlers struct {
	Health   *HealthHandler
	Upload   *UploadHandler
	Fairness *FairnessHandler
	Result   *ResultHandler
}

// RegisterRoutes mounts the API under /api/v1 and keeps the unversioned
// /upload and /evaluate_bias paths for existing clients.
func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/", h.Health.HandleIndex)
	app.Post("/upload", h.Upload.HandleUpload)
	app.Post("/evaluate_bias", h.Fairness.HandleEvaluateBias)

	api := app.Group("/api/v1")
	api.Get("/health", h.Health.HandleHealth)
	api.Post("/upload", h.Upload.HandleUpload)
	api.Post("/evaluate_bias", h.Fairness.HandleEvaluateBias)
	api.Post("/evaluate_bias/export", h.Fairness.HandleExport)

	if h.Result != nil {
		api.Get("/assessments", h.Result.HandleListAssessments)
		api.Get("/assessments/:id", h.Result.HandleGetAssessment)
		api.Get("/fairness/:id", h.Result.HandleGetFairnessAudit)
	}
}

// ErrorHandler renders errors that escaped a handler as {"error", "code"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
