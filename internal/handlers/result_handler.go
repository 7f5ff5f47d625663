package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/bias-aware-recruitment/internal/repositories"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ResultHandler serves stored assessments and fairness audits.
type ResultHandler struct {
	assessments repositories.AssessmentRepository
	audits      repositories.FairnessAuditRepository
}

func NewResultHandler(assessments repositories.AssessmentRepository, audits repositories.FairnessAuditRepository) *ResultHandler {
	return &ResultHandler{
		assessments: assessments,
		audits:      audits,
	}
}

// HandleGetAssessment handles GET /assessments/:id
func (h *ResultHandler) HandleGetAssessment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid assessment ID format",
		})
	}

	assessment, err := h.assessments.FindByID(id)
	if err != nil {
		return notFoundOr(c, err, "Assessment not found", "Failed to load assessment")
	}

	return c.JSON(assessment)
}

// HandleListAssessments handles GET /assessments. Payloads are omitted.
func (h *ResultHandler) HandleListAssessments(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "limit must be between 1 and 100",
		})
	}

	assessments, err := h.assessments.ListRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list assessments",
		})
	}

	return c.JSON(fiber.Map{
		"assessments": assessments,
		"count":       len(assessments),
	})
}

// HandleGetFairnessAudit handles GET /fairness/:id
func (h *ResultHandler) HandleGetFairnessAudit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid audit ID format",
		})
	}

	audit, err := h.audits.FindByID(id)
	if err != nil {
		return notFoundOr(c, err, "Fairness audit not found", "Failed to load fairness audit")
	}

	return c.JSON(audit)
}

func notFoundOr(c *fiber.Ctx, err error, notFound, failed string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": notFound,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": failed,
	})
}
