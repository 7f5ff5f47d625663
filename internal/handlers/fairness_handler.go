package handlers

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/bias-aware-recruitment/internal/export"
	"alfredoptarigan/bias-aware-recruitment/internal/fairness"
	"alfredoptarigan/bias-aware-recruitment/internal/logger"
	"alfredoptarigan/bias-aware-recruitment/internal/models"
	"alfredoptarigan/bias-aware-recruitment/internal/services"
)

type FairnessHandler struct {
	fairnessService services.FairnessService
	validate        *validator.Validate
	log             *zap.Logger
}

func NewFairnessHandler(fairnessService services.FairnessService, validate *validator.Validate, log *zap.Logger) *FairnessHandler {
	return &FairnessHandler{
		fairnessService: fairnessService,
		validate:        validate,
		log:             logger.WithFields(log),
	}
}

// HandleEvaluateBias handles POST /evaluate_bias
func (h *FairnessHandler) HandleEvaluateBias(c *fiber.Ctx) error {
	result, rejection := h.evaluate(c)
	if rejection != nil {
		return h.reject(c, rejection)
	}

	return c.JSON(models.FairnessResponse{
		Report:  result.Report,
		AuditID: result.AuditID.String(),
	})
}

// HandleExport handles POST /evaluate_bias/export
func (h *FairnessHandler) HandleExport(c *fiber.Ctx) error {
	result, rejection := h.evaluate(c)
	if rejection != nil {
		return h.reject(c, rejection)
	}

	var buf bytes.Buffer
	if err := export.WriteFairnessReport(&buf, result.Report, result.AuditID.String()); err != nil {
		h.log.Error("failed to export fairness report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error exporting fairness report",
		})
	}

	c.Attachment(fmt.Sprintf("fairness_%s.xlsx", result.AuditID))
	c.Set(fiber.HeaderContentType, export.ContentType)
	return c.Send(buf.Bytes())
}

type rejection struct {
	status int
	msg    string
	cause  error
}

// evaluate parses the request and runs the evaluation.
func (h *FairnessHandler) evaluate(c *fiber.Ctx) (*services.FairnessResult, *rejection) {
	var req models.EvaluateBiasRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, &rejection{fiber.StatusBadRequest, "Invalid request payload", err}
	}

	if err := h.validate.Struct(req); err != nil || isEmptyDataset(req.Data) {
		return nil, &rejection{fiber.StatusBadRequest, "No data provided", err}
	}

	result, err := h.fairnessService.Evaluate(c.UserContext(), *req.Data)
	if err != nil {
		if errors.Is(err, fairness.ErrMissingInput) {
			return nil, &rejection{fiber.StatusBadRequest, fairness.MissingInputMessage, err}
		}
		return nil, &rejection{fiber.StatusInternalServerError, "Error evaluating bias", err}
	}

	return result, nil
}

func (h *FairnessHandler) reject(c *fiber.Ctx, r *rejection) error {
	h.log.Error(r.msg, zap.Int("status", r.status), zap.NamedError("cause", r.cause))
	return c.Status(r.status).JSON(fiber.Map{
		"error": r.msg,
	})
}

func isEmptyDataset(d *fairness.Dataset) bool {
	return d == nil || (len(d.Predictions) == 0 && len(d.ProtectedAttributes) == 0 && len(d.Labels) == 0)
}
