package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/bias-aware-recruitment/internal/logger"
	"alfredoptarigan/bias-aware-recruitment/internal/models"
	"alfredoptarigan/bias-aware-recruitment/internal/predictor"
	"alfredoptarigan/bias-aware-recruitment/internal/services"
)

// resumeField is the multipart field carrying the resume PDF.
const resumeField = "resume"

type UploadHandler struct {
	candidates     services.CandidateService
	storageService services.StorageService
	validate       *validator.Validate
	maxFileSize    int64
	keepUploads    bool
	log            *zap.Logger
}

func NewUploadHandler(
	candidates services.CandidateService,
	storageService services.StorageService,
	validate *validator.Validate,
	maxFileSize int64,
	keepUploads bool,
	log *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		candidates:     candidates,
		storageService: storageService,
		validate:       validate,
		maxFileSize:    maxFileSize,
		keepUploads:    keepUploads,
		log:            logger.WithFields(log),
	}
}

// HandleUpload handles POST /upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	files := form.File[resumeField]
	if len(files) == 0 {
		// A part with an empty filename is parsed as a plain form value.
		if _, ok := form.Value[resumeField]; ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No file selected",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	file := files[0]
	if strings.TrimSpace(file.Filename) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file selected",
		})
	}

	if !services.IsPDF(file.Filename) {
		h.log.Warn("rejected upload", zap.String(logger.FieldFilename, file.Filename))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are allowed",
		})
	}

	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	var opts models.UploadOptions
	if err := c.BodyParser(&opts); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := h.validate.Struct(opts); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": models.ValidationMessage(err),
		})
	}

	stored, err := h.storageService.SaveUpload(file)
	if err != nil {
		h.log.Error("failed to store upload", zap.String(logger.FieldFilename, file.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Error processing resume: %v", err),
		})
	}
	if !h.keepUploads {
		defer func() {
			if err := h.storageService.Delete(stored.Name); err != nil {
				h.log.Warn("failed to remove upload", zap.String("stored_as", stored.Name), zap.Error(err))
			}
		}()
	}

	assessment, err := h.candidates.ScoreFile(c.UserContext(), stored.Path, file.Filename, predictor.Options{
		TargetRole:     opts.TargetRole,
		CompanyCulture: opts.CompanyCulture,
	})
	if err != nil {
		msg := pipelineMessage(err)
		h.log.Error(msg, zap.String(logger.FieldFilename, file.Filename))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msg,
		})
	}

	return c.JSON(assessment.Response())
}

func pipelineMessage(err error) string {
	var stageErr *services.StageError
	if errors.As(err, &stageErr) {
		switch stageErr.Stage {
		case services.StageParse:
			return fmt.Sprintf("Error parsing resume: %v", stageErr.Err)
		case services.StagePredict:
			return fmt.Sprintf("Error making prediction: %v", stageErr.Err)
		}
	}
	return fmt.Sprintf("Error processing resume: %v", err)
}
