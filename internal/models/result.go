package models

import (
	"alfredoptarigan/bias-aware-recruitment/internal/fairness"
	"alfredoptarigan/bias-aware-recruitment/internal/parser"
	"alfredoptarigan/bias-aware-recruitment/internal/predictor"
)

// UploadOptions are the optional form fields of a resume upload.
type UploadOptions struct {
	TargetRole     string `form:"target_role" validate:"omitempty,target_role"`
	CompanyCulture string `form:"company_culture" validate:"omitempty,company_culture"`
}

// UploadResponse is the scoring result of one resume. The prediction fields
// are inlined at the top level.
type UploadResponse struct {
	*predictor.PredictionResult
	AssessmentID string          `json:"assessment_id"`
	Filename     string          `json:"filename"`
	StructuredBy string          `json:"structured_by"`
	Sections     parser.Sections `json:"sections"`
	Features     parser.Features `json:"features"`
}

type EvaluateBiasRequest struct {
	Data *fairness.Dataset `json:"data" validate:"required"`
}

type FairnessResponse struct {
	*fairness.Report
	AuditID string `json:"audit_id"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Persistence bool   `json:"persistence"`
	Structurer  string `json:"structurer"`
}
