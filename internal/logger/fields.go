package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldAssessmentID is the structured log field key for a candidate assessment.
	FieldAssessmentID = "assessment_id"
	// FieldFilename is the structured log field key for the uploaded resume name.
	FieldFilename = "filename"
	// FieldStructurer names the component that produced the resume sections.
	FieldStructurer = "structured_by"
	// FieldModel is the structured log field key for the LLM model identifier.
	FieldModel = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// AssessmentFields describes one scoring request. Empty values are dropped.
func AssessmentFields(assessmentID, filename string) []zap.Field {
	return StringFields(
		StringField{Key: FieldAssessmentID, Value: assessmentID},
		StringField{Key: FieldFilename, Value: filename},
	)
}

// WithAssessment attaches the assessment fields to logger.
func WithAssessment(logger *zap.Logger, assessmentID, filename string) *zap.Logger {
	return WithFields(logger, AssessmentFields(assessmentID, filename)...)
}
