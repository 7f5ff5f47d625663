// Package schemas validates JSON documents against the embedded JSON Schemas.
package schemas

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	//go:embed resume_sections.schema.json
	resumeSectionsSchema string

	//go:embed fairness_dataset.schema.json
	fairnessDatasetSchema string
)

// ErrSchemaViolation is wrapped by every error reporting a document that does
// not match its schema.
var ErrSchemaViolation = errors.New("document does not match schema")

var (
	resumeSections  = mustCompile("resume_sections", resumeSectionsSchema)
	fairnessDataset = mustCompile("fairness_dataset", fairnessDatasetSchema)
)

// The schemas are embedded, so a compile failure is a build defect.
func mustCompile(name, content string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		panic(fmt.Sprintf("schemas: %s: %v", name, err))
	}
	return schema
}

// ValidateResumeSections checks a structuring reply before it is decoded.
func ValidateResumeSections(jsonContent string) error {
	return validate(resumeSections, jsonContent)
}

// ValidateFairnessDataset checks a fairness dataset document.
func ValidateFairnessDataset(jsonContent string) error {
	return validate(fairnessDataset, jsonContent)
}

func validate(schema *gojsonschema.Schema, jsonContent string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(violations, "; "))
}
