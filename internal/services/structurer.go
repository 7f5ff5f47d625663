package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/bias-aware-recruitment/internal/logger"
	"alfredoptarigan/bias-aware-recruitment/internal/parser"
	"alfredoptarigan/bias-aware-recruitment/internal/schemas"
)

// SourceGemini identifies resumes structured by the Gemini collaborator.
const SourceGemini = "gemini"

const structuringTemperature = 0.1

// ErrInvalidStructure is returned when a structuring reply does not have the
// expected section shape.
var ErrInvalidStructure = errors.New("invalid structuring reply")

// ResumeStructurer produces resume sections and names the structurer that
// produced them.
type ResumeStructurer interface {
	StructureResume(ctx context.Context, text string) (parser.Sections, string, error)
	Primary() string
}

type geminiStructurer struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
}

// NewGeminiStructurer returns a parser.Structurer backed by Gemini.
func NewGeminiStructurer(gemini GeminiService) parser.Structurer {
	return &geminiStructurer{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
	}
}

// Structure implements parser.Structurer.
func (s *geminiStructurer) Structure(ctx context.Context, text string) (parser.Sections, error) {
	if strings.TrimSpace(text) == "" {
		return parser.Sections{}, parser.ErrEmptyText
	}

	response, err := s.gemini.GenerateJSON(ctx, s.promptBuilder.BuildResumeStructuringPrompt(text), structuringTemperature)
	if err != nil {
		return parser.Sections{}, fmt.Errorf("failed to structure resume: %w", err)
	}

	return parseSectionsResponse(response)
}

func parseSectionsResponse(response string) (parser.Sections, error) {
	// LLM might wrap the JSON in markdown
	jsonStr := extractJSON(response)

	if err := schemas.ValidateResumeSections(jsonStr); err != nil {
		return parser.Sections{}, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}

	var sections parser.Sections
	if err := json.Unmarshal([]byte(jsonStr), &sections); err != nil {
		return parser.Sections{}, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}

	return sections.Normalized(), nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	return strings.TrimSpace(text)
}

type heuristicStructurer struct {
	heuristic *parser.Parser
}

// StructureResume implements ResumeStructurer.
func (h *heuristicStructurer) StructureResume(ctx context.Context, text string) (parser.Sections, string, error) {
	sections, err := h.heuristic.Structure(ctx, text)
	return sections, parser.SourceHeuristic, err
}

// Primary implements ResumeStructurer.
func (h *heuristicStructurer) Primary() string {
	return parser.SourceHeuristic
}

type fallbackStructurer struct {
	primary   parser.Structurer
	source    string
	heuristic *parser.Parser
	log       *zap.Logger
}

// NewFallbackStructurer tries primary first and recovers any failure with the
// heuristic parser.
func NewFallbackStructurer(primary parser.Structurer, source string, heuristic *parser.Parser, log *zap.Logger) ResumeStructurer {
	return &fallbackStructurer{
		primary:   primary,
		source:    source,
		heuristic: heuristic,
		log:       logger.WithFields(log, zap.String("primary", source)),
	}
}

// StructureResume implements ResumeStructurer.
func (f *fallbackStructurer) StructureResume(ctx context.Context, text string) (parser.Sections, string, error) {
	if strings.TrimSpace(text) == "" {
		return parser.Sections{}, "", parser.ErrEmptyText
	}

	sections, err := f.primary.Structure(ctx, text)
	if err == nil {
		return sections, f.source, nil
	}

	f.log.Warn("structuring collaborator failed, using heuristic extraction", zap.Error(err))

	sections, err = f.heuristic.Structure(ctx, text)
	return sections, parser.SourceHeuristic, err
}

// Primary implements ResumeStructurer.
func (f *fallbackStructurer) Primary() string {
	return f.source
}

// NewStructurer selects the structuring capability. With a Gemini service the
// heuristic parser is the fallback; without one it is the only path.
func NewStructurer(gemini GeminiService, heuristic *parser.Parser, log *zap.Logger) ResumeStructurer {
	log = logger.WithFields(log)
	if heuristic == nil {
		heuristic = parser.New(nil)
	}

	if gemini == nil {
		log.Warn("GEMINI_API_KEY not set, resumes are structured by local heuristics only")
		return &heuristicStructurer{heuristic: heuristic}
	}

	log.Info("structuring collaborator enabled", zap.String("model", gemini.Model()))
	return NewFallbackStructurer(NewGeminiStructurer(gemini), SourceGemini, heuristic, log)
}
