// Package predictor scores a structured resume against the reference tables.
package predictor

import (
	"errors"
	"fmt"
	"strings"

	"alfredoptarigan/bias-aware-recruitment/internal/parser"
	"alfredoptarigan/bias-aware-recruitment/internal/reference"
)

const (
	DefaultTargetRole     = "software_engineering"
	DefaultCompanyCulture = "tech_startup"

	Explanation = "Prediction is based on education, experience, skills, project complexity, sentiment, and bias-aware analysis."
)

var (
	ErrNoResume       = errors.New("no resume to score")
	ErrUnknownRole    = errors.New("unknown target role")
	ErrUnknownCulture = errors.New("unknown company culture")
)

// Options selects the reference tables used for one prediction. Empty values
// fall back to the defaults.
type Options struct {
	TargetRole     string
	CompanyCulture string
}

type Predictor struct {
	tables *reference.Tables
}

func New(tables *reference.Tables) *Predictor {
	if tables == nil {
		tables = reference.Default()
	}
	return &Predictor{tables: tables}
}

// Predict composes every analyzer into a PredictionResult.
func (p *Predictor) Predict(resume *parser.Resume, opts Options) (*PredictionResult, error) {
	if resume == nil {
		return nil, ErrNoResume
	}

	role := opts.TargetRole
	if role == "" {
		role = DefaultTargetRole
	}
	if _, ok := p.tables.RoleSkills(role); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}

	culture := opts.CompanyCulture
	if culture == "" {
		culture = DefaultCompanyCulture
	}
	if _, ok := p.tables.Culture(culture); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCulture, culture)
	}

	sentiment, confidence := p.analyzeSentiment(resume.Text)
	gap := p.AnalyzeSkillsGap(resume.Sections.Skills, role)
	relevance := p.CalculateExperienceRelevance(strings.Join(resume.Sections.Experience, "\n"), role)
	fit := p.AnalyzeCulturalFit(resume.Text, culture)

	probability := PredictSuccessProbability(ScoringFeatures{
		EducationLevel:      resume.Features.EducationLevel,
		YearsExperience:     resume.Features.YearsExperience,
		SkillsMatch:         resume.Features.SkillsMatch,
		ProjectComplexity:   resume.Features.ProjectComplexity,
		SentimentScore:      confidence,
		ExperienceRelevance: relevance.RelevanceScore,
		SkillsGap:           gap.GapScore,
	})

	return &PredictionResult{
		SuccessProbability:  probability,
		OverallScore:        round(probability*100, 1),
		TargetRole:          role,
		CompanyCulture:      culture,
		SentimentAnalysis:   sentiment,
		SkillsGapAnalysis:   gap,
		ExperienceRelevance: relevance,
		CulturalFit:         fit,
		Explanation:         Explanation,
	}, nil
}
