package predictor

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/bias-aware-recruitment/internal/parser"
)

func TestAnalyzeSentimentAndTone(t *testing.T) {
	p := New(nil)

	tests := []struct {
		name           string
		text           string
		wantSentiment  string
		wantConfidence float64
	}{
		{name: "empty", text: "", wantSentiment: SentimentNeutral, wantConfidence: 0},
		{name: "positive words", text: "Excellent and successful engineer", wantSentiment: SentimentPositive, wantConfidence: 0.875},
		{name: "negated", text: "not good", wantSentiment: SentimentNegative, wantConfidence: 0.35},
		{name: "contraction negation", text: "I don't enjoy good meetings", wantSentiment: SentimentNegative, wantConfidence: 0.35},
		{name: "intensified", text: "very good", wantSentiment: SentimentPositive, wantConfidence: 0.91},
		{name: "no lexicon words", text: "the quarterly report", wantSentiment: SentimentNeutral, wantConfidence: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.AnalyzeSentimentAndTone(tt.text)
			assert.Equal(t, tt.wantSentiment, got.Sentiment)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
			assert.NotNil(t, got.BiasIndicators)
		})
	}
}

func TestAnalyzeSentimentAndTone_LexiconScores(t *testing.T) {
	p := New(nil)

	got := p.AnalyzeSentimentAndTone("Excellent and successful engineer")
	assert.Equal(t, LexiconScores{Positive: 0.5, Negative: 0, Neutral: 0.5}, got.LexiconScores)

	got = p.AnalyzeSentimentAndTone("the quarterly report")
	assert.Equal(t, LexiconScores{Neutral: 1}, got.LexiconScores)
}

func TestDetectBias(t *testing.T) {
	p := New(nil)

	t.Run("all categories in table order", func(t *testing.T) {
		got := p.DetectBias("She is a young NATIVE SPEAKER")
		types := make([]string, 0, len(got))
		for _, indicator := range got {
			types = append(types, indicator.Type)
			assert.NotEmpty(t, indicator.Explanation)
			assert.NotEmpty(t, indicator.Suggestion)
		}
		assert.Equal(t, []string{"gender_bias", "age_bias", "cultural_bias", "language_bias"}, types)
	})

	t.Run("one indicator per category", func(t *testing.T) {
		got := p.DetectBias("he he he she her")
		require.Len(t, got, 1)
		assert.Equal(t, "gender_bias", got[0].Type)
	})

	t.Run("clean text", func(t *testing.T) {
		assert.Empty(t, p.DetectBias("Python APIs"))
	})
}

func TestAnalyzeSkillsGap(t *testing.T) {
	p := New(nil)

	got := p.AnalyzeSkillsGap([]string{"Python", "java", "go", "PYTHON"}, "")
	assert.Equal(t, 0.75, got.GapScore)
	assert.Equal(t, 25.0, got.MatchPercentage)
	assert.Equal(t, []string{"javascript", "react", "node.js", "sql", "git", "docker"}, got.MissingSkills)
	assert.Equal(t, []string{"go"}, got.StrengthAreas)

	t.Run("empty candidate", func(t *testing.T) {
		got := p.AnalyzeSkillsGap(nil, DefaultTargetRole)
		assert.Equal(t, 1.0, got.GapScore)
		assert.Zero(t, got.MatchPercentage)
		assert.Len(t, got.MissingSkills, 8)
		assert.Empty(t, got.StrengthAreas)
	})

	t.Run("unknown role", func(t *testing.T) {
		got := p.AnalyzeSkillsGap([]string{"python"}, "astronaut")
		assert.Equal(t, 1.0, got.GapScore)
		assert.Empty(t, got.MissingSkills)
	})
}

func TestAnalyzeSkillsGap_GapAndMatchAreComplementary(t *testing.T) {
	p := New(nil)

	candidates := [][]string{
		nil,
		{"python"},
		{"python", "sql", "excel"},
		{"agile", "scrum", "jira"},
		{"python", "java", "javascript", "react", "node.js", "sql", "git", "docker"},
	}
	roles := append(p.tables.Roles(), "unknown")

	for _, role := range roles {
		for _, skills := range candidates {
			got := p.AnalyzeSkillsGap(skills, role)
			assert.InDelta(t, 1.0, got.GapScore+got.MatchPercentage/100, 0.001, "role=%s skills=%v", role, skills)
		}
	}
}

func TestCalculateExperienceRelevance(t *testing.T) {
	p := New(nil)

	got := p.CalculateExperienceRelevance("Built APIs in Python and SQL. Managed a team! Deployed with Docker", "")
	assert.Equal(t, 0.125, got.RelevanceScore)
	assert.Equal(t, 12.5, got.RelevancePercentage)
	assert.Equal(t, []string{"Built APIs in Python and SQL", "Deployed with Docker"}, got.KeyAchievements)

	t.Run("trailing terminator counts as a sentence", func(t *testing.T) {
		got := p.CalculateExperienceRelevance("Built services in python and docker.", "")
		assert.Equal(t, 0.125, got.RelevanceScore)
		assert.Equal(t, 12.5, got.RelevancePercentage)
		assert.Equal(t, []string{"Built services in python and docker"}, got.KeyAchievements)
	})

	t.Run("achievements capped", func(t *testing.T) {
		got := p.CalculateExperienceRelevance(strings.Repeat("Python. ", 7), DefaultTargetRole)
		assert.Len(t, got.KeyAchievements, maxKeyAchievements)
	})

	t.Run("empty", func(t *testing.T) {
		got := p.CalculateExperienceRelevance("  ", DefaultTargetRole)
		assert.Zero(t, got.RelevanceScore)
		assert.Empty(t, got.KeyAchievements)
	})
}

func TestAnalyzeCulturalFit(t *testing.T) {
	p := New(nil)

	got := p.AnalyzeCulturalFit("An innovative and AGILE team", "")
	assert.Equal(t, 0.4, got.FitScore)
	assert.Equal(t, 40.0, got.FitPercentage)
	assert.Equal(t, []string{"innovative", "agile"}, got.CultureAlignment)

	assert.Zero(t, p.AnalyzeCulturalFit("innovative", "circus").FitScore)
	assert.Zero(t, p.AnalyzeCulturalFit("", "corporate").FitScore)
}

func TestPredictSuccessProbability(t *testing.T) {
	assert.InDelta(t, 1.0, WeightEducation+WeightExperience+WeightSkills+WeightProject+WeightSentiment+WeightRelevance+WeightGap, 1e-9)

	tests := []struct {
		name     string
		features ScoringFeatures
		want     float64
	}{
		{
			name:     "nothing",
			features: ScoringFeatures{SkillsGap: 1},
			want:     0,
		},
		{
			name: "everything",
			features: ScoringFeatures{
				EducationLevel: 3, YearsExperience: 25, SkillsMatch: 1, ProjectComplexity: 3,
				SentimentScore: 1, ExperienceRelevance: 1, SkillsGap: 0,
			},
			want: 1,
		},
		{
			name: "mixed",
			features: ScoringFeatures{
				EducationLevel: 2, YearsExperience: 5, SkillsMatch: 0.5, ProjectComplexity: 1,
				SentimentScore: 0.2, ExperienceRelevance: 0.1, SkillsGap: 0.5,
			},
			want: 0.43,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PredictSuccessProbability(tt.features), 1e-9)
		})
	}
}

func TestAnalyzeSentiment_ScoringConfidenceIsUnrounded(t *testing.T) {
	p := New(nil)

	result, confidence := p.analyzeSentiment("capable dedicated skilled")
	assert.Equal(t, 0.367, result.Confidence)
	assert.InDelta(t, 1.1/3, confidence, 1e-9)

	got, err := p.Predict(&parser.Resume{Text: "capable dedicated skilled"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, PredictSuccessProbability(ScoringFeatures{
		SentimentScore: confidence,
		SkillsGap:      got.SkillsGapAnalysis.GapScore,
	}), got.SuccessProbability)
}

func TestPredict(t *testing.T) {
	heuristic := parser.New(nil)
	text := "5 years experience as a Senior Software Engineer, built scalable architecture using Python and React"
	sections, err := heuristic.Structure(context.Background(), text)
	require.NoError(t, err)
	resume := heuristic.BuildResume(text, sections, parser.SourceHeuristic)

	p := New(nil)
	got, err := p.Predict(resume, Options{})
	require.NoError(t, err)

	assert.Equal(t, DefaultTargetRole, got.TargetRole)
	assert.Equal(t, DefaultCompanyCulture, got.CompanyCulture)
	assert.Equal(t, Explanation, got.Explanation)
	assert.GreaterOrEqual(t, got.SuccessProbability, 0.0)
	assert.LessOrEqual(t, got.SuccessProbability, 1.0)
	assert.Equal(t, math.Round(got.SuccessProbability*1000)/10, got.OverallScore)
	assert.NotContains(t, got.SkillsGapAnalysis.MissingSkills, "python")
	assert.NotContains(t, got.SkillsGapAnalysis.MissingSkills, "react")
	require.NotEmpty(t, got.SentimentAnalysis.BiasIndicators)
	assert.Equal(t, "age_bias", got.SentimentAnalysis.BiasIndicators[0].Type)

	t.Run("unknown role", func(t *testing.T) {
		_, err := p.Predict(resume, Options{TargetRole: "astronaut"})
		assert.ErrorIs(t, err, ErrUnknownRole)
	})

	t.Run("unknown culture", func(t *testing.T) {
		_, err := p.Predict(resume, Options{CompanyCulture: "circus"})
		assert.ErrorIs(t, err, ErrUnknownCulture)
	})

	t.Run("nil resume", func(t *testing.T) {
		_, err := p.Predict(nil, Options{})
		assert.ErrorIs(t, err, ErrNoResume)
	})
}
