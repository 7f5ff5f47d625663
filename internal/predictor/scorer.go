package predictor

import "math"

// Weights of the success probability. They sum to 1.
const (
	WeightEducation  = 0.15
	WeightExperience = 0.20
	WeightSkills     = 0.25
	WeightProject    = 0.15
	WeightSentiment  = 0.10
	WeightRelevance  = 0.10
	WeightGap        = 0.05
)

// ScoringFeatures are the raw inputs of PredictSuccessProbability.
type ScoringFeatures struct {
	EducationLevel      int
	YearsExperience     int
	SkillsMatch         float64
	ProjectComplexity   int
	SentimentScore      float64
	ExperienceRelevance float64
	SkillsGap           float64
}

// PredictSuccessProbability is a fixed linear combination of normalised
// features, rounded to 3 decimals.
func PredictSuccessProbability(f ScoringFeatures) float64 {
	score := WeightEducation*float64(f.EducationLevel)/3 +
		WeightExperience*math.Min(float64(f.YearsExperience)/10, 1) +
		WeightSkills*f.SkillsMatch +
		WeightProject*float64(f.ProjectComplexity)/3 +
		WeightSentiment*f.SentimentScore +
		WeightRelevance*f.ExperienceRelevance +
		WeightGap*(1-f.SkillsGap)
	return round(score, 3)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func abs(v float64) float64 {
	return math.Abs(v)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
