package predictor

// BiasIndicator flags one category of potentially biased language.
type BiasIndicator struct {
	Type        string `json:"type"`
	Explanation string `json:"explanation"`
	Suggestion  string `json:"suggestion"`
}

// LexiconScores is the share of tokens carrying positive, negative or no
// polarity.
type LexiconScores struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

type SentimentAnalysis struct {
	Sentiment      string          `json:"sentiment"`
	Polarity       float64         `json:"polarity"`
	Confidence     float64         `json:"confidence"`
	LexiconScores  LexiconScores   `json:"lexicon_scores"`
	BiasIndicators []BiasIndicator `json:"bias_indicators"`
}

type SkillsGapAnalysis struct {
	GapScore        float64  `json:"gap_score"`
	MissingSkills   []string `json:"missing_skills"`
	StrengthAreas   []string `json:"strength_areas"`
	MatchPercentage float64  `json:"match_percentage"`
}

type ExperienceRelevance struct {
	RelevanceScore      float64  `json:"relevance_score"`
	KeyAchievements     []string `json:"key_achievements"`
	RelevancePercentage float64  `json:"relevance_percentage"`
}

type CulturalFit struct {
	FitScore         float64  `json:"fit_score"`
	CultureAlignment []string `json:"culture_alignment"`
	FitPercentage    float64  `json:"fit_percentage"`
}

// PredictionResult is the terminal output of candidate scoring.
type PredictionResult struct {
	SuccessProbability  float64             `json:"success_probability"`
	OverallScore        float64             `json:"overall_score"`
	TargetRole          string              `json:"target_role"`
	CompanyCulture      string              `json:"company_culture"`
	SentimentAnalysis   SentimentAnalysis   `json:"sentiment_analysis"`
	SkillsGapAnalysis   SkillsGapAnalysis   `json:"skills_gap_analysis"`
	ExperienceRelevance ExperienceRelevance `json:"experience_relevance"`
	CulturalFit         CulturalFit         `json:"cultural_fit"`
	Explanation         string              `json:"explanation"`
}
