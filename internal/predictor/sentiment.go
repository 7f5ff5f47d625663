package predictor

import (
	"strings"
	"unicode"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	sentimentThreshold = 0.1
	negationWindow     = 3
	negationFactor     = -0.5
)

// AnalyzeSentimentAndTone scores lexicon polarity and flags biased language.
// Empty text is neutral with no indicators.
func (p *Predictor) AnalyzeSentimentAndTone(text string) SentimentAnalysis {
	result, _ := p.analyzeSentiment(text)
	return result
}

// analyzeSentiment also returns the unrounded confidence used for scoring.
func (p *Predictor) analyzeSentiment(text string) (SentimentAnalysis, float64) {
	result := SentimentAnalysis{
		Sentiment:      SentimentNeutral,
		BiasIndicators: []BiasIndicator{},
	}
	if strings.TrimSpace(text) == "" {
		return result, 0
	}

	polarity, scores := p.polarity(text)
	result.Polarity = round(polarity, 3)
	result.Confidence = round(abs(polarity), 3)
	result.LexiconScores = scores

	switch {
	case polarity > sentimentThreshold:
		result.Sentiment = SentimentPositive
	case polarity < -sentimentThreshold:
		result.Sentiment = SentimentNegative
	}

	result.BiasIndicators = p.DetectBias(text)
	return result, abs(polarity)
}

// DetectBias emits at most one indicator per bias category, in table order.
func (p *Predictor) DetectBias(text string) []BiasIndicator {
	lower := strings.ToLower(text)
	indicators := []BiasIndicator{}

	for _, pattern := range p.tables.BiasPatterns {
		for _, keyword := range pattern.Keywords {
			if strings.Contains(lower, keyword) {
				indicators = append(indicators, BiasIndicator{
					Type:        pattern.Type,
					Explanation: pattern.Explanation,
					Suggestion:  pattern.Suggestion,
				})
				break
			}
		}
	}
	return indicators
}

// polarity averages the lexicon weight of every matched word. A negation in
// the preceding window flips and dampens the weight; an intensifier directly
// before the word scales it.
func (p *Predictor) polarity(text string) (float64, LexiconScores) {
	lex := p.tables.Sentiment
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0, LexiconScores{}
	}

	var (
		sum               float64
		matched, pos, neg int
	)
	for i, token := range tokens {
		weight, ok := lex.Words[token]
		if !ok {
			continue
		}

		if i > 0 {
			if factor, ok := lex.Intensifiers[tokens[i-1]]; ok {
				weight *= factor
			}
		}
		for j := max(0, i-negationWindow); j < i; j++ {
			if contains(lex.Negations, tokens[j]) {
				weight *= negationFactor
				break
			}
		}

		sum += weight
		matched++
		switch {
		case weight > 0:
			pos++
		case weight < 0:
			neg++
		}
	}

	total := float64(len(tokens))
	scores := LexiconScores{
		Positive: round(float64(pos)/total, 3),
		Negative: round(float64(neg)/total, 3),
		Neutral:  round(float64(len(tokens)-pos-neg)/total, 3),
	}
	if matched == 0 {
		return 0, scores
	}
	return clamp(sum/float64(matched), -1, 1), scores
}

// tokenize lowercases text, drops apostrophes so "don't" becomes "dont", and
// splits on anything that is not a letter.
func tokenize(text string) []string {
	text = strings.NewReplacer("'", "", "’", "").Replace(strings.ToLower(text))
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
