package predictor

import (
	"regexp"
	"strings"
)

const maxKeyAchievements = 5

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// AnalyzeSkillsGap compares candidate skills with the reference list of role.
// An empty candidate list or an unknown role yields a full gap.
func (p *Predictor) AnalyzeSkillsGap(skills []string, role string) SkillsGapAnalysis {
	if role == "" {
		role = DefaultTargetRole
	}
	reference, _ := p.tables.RoleSkills(role)

	candidate := dedupeLower(skills)
	if len(candidate) == 0 || len(reference) == 0 {
		return SkillsGapAnalysis{
			GapScore:        1.0,
			MissingSkills:   append([]string{}, reference...),
			StrengthAreas:   []string{},
			MatchPercentage: 0,
		}
	}

	missing := difference(reference, candidate)
	strengths := difference(candidate, reference)
	gap := float64(len(missing)) / float64(len(reference))

	return SkillsGapAnalysis{
		GapScore:        round(gap, 3),
		MissingSkills:   missing,
		StrengthAreas:   strengths,
		MatchPercentage: round((1-gap)*100, 1),
	}
}

// CalculateExperienceRelevance counts role keywords per sentence of the
// experience text, normalised by keywords times sentences.
func (p *Predictor) CalculateExperienceRelevance(experience, role string) ExperienceRelevance {
	result := ExperienceRelevance{KeyAchievements: []string{}}
	if strings.TrimSpace(experience) == "" {
		return result
	}
	if role == "" {
		role = DefaultTargetRole
	}
	keywords, _ := p.tables.RoleSkills(role)

	// Every split piece counts toward the denominator, including the empty
	// one after a trailing terminator.
	sentences := sentenceBoundary.Split(experience, -1)

	total := 0
	for _, raw := range sentences {
		sentence := strings.TrimSpace(raw)
		lower := strings.ToLower(sentence)
		matches := 0
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				matches++
			}
		}
		if matches > 0 {
			total += matches
			if len(result.KeyAchievements) < maxKeyAchievements {
				result.KeyAchievements = append(result.KeyAchievements, sentence)
			}
		}
	}

	denominator := len(keywords) * len(sentences)
	if denominator == 0 {
		return result
	}

	score := float64(total) / float64(denominator)
	result.RelevanceScore = round(score, 3)
	result.RelevancePercentage = round(score*100, 1)
	return result
}

// AnalyzeCulturalFit reports which culture keywords appear in text.
func (p *Predictor) AnalyzeCulturalFit(text, culture string) CulturalFit {
	result := CulturalFit{CultureAlignment: []string{}}
	if strings.TrimSpace(text) == "" {
		return result
	}
	if culture == "" {
		culture = DefaultCompanyCulture
	}
	keywords, _ := p.tables.Culture(culture)
	if len(keywords) == 0 {
		return result
	}

	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			result.CultureAlignment = append(result.CultureAlignment, keyword)
		}
	}

	score := float64(len(result.CultureAlignment)) / float64(len(keywords))
	result.FitScore = round(score, 3)
	result.FitPercentage = round(score*100, 1)
	return result
}

func dedupeLower(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// difference returns the members of a absent from b, keeping a's order.
func difference(a, b []string) []string {
	out := []string{}
	for _, v := range a {
		if !contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}
