package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxProjectComplexity caps the summed keyword tiers.
const MaxProjectComplexity = 3

var integerPattern = regexp.MustCompile(`\d+`)

func (p *Parser) CalculateFeatures(s Sections) Features {
	return Features{
		EducationLevel:    p.CalculateEducationLevel(s.Education),
		YearsExperience:   CalculateYearsExperience(s.Experience),
		SkillsMatch:       p.CalculateSkillsMatch(s.Skills),
		ProjectComplexity: p.CalculateProjectComplexity(s.Experience),
	}
}

// CalculateEducationLevel returns the highest credential level mentioned.
// Levels are checked from highest to lowest so a PhD always wins.
func (p *Parser) CalculateEducationLevel(education []string) int {
	text := strings.ToLower(strings.Join(education, " "))
	if text == "" {
		return 0
	}

	for _, level := range p.tables.EducationLevels {
		if containsAny(text, level.Keywords) {
			return level.Level
		}
	}
	return 0
}

// CalculateYearsExperience returns the largest integer found in the
// experience entries, or 0 when there is none.
func CalculateYearsExperience(experience []string) int {
	years := 0
	for _, m := range integerPattern.FindAllString(strings.Join(experience, " "), -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if n > years {
			years = n
		}
	}
	return years
}

// CalculateSkillsMatch is the share of reference keywords, across all
// categories, that appear anywhere in the skills text.
func (p *Parser) CalculateSkillsMatch(skills []string) float64 {
	text := strings.ToLower(strings.Join(skills, " "))
	total := p.tables.SkillsMatchTotal()
	if text == "" || total == 0 {
		return 0
	}

	matches := 0
	for _, category := range p.tables.SkillsMatchCategories {
		for _, keyword := range category.Keywords {
			if strings.Contains(text, keyword) {
				matches++
			}
		}
	}
	return float64(matches) / float64(total)
}

func (p *Parser) CalculateProjectComplexity(experience []string) int {
	text := strings.ToLower(strings.Join(experience, " "))
	if text == "" {
		return 0
	}

	score := 0
	for _, tier := range p.tables.ProjectComplexity {
		for _, keyword := range tier.Keywords {
			if strings.Contains(text, keyword) {
				score += tier.Weight
			}
		}
	}
	return min(score, MaxProjectComplexity)
}
