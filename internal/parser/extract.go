package parser

import (
	"regexp"
	"sort"
	"strings"
)

var educationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(bachelor|master|phd|doctorate)`),
	// Undotted abbreviations must be uppercase so "be" or "me" in prose do not match.
	regexp.MustCompile(`(^|[^A-Za-z])(BS|MS|BE|ME|BSc|MSc|MBA)([^A-Za-z]|$)`),
	regexp.MustCompile(`(?i)(^|[^a-z])(b\.s\.?|m\.s\.?|b\.e\.?|m\.e\.?|b\.?tech|m\.?tech|b\.?sc|m\.?sc|mba)([^a-z]|$)`),
	regexp.MustCompile(`(?i)\b(university|college|institute|school)`),
	regexp.MustCompile(`(?i)\b(xth|xiith|high school|secondary school)\b`),
	regexp.MustCompile(`(?i)\b(diploma|certificate)`),
	regexp.MustCompile(`(?i)\b(ssc|hsc|cbse|icse)\b`),
}

var projectKeywords = []string{
	"developed", "project", "platform", "solution", "application",
	"integrated", "implemented", "created", "built", "designed",
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?)\s*(?:of)?\s*experience`),
	regexp.MustCompile(`(?i)experience:\s*(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?)\s*(?:in)?\s*the\s*field`),
}

var experienceKeywords = []string{
	"developer", "engineer", "analyst", "consultant", "manager",
	"intern", "internship", "worked", "working", "responsibilities",
}

var (
	certificationPattern = regexp.MustCompile(`(?i)certification|certified|certificate`)
	languagePattern      = regexp.MustCompile(`(?i)language|fluent|native|proficient`)
)

const bulletGlyphs = "•◦○-*"

// ExtractEducation groups education lines into entries. Lines that look like
// project descriptions are treated as intrusions from another section.
func (p *Parser) ExtractEducation(text string) []string {
	var (
		education []string
		current   []string
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		isEducation := matchesAny(line, educationPatterns)
		isProject := containsAny(strings.ToLower(line), projectKeywords)

		switch {
		case isEducation && !isProject:
			if len(current) > 0 {
				education = append(education, strings.Join(current, " "))
			}
			current = []string{line}
		case len(current) > 0 && !isProject:
			current = append(current, line)
		}
	}

	if len(current) > 0 {
		education = append(education, strings.Join(current, " "))
	}
	return education
}

// ExtractExperience opens a new entry on every line with an experience
// indicator and appends following lines to it.
func (p *Parser) ExtractExperience(text string) []string {
	var (
		experience []string
		current    []string
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		isExperience := matchesAny(line, experiencePatterns) ||
			containsAny(strings.ToLower(line), experienceKeywords)

		switch {
		case isExperience:
			if len(current) > 0 {
				experience = append(experience, strings.Join(current, " "))
			}
			current = []string{line}
		case len(current) > 0:
			current = append(current, line)
		}
	}

	if len(current) > 0 {
		experience = append(experience, strings.Join(current, " "))
	}
	return experience
}

// ExtractSkills matches the skill table against bulleted lines first and
// against the whole text when no bullet mentions a known skill.
func (p *Parser) ExtractSkills(text string) []string {
	found := make(map[string]struct{})

	for _, raw := range strings.Split(text, "\n") {
		line := strings.ToLower(strings.TrimSpace(raw))
		if !isBulleted(line) {
			continue
		}
		p.collectSkills(line, found)
	}

	if len(found) == 0 {
		p.collectSkills(strings.ToLower(text), found)
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

func (p *Parser) collectSkills(lower string, found map[string]struct{}) {
	for _, category := range p.tables.SkillCategories {
		for _, skill := range category.Keywords {
			if containsTerm(lower, skill) {
				found[skill] = struct{}{}
			}
		}
	}
}

func (p *Parser) ExtractCertifications(text string) []string {
	return extractMatchingLines(text, certificationPattern)
}

func (p *Parser) ExtractLanguages(text string) []string {
	return extractMatchingLines(text, languagePattern)
}

func extractMatchingLines(text string, pattern *regexp.Regexp) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if !pattern.MatchString(line) {
			continue
		}
		if entry := stripBullet(line); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

func isBulleted(line string) bool {
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(line, string(glyph)) {
			return true
		}
	}
	return false
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, bulletGlyphs+" \t"))
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// containsTerm reports whether term occurs in text without being glued to a
// neighbouring word character, so "java" does not match inside "javascript"
// and "c" does not match inside "c++".
func containsTerm(text, term string) bool {
	for start := 0; start < len(text); {
		i := strings.Index(text[start:], term)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(term)
		if (i == 0 || !isWordByte(text[i-1])) && (end == len(text) || !isWordByte(text[end])) {
			return true
		}
		start = i + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '+' || b == '#'
}
