// Package reference holds the static keyword tables used by the resume parser
// and the candidate predictor. Tables are loaded once and never mutated.
package reference

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var embeddedTables []byte

// Section names shared by the parser and the structuring collaborator.
const (
	SectionEducation      = "education"
	SectionExperience     = "experience"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
	SectionLanguages      = "languages"
)

// SectionNames lists every section in header priority order.
var SectionNames = []string{
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionCertifications,
	SectionLanguages,
}

type KeywordGroup struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type EducationLevel struct {
	Level    int      `yaml:"level"`
	Keywords []string `yaml:"keywords"`
}

type ComplexityTier struct {
	Name     string   `yaml:"name"`
	Weight   int      `yaml:"weight"`
	Keywords []string `yaml:"keywords"`
}

type BiasPattern struct {
	Type        string   `yaml:"type"`
	Keywords    []string `yaml:"keywords"`
	Explanation string   `yaml:"explanation"`
	Suggestion  string   `yaml:"suggestion"`
}

type SentimentLexicon struct {
	Negations    []string           `yaml:"negations"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
	Words        map[string]float64 `yaml:"lexicon"`
}

// Tables is the full set of reference data. Callers must treat it as read-only.
type Tables struct {
	SectionHeaders        []KeywordGroup   `yaml:"section_headers"`
	SectionSeeds          []KeywordGroup   `yaml:"section_seeds"`
	SkillCategories       []KeywordGroup   `yaml:"skill_categories"`
	SkillsMatchCategories []KeywordGroup   `yaml:"skills_match_categories"`
	EducationLevels       []EducationLevel `yaml:"education_levels"`
	ProjectComplexity     []ComplexityTier `yaml:"project_complexity"`
	IndustrySkills        []KeywordGroup   `yaml:"industry_skills"`
	CultureKeywords       []KeywordGroup   `yaml:"culture_keywords"`
	BiasPatterns          []BiasPattern    `yaml:"bias_patterns"`
	Sentiment             SentimentLexicon `yaml:"sentiment"`
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the embedded tables. It panics if the embedded file is
// malformed, which can only happen at build time.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := Parse(embeddedTables)
		if err != nil {
			panic(fmt.Sprintf("reference: embedded tables are invalid: %v", err))
		}
		defaultTables = t
	})
	return defaultTables
}

// Load reads tables from path. An empty path returns the embedded defaults.
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference tables: %w", err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference tables from %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a YAML table document.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse reference tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that every table the pipeline depends on is populated.
func (t *Tables) Validate() error {
	for _, name := range SectionNames {
		if findGroup(t.SectionHeaders, name) == nil {
			return fmt.Errorf("section_headers: missing section %q", name)
		}
	}

	switch {
	case len(t.SkillCategories) == 0:
		return fmt.Errorf("skill_categories must not be empty")
	case len(t.SkillsMatchCategories) == 0:
		return fmt.Errorf("skills_match_categories must not be empty")
	case len(t.EducationLevels) == 0:
		return fmt.Errorf("education_levels must not be empty")
	case len(t.ProjectComplexity) == 0:
		return fmt.Errorf("project_complexity must not be empty")
	case len(t.IndustrySkills) == 0:
		return fmt.Errorf("industry_skills must not be empty")
	case len(t.CultureKeywords) == 0:
		return fmt.Errorf("culture_keywords must not be empty")
	case len(t.BiasPatterns) == 0:
		return fmt.Errorf("bias_patterns must not be empty")
	}

	for i := 1; i < len(t.EducationLevels); i++ {
		if t.EducationLevels[i].Level >= t.EducationLevels[i-1].Level {
			return fmt.Errorf("education_levels must be listed from highest to lowest level")
		}
	}

	return nil
}

// RoleSkills returns the reference skills for a target role.
func (t *Tables) RoleSkills(role string) ([]string, bool) {
	if g := findGroup(t.IndustrySkills, role); g != nil {
		return g.Keywords, true
	}
	return nil, false
}

// Culture returns the keywords describing a company culture.
func (t *Tables) Culture(culture string) ([]string, bool) {
	if g := findGroup(t.CultureKeywords, culture); g != nil {
		return g.Keywords, true
	}
	return nil, false
}

func (t *Tables) Roles() []string {
	return groupNames(t.IndustrySkills)
}

func (t *Tables) Cultures() []string {
	return groupNames(t.CultureKeywords)
}

// SkillsMatchTotal is the number of reference keywords behind skills_match.
func (t *Tables) SkillsMatchTotal() int {
	total := 0
	for _, g := range t.SkillsMatchCategories {
		total += len(g.Keywords)
	}
	return total
}

func findGroup(groups []KeywordGroup, name string) *KeywordGroup {
	for i := range groups {
		if groups[i].Name == name {
			return &groups[i]
		}
	}
	return nil
}

func groupNames(groups []KeywordGroup) []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names
}
