package parser

import (
	"context"
	"errors"

	"alfredoptarigan/bias-aware-recruitment/internal/reference"
)

// ErrEmptyText is returned when there is no resume text to analyze.
var ErrEmptyText = errors.New("empty input: no resume text to analyze")

// Structurer turns raw resume text into labeled sections.
type Structurer interface {
	Structure(ctx context.Context, text string) (Sections, error)
}

// Sections holds the entries extracted for each resume section.
type Sections struct {
	Education      []string `json:"education"`
	Experience     []string `json:"experience"`
	Skills         []string `json:"skills"`
	Certifications []string `json:"certifications"`
	Languages      []string `json:"languages"`
}

// Normalized returns a copy where every section is a non-nil slice.
func (s Sections) Normalized() Sections {
	return Sections{
		Education:      nonNil(s.Education),
		Experience:     nonNil(s.Experience),
		Skills:         nonNil(s.Skills),
		Certifications: nonNil(s.Certifications),
		Languages:      nonNil(s.Languages),
	}
}

// SectionBlocks maps a section name to the raw lines assigned to it,
// joined with newlines. All section names are always present.
type SectionBlocks map[string]string

func newSectionBlocks() SectionBlocks {
	blocks := make(SectionBlocks, len(reference.SectionNames))
	for _, name := range reference.SectionNames {
		blocks[name] = ""
	}
	return blocks
}

// Features are the numeric inputs of the success scorer.
type Features struct {
	EducationLevel    int     `json:"education_level"`
	YearsExperience   int     `json:"years_experience"`
	SkillsMatch       float64 `json:"skills_match"`
	ProjectComplexity int     `json:"project_complexity"`
}

// Resume is a structured resume together with its derived features.
type Resume struct {
	Text         string   `json:"-"`
	Sections     Sections `json:"sections"`
	Features     Features `json:"features"`
	StructuredBy string   `json:"structured_by"`
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
