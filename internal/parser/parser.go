// Package parser extracts resume sections and numeric features using keyword
// and regex heuristics.
package parser

import (
	"context"
	"strings"

	"alfredoptarigan/bias-aware-recruitment/internal/reference"
)

// SourceHeuristic identifies resumes structured by the local heuristics.
const SourceHeuristic = "heuristic"

// Parser is the local heuristic structurer. It is always available and is the
// fallback for any remote structuring collaborator.
type Parser struct {
	tables *reference.Tables
}

func New(tables *reference.Tables) *Parser {
	if tables == nil {
		tables = reference.Default()
	}
	return &Parser{tables: tables}
}

// Structure implements Structurer.
func (p *Parser) Structure(_ context.Context, text string) (Sections, error) {
	if strings.TrimSpace(text) == "" {
		return Sections{}, ErrEmptyText
	}

	blocks := p.SplitIntoSections(text)

	sections := Sections{
		Education:      p.ExtractEducation(text),
		Experience:     p.ExtractExperience(text),
		Skills:         p.ExtractSkills(text),
		Certifications: p.ExtractCertifications(text),
		Languages:      p.ExtractLanguages(text),
	}

	// Header-split blocks seed sections the line extractors missed.
	sections.Education = seedFromBlock(sections.Education, blocks[reference.SectionEducation])
	sections.Experience = seedFromBlock(sections.Experience, blocks[reference.SectionExperience])
	sections.Certifications = seedFromBlock(sections.Certifications, blocks[reference.SectionCertifications])
	sections.Languages = seedFromBlock(sections.Languages, blocks[reference.SectionLanguages])

	return sections.Normalized(), nil
}

// BuildResume derives features from sections and bundles them with the text.
func (p *Parser) BuildResume(text string, sections Sections, source string) *Resume {
	sections = sections.Normalized()
	return &Resume{
		Text:         text,
		Sections:     sections,
		Features:     p.CalculateFeatures(sections),
		StructuredBy: source,
	}
}

// SplitIntoSections assigns lines to sections by header keywords. A header
// line opens its section and belongs to it. Content keywords only seed a
// section while none is active; lines before any section are dropped.
func (p *Parser) SplitIntoSections(text string) SectionBlocks {
	blocks := newSectionBlocks()
	content := make(map[string][]string)
	current := ""

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if name := matchGroup(p.tables.SectionHeaders, lower); name != "" {
			current = name
		} else if current == "" {
			current = matchGroup(p.tables.SectionSeeds, lower)
		}

		if current != "" {
			content[current] = append(content[current], line)
		}
	}

	for name, lines := range content {
		blocks[name] = strings.Join(lines, "\n")
	}
	return blocks
}

func matchGroup(groups []reference.KeywordGroup, lower string) string {
	for _, g := range groups {
		if containsAny(lower, g.Keywords) {
			return g.Name
		}
	}
	return ""
}

func seedFromBlock(entries []string, block string) []string {
	if len(entries) > 0 || block == "" {
		return entries
	}
	return strings.Split(block, "\n")
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
