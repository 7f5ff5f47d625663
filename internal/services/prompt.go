package services

import (
	"fmt"
	"strings"
)

// maxPromptResumeChars bounds the resume text embedded in a prompt.
const maxPromptResumeChars = 30000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeStructuringPrompt asks for the five resume sections as JSON.
func (pb *PromptBuilder) BuildResumeStructuringPrompt(resumeText string) string {
	resumeText = strings.TrimSpace(resumeText)
	if runes := []rune(resumeText); len(runes) > maxPromptResumeChars {
		resumeText = string(runes[:maxPromptResumeChars])
	}

	return fmt.Sprintf(`You are an expert resume parser. Split the resume below into sections.

RESUME:
%s

Return ONLY a JSON object in the following format:
{
  "education": ["<one entry per degree or school, verbatim>"],
  "experience": ["<one entry per role, including dates and responsibilities>"],
  "skills": ["<one lowercase skill per item>"],
  "certifications": ["<one certification per item>"],
  "languages": ["<one spoken language per item>"]
}

Every key must be present. Use an empty array when a section is missing.
Copy text from the resume; do not invent or summarize content.`, resumeText)
}
