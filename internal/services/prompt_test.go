package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildResumeStructuringPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildResumeStructuringPrompt("  Jane Doe\nPython developer  ")
	assert.Contains(t, prompt, "Jane Doe\nPython developer")
	for _, key := range []string{"education", "experience", "skills", "certifications", "languages"} {
		assert.Contains(t, prompt, `"`+key+`"`)
	}

	long := strings.Repeat("é", maxPromptResumeChars+50)
	prompt = pb.BuildResumeStructuringPrompt(long)
	assert.NotContains(t, prompt, strings.Repeat("é", maxPromptResumeChars+1))
	assert.Contains(t, prompt, strings.Repeat("é", maxPromptResumeChars))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a\nb c", CleanText("\n  a  \n\n\t\n b c \n"))
	assert.Equal(t, "", CleanText(" \n "))
}
