package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/bias-aware-recruitment/internal/config"
	"alfredoptarigan/bias-aware-recruitment/internal/parser"
	"alfredoptarigan/bias-aware-recruitment/internal/predictor"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Storage: config.StorageConfig{UploadPath: t.TempDir(), MaxFileSize: 1 << 20},
		Scoring: config.ScoringConfig{
			DefaultTargetRole:     predictor.DefaultTargetRole,
			DefaultCompanyCulture: predictor.DefaultCompanyCulture,
		},
	}
}

func TestNew_HeuristicOnlyWithoutDatabase(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.Persistence())
	assert.Nil(t, a.Assessments)
	assert.Nil(t, a.Audits)
	assert.Equal(t, parser.SourceHeuristic, a.Structurer.Primary())

	assessment, err := a.Candidates.ScoreText(context.Background(), "Marketing manager with 4 years experience in SEO", "cv.pdf", predictor.Options{TargetRole: "marketing"})
	require.NoError(t, err)
	assert.Equal(t, "marketing", assessment.Prediction.TargetRole)
	assert.Equal(t, 4, assessment.Resume.Features.YearsExperience)
}

func TestNew_ScoringDefaultsApplied(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scoring.DefaultTargetRole = "finance"

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)

	assessment, err := a.Candidates.ScoreText(context.Background(), "Analyst", "cv.pdf", predictor.Options{})
	require.NoError(t, err)
	assert.Equal(t, "finance", assessment.Prediction.TargetRole)
}

func TestNew_RejectsUnknownDefaults(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scoring.DefaultTargetRole = "astronaut"

	_, err := New(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, predictor.ErrUnknownRole)

	cfg = testConfig(t)
	cfg.Scoring.DefaultCompanyCulture = "circus"

	_, err = New(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, predictor.ErrUnknownCulture)
}

func TestNew_ReferenceTablesPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scoring.ReferenceTablesPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg, nil)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("role_skills: [\n"), 0644))
	cfg.Scoring.ReferenceTablesPath = bad

	_, err = New(context.Background(), cfg, nil)
	assert.Error(t, err)
}
