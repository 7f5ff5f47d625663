// Package app assembles the scoring and fairness components from config.
package app

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alfredoptarigan/bias-aware-recruitment/internal/config"
	"alfredoptarigan/bias-aware-recruitment/internal/models"
	"alfredoptarigan/bias-aware-recruitment/internal/parser"
	"alfredoptarigan/bias-aware-recruitment/internal/predictor"
	"alfredoptarigan/bias-aware-recruitment/internal/reference"
	"alfredoptarigan/bias-aware-recruitment/internal/repositories"
	"alfredoptarigan/bias-aware-recruitment/internal/services"
)

type App struct {
	Config     *config.Config
	Tables     *reference.Tables
	Validate   *validator.Validate
	Storage    services.StorageService
	PDFParser  services.PDFParserService
	Structurer services.ResumeStructurer
	Candidates services.CandidateService
	Fairness   services.FairnessService

	// Assessments and Audits are nil when persistence is disabled.
	Assessments repositories.AssessmentRepository
	Audits      repositories.FairnessAuditRepository

	db *gorm.DB
}

// New wires every component. A configured database must be reachable; a
// Gemini client that cannot be created only disables the collaborator.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	tables, err := reference.Load(cfg.Scoring.ReferenceTablesPath)
	if err != nil {
		return nil, err
	}
	if err := checkDefaults(tables, cfg.Scoring); err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Tables:    tables,
		Validate:  models.NewValidator(tables),
		Storage:   services.NewStorageService(cfg.Storage.UploadPath),
		PDFParser: services.NewPDFParserService(),
	}

	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.Assessments = repositories.NewAssessmentRepository(db)
		a.Audits = repositories.NewFairnessAuditRepository(db)
	}

	heuristic := parser.New(tables)
	var gemini services.GeminiService
	if cfg.Gemini.Enabled() {
		g, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout, log)
		if err != nil {
			log.Warn("gemini unavailable, using heuristic extraction", zap.Error(err))
		} else {
			gemini = g
		}
	}
	a.Structurer = services.NewStructurer(gemini, heuristic, log)

	defaults := predictor.Options{
		TargetRole:     cfg.Scoring.DefaultTargetRole,
		CompanyCulture: cfg.Scoring.DefaultCompanyCulture,
	}

	a.Candidates = services.NewCandidateService(a.PDFParser, a.Structurer, heuristic, predictor.New(tables), a.Assessments, defaults, log)
	a.Fairness = services.NewFairnessService(a.Audits, log)

	log.Info("components initialized",
		zap.Bool("persistence", a.Persistence()),
		zap.String("structurer", a.Structurer.Primary()),
		zap.String("default_target_role", defaults.TargetRole),
		zap.String("default_company_culture", defaults.CompanyCulture),
	)

	return a, nil
}

// Persistence reports whether assessments and audits are stored.
func (a *App) Persistence() bool {
	return a.db != nil
}

// Close releases the database connection pool.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

func checkDefaults(tables *reference.Tables, scoring config.ScoringConfig) error {
	if _, ok := tables.RoleSkills(scoring.DefaultTargetRole); !ok {
		return fmt.Errorf("DEFAULT_TARGET_ROLE %q: %w", scoring.DefaultTargetRole, predictor.ErrUnknownRole)
	}
	if _, ok := tables.Culture(scoring.DefaultCompanyCulture); !ok {
		return fmt.Errorf("DEFAULT_COMPANY_CULTURE %q: %w", scoring.DefaultCompanyCulture, predictor.ErrUnknownCulture)
	}
	return nil
}
