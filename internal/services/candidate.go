package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"alfredoptarigan/bias-aware-recruitment/internal/logger"
	"alfredoptarigan/bias-aware-recruitment/internal/models"
	"alfredoptarigan/bias-aware-recruitment/internal/parser"
	"alfredoptarigan/bias-aware-recruitment/internal/predictor"
	"alfredoptarigan/bias-aware-recruitment/internal/repositories"
)

// Pipeline stages reported by StageError.
const (
	StageParse   = "parse"
	StagePredict = "predict"
)

// StageError ties a pipeline failure to the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// CandidateAssessment is the outcome of scoring one resume.
type CandidateAssessment struct {
	ID         uuid.UUID
	Filename   string
	Resume     *parser.Resume
	Prediction *predictor.PredictionResult
}

// Response renders the assessment as the upload response body.
func (a *CandidateAssessment) Response() *models.UploadResponse {
	return &models.UploadResponse{
		PredictionResult: a.Prediction,
		AssessmentID:     a.ID.String(),
		Filename:         a.Filename,
		StructuredBy:     a.Resume.StructuredBy,
		Sections:         a.Resume.Sections,
		Features:         a.Resume.Features,
	}
}

type CandidateService interface {
	ScoreFile(ctx context.Context, filePath, filename string, opts predictor.Options) (*CandidateAssessment, error)
	ScoreBytes(ctx context.Context, data []byte, filename string, opts predictor.Options) (*CandidateAssessment, error)
	ScoreText(ctx context.Context, text, filename string, opts predictor.Options) (*CandidateAssessment, error)
}

type candidateService struct {
	pdfParser   PDFParserService
	structurer  ResumeStructurer
	heuristic   *parser.Parser
	predictor   *predictor.Predictor
	assessments repositories.AssessmentRepository
	defaults    predictor.Options
	log         *zap.Logger
}

// NewCandidateService wires the scoring pipeline. assessments may be nil, in
// which case nothing is persisted.
func NewCandidateService(
	pdfParser PDFParserService,
	structurer ResumeStructurer,
	heuristic *parser.Parser,
	scorer *predictor.Predictor,
	assessments repositories.AssessmentRepository,
	defaults predictor.Options,
	log *zap.Logger,
) CandidateService {
	return &candidateService{
		pdfParser:   pdfParser,
		structurer:  structurer,
		heuristic:   heuristic,
		predictor:   scorer,
		assessments: assessments,
		defaults:    defaults,
		log:         logger.WithFields(log),
	}
}

// ScoreFile implements CandidateService.
func (s *candidateService) ScoreFile(ctx context.Context, filePath, filename string, opts predictor.Options) (*CandidateAssessment, error) {
	text, err := s.pdfParser.ExtractText(filePath)
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}

	return s.ScoreText(ctx, text, filename, opts)
}

// ScoreBytes implements CandidateService.
func (s *candidateService) ScoreBytes(ctx context.Context, data []byte, filename string, opts predictor.Options) (*CandidateAssessment, error) {
	text, err := s.pdfParser.ExtractTextFromBytes(data)
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}

	return s.ScoreText(ctx, text, filename, opts)
}

// ScoreText implements CandidateService.
func (s *candidateService) ScoreText(ctx context.Context, text, filename string, opts predictor.Options) (*CandidateAssessment, error) {
	id := uuid.New()
	log := logger.WithAssessment(s.log, id.String(), filename)

	sections, source, err := s.structurer.StructureResume(ctx, text)
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}
	resume := s.heuristic.BuildResume(text, sections, source)

	log.Debug("resume structured",
		zap.String(logger.FieldStructurer, source),
		zap.Int("skills", len(resume.Sections.Skills)),
		zap.Int("experience_entries", len(resume.Sections.Experience)),
	)

	prediction, err := s.predictor.Predict(resume, s.withDefaults(opts))
	if err != nil {
		return nil, &StageError{Stage: StagePredict, Err: err}
	}

	assessment := &CandidateAssessment{
		ID:         id,
		Filename:   filename,
		Resume:     resume,
		Prediction: prediction,
	}

	log.Info("assessment completed",
		zap.String(logger.FieldStructurer, source),
		zap.Float64("overall_score", prediction.OverallScore),
		zap.Int("bias_indicators", len(prediction.SentimentAnalysis.BiasIndicators)),
	)

	s.persist(assessment, log)
	return assessment, nil
}

func (s *candidateService) withDefaults(opts predictor.Options) predictor.Options {
	if opts.TargetRole == "" {
		opts.TargetRole = s.defaults.TargetRole
	}
	if opts.CompanyCulture == "" {
		opts.CompanyCulture = s.defaults.CompanyCulture
	}
	return opts
}

// persist stores the assessment. Failures are logged and never returned.
func (s *candidateService) persist(a *CandidateAssessment, log *zap.Logger) {
	if s.assessments == nil {
		return
	}

	payload, err := json.Marshal(a.Response())
	if err != nil {
		log.Warn("failed to encode assessment payload", zap.Error(err))
		return
	}

	record := &models.Assessment{
		ID:                 a.ID,
		Filename:           a.Filename,
		TargetRole:         a.Prediction.TargetRole,
		CompanyCulture:     a.Prediction.CompanyCulture,
		StructuredBy:       a.Resume.StructuredBy,
		SuccessProbability: a.Prediction.SuccessProbability,
		OverallScore:       a.Prediction.OverallScore,
		Sentiment:          a.Prediction.SentimentAnalysis.Sentiment,
		BiasIndicatorCount: len(a.Prediction.SentimentAnalysis.BiasIndicators),
		Payload:            datatypes.JSON(payload),
	}

	if err := s.assessments.Create(record); err != nil {
		log.Warn("failed to persist assessment", zap.Error(err))
	}
}
