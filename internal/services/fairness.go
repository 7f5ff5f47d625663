package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"alfredoptarigan/bias-aware-recruitment/internal/fairness"
	"alfredoptarigan/bias-aware-recruitment/internal/logger"
	"alfredoptarigan/bias-aware-recruitment/internal/models"
	"alfredoptarigan/bias-aware-recruitment/internal/repositories"
)

type FairnessResult struct {
	AuditID uuid.UUID
	Report  *fairness.Report
}

type FairnessService interface {
	Evaluate(ctx context.Context, dataset fairness.Dataset) (*FairnessResult, error)
}

type fairnessService struct {
	audits repositories.FairnessAuditRepository
	log    *zap.Logger
}

// NewFairnessService evaluates datasets and records an audit when audits is
// not nil.
func NewFairnessService(audits repositories.FairnessAuditRepository, log *zap.Logger) FairnessService {
	return &fairnessService{
		audits: audits,
		log:    logger.WithFields(log),
	}
}

// Evaluate implements FairnessService.
func (s *fairnessService) Evaluate(_ context.Context, dataset fairness.Dataset) (*FairnessResult, error) {
	report, err := fairness.Evaluate(dataset)
	if err != nil {
		return nil, err
	}

	result := &FairnessResult{AuditID: uuid.New(), Report: report}
	flagged := FlaggedAttributes(report)

	s.log.Info("fairness evaluation completed",
		zap.String("audit_id", result.AuditID.String()),
		zap.Int("sample_size", len(dataset.Predictions)),
		zap.Int("attributes", len(dataset.ProtectedAttributes)),
		zap.Strings("flagged", flagged),
	)

	s.persist(result, dataset, len(flagged))
	return result, nil
}

// FlaggedAttributes lists, in order, the attributes with potential bias.
func FlaggedAttributes(report *fairness.Report) []string {
	flagged := []string{}
	for _, attr := range fairness.SortedKeys(report.BiasAnalysis) {
		if report.BiasAnalysis[attr].PotentialBias {
			flagged = append(flagged, attr)
		}
	}
	return flagged
}

func (s *fairnessService) persist(result *FairnessResult, dataset fairness.Dataset, flagged int) {
	if s.audits == nil {
		return
	}

	datasetJSON, err := json.Marshal(dataset)
	if err != nil {
		s.log.Warn("failed to encode fairness dataset", zap.Error(err))
		return
	}
	reportJSON, err := json.Marshal(result.Report)
	if err != nil {
		s.log.Warn("failed to encode fairness report", zap.Error(err))
		return
	}

	audit := &models.FairnessAudit{
		ID:             result.AuditID,
		SampleSize:     len(dataset.Predictions),
		AttributeCount: len(dataset.ProtectedAttributes),
		FlaggedCount:   flagged,
		LabelsSupplied: len(dataset.Labels) > 0,
		Dataset:        datatypes.JSON(datasetJSON),
		Report:         datatypes.JSON(reportJSON),
	}

	if err := s.audits.Create(audit); err != nil {
		s.log.Warn("failed to persist fairness audit", zap.String("audit_id", result.AuditID.String()), zap.Error(err))
	}
}
