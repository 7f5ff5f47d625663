package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/bias-aware-recruitment/internal/models"
)

type FairnessAuditRepository interface {
	Create(audit *models.FairnessAudit) error
	FindByID(id uuid.UUID) (*models.FairnessAudit, error)
}

type fairnessAuditRepository struct {
	db *gorm.DB
}

func NewFairnessAuditRepository(db *gorm.DB) FairnessAuditRepository {
	return &fairnessAuditRepository{db: db}
}

// Create implements FairnessAuditRepository.
func (r *fairnessAuditRepository) Create(audit *models.FairnessAudit) error {
	if err := r.db.Create(audit).Error; err != nil {
		return fmt.Errorf("failed to create fairness audit: %w", err)
	}
	return nil
}

// FindByID implements FairnessAuditRepository.
func (r *fairnessAuditRepository) FindByID(id uuid.UUID) (*models.FairnessAudit, error) {
	var audit models.FairnessAudit
	if err := r.db.Where("id = ?", id).First(&audit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fairness audit %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find fairness audit: %w", err)
	}
	return &audit, nil
}
