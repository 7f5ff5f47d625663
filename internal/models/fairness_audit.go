package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FairnessAudit records one fairness evaluation with its input and report.
type FairnessAudit struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SampleSize     int            `gorm:"not null" json:"sample_size"`
	AttributeCount int            `gorm:"not null" json:"attribute_count"`
	FlaggedCount   int            `gorm:"not null;default:0" json:"flagged_count"`
	LabelsSupplied bool           `gorm:"not null;default:false" json:"labels_supplied"`
	Dataset        datatypes.JSON `gorm:"type:jsonb" json:"dataset"`
	Report         datatypes.JSON `gorm:"type:jsonb" json:"report"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (FairnessAudit) TableName() string {
	return "fairness_audits"
}
