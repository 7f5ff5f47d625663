package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Assessment is one scored resume. Payload holds the full upload response.
type Assessment struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename           string         `gorm:"type:text" json:"filename"`
	TargetRole         string         `gorm:"type:text;not null" json:"target_role"`
	CompanyCulture     string         `gorm:"type:text;not null" json:"company_culture"`
	StructuredBy       string         `gorm:"type:text;not null" json:"structured_by"`
	SuccessProbability float64        `gorm:"type:decimal(4,3)" json:"success_probability"`
	OverallScore       float64        `gorm:"type:decimal(4,1)" json:"overall_score"`
	Sentiment          string         `gorm:"type:text" json:"sentiment"`
	BiasIndicatorCount int            `gorm:"not null;default:0" json:"bias_indicator_count"`
	Payload            datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	CreatedAt          time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Assessment) TableName() string {
	return "assessments"
}
