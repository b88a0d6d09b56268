// internal/models/template.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// LicenseTemplate is a reusable contract blueprint. Workflow code treats it as
// read-only; editing happens through the template endpoints only.
type LicenseTemplate struct {
	BaseModel
	AgencyID           uuid.UUID  `json:"agency_id" gorm:"type:uuid;not null;index"`
	Name               string     `json:"name" gorm:"size:255;not null"`
	ClientName         string     `json:"client_name" gorm:"size:255"`
	TalentName         string     `json:"talent_name" gorm:"size:255"`
	LicenseFee         float64    `json:"license_fee" gorm:"type:decimal(10,2);default:0"`
	DurationDays       int        `json:"duration_days" gorm:"default:0"`
	StartDate          *time.Time `json:"start_date"`
	CustomTerms        string     `json:"custom_terms" gorm:"type:text"`
	DocusealTemplateID string     `json:"docuseal_template_id" gorm:"size:100;not null"`
	IsActive           bool       `json:"is_active" gorm:"default:true"`

	// Relationships
	Agency      Agency              `json:"agency,omitempty" gorm:"foreignKey:AgencyID"`
	Submissions []LicenseSubmission `json:"submissions,omitempty" gorm:"foreignKey:TemplateID"`
}
