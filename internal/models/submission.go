// internal/models/submission.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// LicenseSubmission is one workflow instance over a template: created as a
// draft on first preview or finalize, flipped to sent exactly once. Rows are
// never updated in place between preview calls; the provider receives the full
// payload again under the same draft identity.
type LicenseSubmission struct {
	BaseModel
	TemplateID           uuid.UUID        `json:"template_id" gorm:"type:uuid;not null;index"`
	AgencyID             uuid.UUID        `json:"agency_id" gorm:"type:uuid;not null;index"`
	DocusealTemplateID   string           `json:"docuseal_template_id" gorm:"size:100;not null"`
	DocusealSubmissionID string           `json:"docuseal_submission_id" gorm:"size:100;index"`
	ClientName           string           `json:"client_name" gorm:"size:255;not null"`
	ClientEmail          string           `json:"client_email" gorm:"size:255;not null"`
	TalentNames          string           `json:"talent_names" gorm:"size:512"`
	LicenseFee           float64          `json:"license_fee" gorm:"type:decimal(10,2);default:0"`
	DurationDays         int              `json:"duration_days" gorm:"default:0"`
	StartDate            *time.Time       `json:"start_date"`
	CustomTerms          string           `json:"custom_terms" gorm:"type:text"`
	Status               SubmissionStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	SentAt               *time.Time       `json:"sent_at"`

	// Relationships
	Template LicenseTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
	Agency   Agency          `json:"agency,omitempty" gorm:"foreignKey:AgencyID"`
}
