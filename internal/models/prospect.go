// internal/models/prospect.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ScoutingProspect is a pipeline entry prior to signing. Email and Instagram
// handle are stored normalized (lowercased, handle without the leading @) so
// the agency-scoped uniqueness checks are plain equality.
type ScoutingProspect struct {
	BaseModel
	AgencyID        uuid.UUID     `json:"agency_id" gorm:"type:uuid;not null;index"`
	FullName        string        `json:"full_name" gorm:"size:255;not null"`
	Email           string        `json:"email" gorm:"size:255;index"`
	InstagramHandle string        `json:"instagram_handle" gorm:"size:100;index"`
	Source          string        `json:"source" gorm:"size:100"`
	Stage           ProspectStage `json:"stage" gorm:"type:varchar(20);default:'new';index"`
	Tags            pq.StringArray `json:"tags" gorm:"type:text[]"`
	Notes           string        `json:"notes" gorm:"type:text"`
	SignedAt        *time.Time    `json:"signed_at"`
	RosterMemberID  *uuid.UUID    `json:"roster_member_id" gorm:"type:uuid"`

	// Relationships
	Agency       Agency        `json:"agency,omitempty" gorm:"foreignKey:AgencyID"`
	RosterMember *RosterMember `json:"roster_member,omitempty" gorm:"foreignKey:RosterMemberID"`
}
