// internal/models/credit.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// CreditEntry is an append-only ledger row; the balance is the sum of Amount
// over a user's entries. Debits carry a negative amount.
type CreditEntry struct {
	BaseModel
	UserID        uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	EntryType     CreditEntryType `json:"entry_type" gorm:"type:varchar(20);not null;index"`
	Amount        int             `json:"amount" gorm:"not null"`
	Description   string          `json:"description" gorm:"size:255"`
	TransactionID *uuid.UUID      `json:"transaction_id" gorm:"type:uuid;index"`
	JobID         *uuid.UUID      `json:"job_id" gorm:"type:uuid;index"`

	// Relationships
	User        User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Transaction *Transaction   `json:"transaction,omitempty" gorm:"foreignKey:TransactionID"`
	Job         *GenerationJob `json:"job,omitempty" gorm:"foreignKey:JobID"`
}

// GenerationJob records one AI content generation request billed in credits.
type GenerationJob struct {
	BaseModel
	UserID      uuid.UUID           `json:"user_id" gorm:"type:uuid;not null;index"`
	TalentID    *uuid.UUID          `json:"talent_id" gorm:"type:uuid;index"`
	Prompt      string              `json:"prompt" gorm:"type:text;not null"`
	Model       string              `json:"model" gorm:"size:100"`
	CreditCost  int                 `json:"credit_cost" gorm:"not null"`
	Status      GenerationJobStatus `json:"status" gorm:"type:varchar(20);default:'queued';index"`
	ResultURLs  JSONB               `json:"result_urls" gorm:"type:jsonb"`
	Error       string              `json:"error,omitempty" gorm:"type:text"`
	CompletedAt *time.Time          `json:"completed_at"`

	// Relationships
	User   User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Talent *RosterMember `json:"talent,omitempty" gorm:"foreignKey:TalentID"`
}
