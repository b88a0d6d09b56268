// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserType string

const (
	UserTypeAgency UserType = "agency"
	UserTypeTalent UserType = "talent"
	UserTypeBrand  UserType = "brand"
	UserTypeAdmin  UserType = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

type SubmissionStatus string

const (
	SubmissionStatusDraft SubmissionStatus = "draft"
	SubmissionStatusSent  SubmissionStatus = "sent"
)

type ProspectStage string

const (
	ProspectStageNew       ProspectStage = "new"
	ProspectStageContacted ProspectStage = "contacted"
	ProspectStageMeeting   ProspectStage = "meeting"
	ProspectStageSigned    ProspectStage = "signed"
	ProspectStagePassed    ProspectStage = "passed"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

type CreditEntryType string

const (
	CreditEntryPurchase   CreditEntryType = "purchase"
	CreditEntryDebit      CreditEntryType = "debit"
	CreditEntryRefund     CreditEntryType = "refund"
	CreditEntryAdjustment CreditEntryType = "adjustment"
)

type GenerationJobStatus string

const (
	GenerationJobQueued    GenerationJobStatus = "queued"
	GenerationJobRunning   GenerationJobStatus = "running"
	GenerationJobSucceeded GenerationJobStatus = "succeeded"
	GenerationJobFailed    GenerationJobStatus = "failed"
)

type TransactionType string

const (
	TransactionTypeCreditPurchase TransactionType = "credit_purchase"
	TransactionTypeBookingDeposit TransactionType = "booking_deposit"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)
