// internal/models/booking.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	BaseModel
	AgencyID     uuid.UUID     `json:"agency_id" gorm:"type:uuid;not null;index"`
	TalentID     uuid.UUID     `json:"talent_id" gorm:"type:uuid;not null;index"`
	BrandUserID  uuid.UUID     `json:"brand_user_id" gorm:"type:uuid;not null;index"`
	Title        string        `json:"title" gorm:"size:255;not null"`
	Brief        string        `json:"brief" gorm:"type:text"`
	StartDate    time.Time     `json:"start_date" gorm:"not null"`
	EndDate      time.Time     `json:"end_date" gorm:"not null"`
	Rate         float64       `json:"rate" gorm:"type:decimal(10,2);not null"`
	Status       BookingStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ConfirmedAt  *time.Time    `json:"confirmed_at"`
	CanceledAt   *time.Time    `json:"canceled_at"`
	CancelReason string        `json:"cancel_reason,omitempty" gorm:"type:text"`

	// Relationships
	Agency Agency       `json:"agency,omitempty" gorm:"foreignKey:AgencyID"`
	Talent RosterMember `json:"talent,omitempty" gorm:"foreignKey:TalentID"`
	Brand  User         `json:"brand,omitempty" gorm:"foreignKey:BrandUserID"`
}
