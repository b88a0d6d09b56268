// internal/models/agency.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Agency struct {
	BaseModel
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;uniqueIndex"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Website     string    `json:"website" gorm:"size:255"`
	LogoURL     string    `json:"logo_url" gorm:"size:512"`
	Description string    `json:"description" gorm:"type:text"`

	// Relationships
	Owner     User                `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Roster    []RosterMember      `json:"roster,omitempty" gorm:"foreignKey:AgencyID"`
	Templates []LicenseTemplate   `json:"templates,omitempty" gorm:"foreignKey:AgencyID"`
	Prospects []ScoutingProspect  `json:"prospects,omitempty" gorm:"foreignKey:AgencyID"`
	Bookings  []Booking           `json:"bookings,omitempty" gorm:"foreignKey:AgencyID"`
}

type RosterMember struct {
	BaseModel
	AgencyID        uuid.UUID      `json:"agency_id" gorm:"type:uuid;not null;index"`
	UserID          *uuid.UUID     `json:"user_id" gorm:"type:uuid;index"`
	FullName        string         `json:"full_name" gorm:"size:255;not null"`
	Email           string         `json:"email" gorm:"size:255"`
	InstagramHandle string         `json:"instagram_handle" gorm:"size:100"`
	DayRate         float64        `json:"day_rate" gorm:"type:decimal(10,2);default:0"`
	Categories      pq.StringArray `json:"categories" gorm:"type:text[]"`
	PortfolioURLs   pq.StringArray `json:"portfolio_urls" gorm:"type:text[]"`
	Bio             string         `json:"bio" gorm:"type:text"`
	Metadata        JSONB          `json:"metadata" gorm:"type:jsonb"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`

	// Relationships
	Agency   Agency    `json:"agency,omitempty" gorm:"foreignKey:AgencyID"`
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:TalentID"`
}
