// internal/services/roster_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

type RosterService struct {
	db *gorm.DB
}

type CreateRosterMemberRequest struct {
	FullName        string                 `json:"full_name" validate:"required,min=2,max=255"`
	Email           string                 `json:"email,omitempty" validate:"omitempty,email"`
	InstagramHandle string                 `json:"instagram_handle,omitempty" validate:"omitempty,instagram_handle"`
	DayRate         float64                `json:"day_rate" validate:"min=0"`
	Categories      []string               `json:"categories,omitempty"`
	PortfolioURLs   []string               `json:"portfolio_urls,omitempty" validate:"omitempty,dive,url"`
	Bio             string                 `json:"bio,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

type UpdateRosterMemberRequest struct {
	FullName        *string                `json:"full_name,omitempty" validate:"omitempty,min=2,max=255"`
	Email           *string                `json:"email,omitempty" validate:"omitempty,email"`
	InstagramHandle *string                `json:"instagram_handle,omitempty" validate:"omitempty,instagram_handle"`
	DayRate         *float64               `json:"day_rate,omitempty" validate:"omitempty,min=0"`
	Categories      []string               `json:"categories,omitempty"`
	PortfolioURLs   []string               `json:"portfolio_urls,omitempty" validate:"omitempty,dive,url"`
	Bio             *string                `json:"bio,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	IsActive        *bool                  `json:"is_active,omitempty"`
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{db: db}
}

func (s *RosterService) AddMember(agencyID uuid.UUID, req *CreateRosterMemberRequest) (*models.RosterMember, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	member := &models.RosterMember{
		AgencyID:        agencyID,
		FullName:        req.FullName,
		Email:           normalizeEmail(req.Email),
		InstagramHandle: normalizeInstagramHandle(req.InstagramHandle),
		DayRate:         req.DayRate,
		Categories:      pq.StringArray(req.Categories),
		PortfolioURLs:   pq.StringArray(req.PortfolioURLs),
		Bio:             req.Bio,
		Metadata:        models.JSONB(req.Metadata),
		IsActive:        true,
	}

	if err := s.db.Create(member).Error; err != nil {
		return nil, fmt.Errorf("failed to add roster member: %w", err)
	}

	return member, nil
}

func (s *RosterService) UpdateMember(id, agencyID uuid.UUID, req *UpdateRosterMemberRequest) (*models.RosterMember, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	member, err := s.GetMember(id, agencyID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = normalizeEmail(*req.Email)
	}
	if req.InstagramHandle != nil {
		updates["instagram_handle"] = normalizeInstagramHandle(*req.InstagramHandle)
	}
	if req.DayRate != nil {
		updates["day_rate"] = *req.DayRate
	}
	if req.Categories != nil {
		updates["categories"] = pq.StringArray(req.Categories)
	}
	if req.PortfolioURLs != nil {
		updates["portfolio_urls"] = pq.StringArray(req.PortfolioURLs)
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Metadata != nil {
		updates["metadata"] = models.JSONB(req.Metadata)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return member, nil
	}

	if err := s.db.Model(member).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update roster member: %w", err)
	}

	return member, nil
}

func (s *RosterService) GetMember(id, agencyID uuid.UUID) (*models.RosterMember, error) {
	var member models.RosterMember
	if err := s.db.Where("id = ? AND agency_id = ?", id, agencyID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("roster member not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &member, nil
}

func (s *RosterService) SearchMembers(agencyID uuid.UUID, params utils.PaginationParams, includeInactive bool) ([]models.RosterMember, int64, error) {
	query := s.db.Model(&models.RosterMember{}).Where("agency_id = ?", agencyID)

	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	if params.Search != "" {
		query = query.Where(
			"to_tsvector('english', full_name || ' ' || COALESCE(bio, '')) @@ plainto_tsquery('english', ?) OR full_name ILIKE ?",
			params.Search, "%"+params.Search+"%",
		)
	}

	if params.Category != "" {
		query = query.Where("? = ANY(categories)", params.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count roster members: %w", err)
	}

	allowedSortFields := []string{"created_at", "full_name", "day_rate"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var members []models.RosterMember
	if err := query.Find(&members).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch roster members: %w", err)
	}

	return members, total, nil
}

// BrowseTalent is the cross-agency directory brands book from. Only active
// members are visible and the filter surface matches SearchMembers.
func (s *RosterService) BrowseTalent(params utils.PaginationParams) ([]models.RosterMember, int64, error) {
	query := s.db.Model(&models.RosterMember{}).Where("is_active = ?", true)

	if params.Search != "" {
		query = query.Where(
			"to_tsvector('english', full_name || ' ' || COALESCE(bio, '')) @@ plainto_tsquery('english', ?) OR full_name ILIKE ?",
			params.Search, "%"+params.Search+"%",
		)
	}

	if params.Category != "" {
		query = query.Where("? = ANY(categories)", params.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count talent: %w", err)
	}

	allowedSortFields := []string{"created_at", "full_name", "day_rate"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var members []models.RosterMember
	if err := query.Find(&members).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch talent: %w", err)
	}

	return members, total, nil
}

// RemoveMember deactivates the member. The row and its booking history stay.
func (s *RosterService) RemoveMember(id, agencyID uuid.UUID) error {
	result := s.db.Model(&models.RosterMember{}).
		Where("id = ? AND agency_id = ?", id, agencyID).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to remove roster member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("roster member not found")
	}

	return nil
}
