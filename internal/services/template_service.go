// internal/services/template_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/docuseal"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

// TemplateProvider lists the contract templates configured at the signing
// provider, so agencies can bind a local template to a provider document.
type TemplateProvider interface {
	ListTemplates(ctx context.Context) ([]docuseal.Template, error)
}

type TemplateService struct {
	db       *gorm.DB
	provider TemplateProvider
}

type CreateTemplateRequest struct {
	Name               string   `json:"name" validate:"required,min=2,max=255"`
	ClientName         string   `json:"client_name,omitempty" validate:"omitempty,max=255"`
	TalentName         string   `json:"talent_name,omitempty" validate:"omitempty,max=255"`
	LicenseFee         float64  `json:"license_fee" validate:"min=0"`
	DurationDays       int      `json:"duration_days" validate:"min=0"`
	StartDate          *string  `json:"start_date,omitempty"`
	CustomTerms        string   `json:"custom_terms,omitempty"`
	DocusealTemplateID string   `json:"docuseal_template_id" validate:"required"`
}

type UpdateTemplateRequest struct {
	Name               *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	ClientName         *string  `json:"client_name,omitempty" validate:"omitempty,max=255"`
	TalentName         *string  `json:"talent_name,omitempty" validate:"omitempty,max=255"`
	LicenseFee         *float64 `json:"license_fee,omitempty" validate:"omitempty,min=0"`
	DurationDays       *int     `json:"duration_days,omitempty" validate:"omitempty,min=0"`
	StartDate          *string  `json:"start_date,omitempty"`
	CustomTerms        *string  `json:"custom_terms,omitempty"`
	DocusealTemplateID *string  `json:"docuseal_template_id,omitempty"`
	IsActive           *bool    `json:"is_active,omitempty"`
}

func NewTemplateService(db *gorm.DB, provider TemplateProvider) *TemplateService {
	return &TemplateService{db: db, provider: provider}
}

func (s *TemplateService) CreateTemplate(agencyID uuid.UUID, req *CreateTemplateRequest) (*models.LicenseTemplate, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	template := &models.LicenseTemplate{
		AgencyID:           agencyID,
		Name:               req.Name,
		ClientName:         req.ClientName,
		TalentName:         req.TalentName,
		LicenseFee:         req.LicenseFee,
		DurationDays:       req.DurationDays,
		StartDate:          startDate,
		CustomTerms:        req.CustomTerms,
		DocusealTemplateID: req.DocusealTemplateID,
		IsActive:           true,
	}

	if err := s.db.Create(template).Error; err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	return template, nil
}

func (s *TemplateService) UpdateTemplate(id, agencyID uuid.UUID, req *UpdateTemplateRequest) (*models.LicenseTemplate, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	template, err := s.GetTemplate(id, agencyID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ClientName != nil {
		updates["client_name"] = *req.ClientName
	}
	if req.TalentName != nil {
		updates["talent_name"] = *req.TalentName
	}
	if req.LicenseFee != nil {
		updates["license_fee"] = *req.LicenseFee
	}
	if req.DurationDays != nil {
		updates["duration_days"] = *req.DurationDays
	}
	if req.StartDate != nil {
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		updates["start_date"] = startDate
	}
	if req.CustomTerms != nil {
		updates["custom_terms"] = *req.CustomTerms
	}
	if req.DocusealTemplateID != nil {
		updates["docuseal_template_id"] = *req.DocusealTemplateID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return template, nil
	}

	if err := s.db.Model(template).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return template, nil
}

func (s *TemplateService) GetTemplate(id, agencyID uuid.UUID) (*models.LicenseTemplate, error) {
	var template models.LicenseTemplate
	if err := s.db.Where("id = ? AND agency_id = ?", id, agencyID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("license template not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &template, nil
}

func (s *TemplateService) ListTemplates(agencyID uuid.UUID, params utils.PaginationParams, includeInactive bool) ([]models.LicenseTemplate, int64, error) {
	query := s.db.Model(&models.LicenseTemplate{}).Where("agency_id = ?", agencyID)

	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR client_name ILIKE ? OR talent_name ILIKE ?", search, search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count templates: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "license_fee"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var templates []models.LicenseTemplate
	if err := query.Find(&templates).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch templates: %w", err)
	}

	return templates, total, nil
}

// DeactivateTemplate soft-disables a template. Existing submissions keep their
// reference; new drafts can no longer be started from it.
func (s *TemplateService) DeactivateTemplate(id, agencyID uuid.UUID) error {
	result := s.db.Model(&models.LicenseTemplate{}).
		Where("id = ? AND agency_id = ?", id, agencyID).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate template: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("license template not found")
	}

	return nil
}

// ListProviderTemplates fetches the documents available at the signing
// provider for the template binding picker.
func (s *TemplateService) ListProviderTemplates(ctx context.Context) ([]docuseal.Template, error) {
	templates, err := s.provider.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider templates: %w", err)
	}

	return templates, nil
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, errors.New("invalid date format, expected YYYY-MM-DD")
	}

	return &parsed, nil
}
