// internal/services/agency_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

type AgencyService struct {
	db             *gorm.DB
	storageService *StorageService
}

type UpdateAgencyRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url"`
	Description *string `json:"description,omitempty"`
}

func NewAgencyService(db *gorm.DB, storageService *StorageService) *AgencyService {
	return &AgencyService{db: db, storageService: storageService}
}

func (s *AgencyService) GetAgency(id uuid.UUID) (*models.Agency, error) {
	var agency models.Agency
	if err := s.db.Preload("Owner").First(&agency, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("agency not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &agency, nil
}

func (s *AgencyService) UpdateAgency(id uuid.UUID, req *UpdateAgencyRequest) (*models.Agency, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	agency, err := s.GetAgency(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return agency, nil
	}

	if err := s.db.Model(agency).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update agency: %w", err)
	}

	return agency, nil
}

func (s *AgencyService) UploadLogo(id uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.Agency, error) {
	agency, err := s.GetAgency(id)
	if err != nil {
		return nil, err
	}

	if err := s.storageService.ValidateImage(file); err != nil {
		return nil, err
	}

	result, err := s.storageService.UploadFile(file, header, s.storageService.GetDefaultUploadOptions("agency_logos"))
	if err != nil {
		return nil, err
	}

	oldLogoURL := agency.LogoURL
	if err := s.db.Model(agency).Update("logo_url", result.URL).Error; err != nil {
		return nil, fmt.Errorf("failed to update agency logo: %w", err)
	}

	// Best-effort cleanup of the replaced logo object.
	if oldKey := s.storageService.KeyFromURL(oldLogoURL); oldKey != "" {
		if err := s.storageService.DeleteFile(oldKey); err != nil {
			logrus.WithError(err).WithField("key", oldKey).Warn("Failed to delete replaced agency logo")
		}
	}

	return agency, nil
}
