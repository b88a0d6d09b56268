// internal/services/prospect_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/database"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

var ErrDuplicateProspect = errors.New("a prospect with this email or Instagram handle already exists")

// ProspectService manages the scouting pipeline. Duplicate detection is
// agency-scoped: the same person can sit in two different agencies' pipelines,
// but never twice in one.
type ProspectService struct {
	db                  *gorm.DB
	rosterService       *RosterService
	notificationService *NotificationService
}

type CreateProspectRequest struct {
	FullName        string   `json:"full_name" validate:"required,min=2,max=255"`
	Email           string   `json:"email,omitempty" validate:"omitempty,email"`
	InstagramHandle string   `json:"instagram_handle,omitempty" validate:"omitempty,instagram_handle"`
	Source          string   `json:"source,omitempty" validate:"omitempty,max=100"`
	Tags            []string `json:"tags,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

type UpdateProspectRequest struct {
	FullName        *string  `json:"full_name,omitempty" validate:"omitempty,min=2,max=255"`
	Email           *string  `json:"email,omitempty" validate:"omitempty,email"`
	InstagramHandle *string  `json:"instagram_handle,omitempty" validate:"omitempty,instagram_handle"`
	Source          *string  `json:"source,omitempty" validate:"omitempty,max=100"`
	Tags            []string `json:"tags,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

type ProspectSearchParams struct {
	utils.PaginationParams
	Stage *models.ProspectStage `json:"stage,omitempty"`
}

func NewProspectService(db *gorm.DB, rosterService *RosterService, notificationService *NotificationService) *ProspectService {
	return &ProspectService{
		db:                  db,
		rosterService:       rosterService,
		notificationService: notificationService,
	}
}

// normalizeEmail lowercases and trims so duplicate checks are plain equality.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeInstagramHandle strips a leading @ and lowercases. Handles are
// case-insensitive on the platform itself.
func normalizeInstagramHandle(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}

func (s *ProspectService) CreateProspect(agencyID uuid.UUID, req *CreateProspectRequest) (*models.ScoutingProspect, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	email := normalizeEmail(req.Email)
	handle := normalizeInstagramHandle(req.InstagramHandle)

	if err := s.checkDuplicate(agencyID, email, handle, nil); err != nil {
		return nil, err
	}

	prospect := &models.ScoutingProspect{
		AgencyID:        agencyID,
		FullName:        req.FullName,
		Email:           email,
		InstagramHandle: handle,
		Source:          req.Source,
		Stage:           models.ProspectStageNew,
		Tags:            pq.StringArray(req.Tags),
		Notes:           req.Notes,
	}

	if err := s.db.Create(prospect).Error; err != nil {
		return nil, fmt.Errorf("failed to create prospect: %w", err)
	}

	return prospect, nil
}

func (s *ProspectService) UpdateProspect(id, agencyID uuid.UUID, req *UpdateProspectRequest) (*models.ScoutingProspect, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	prospect, err := s.GetProspect(id, agencyID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if err := s.checkDuplicate(agencyID, email, "", &prospect.ID); err != nil {
			return nil, err
		}
		updates["email"] = email
	}
	if req.InstagramHandle != nil {
		handle := normalizeInstagramHandle(*req.InstagramHandle)
		if err := s.checkDuplicate(agencyID, "", handle, &prospect.ID); err != nil {
			return nil, err
		}
		updates["instagram_handle"] = handle
	}
	if req.Source != nil {
		updates["source"] = *req.Source
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) == 0 {
		return prospect, nil
	}

	if err := s.db.Model(prospect).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update prospect: %w", err)
	}

	return prospect, nil
}

// AdvanceStage moves a prospect along the pipeline. Signing is handled by
// SignProspect; this method rejects the signed stage so a prospect cannot be
// marked signed without a roster row.
func (s *ProspectService) AdvanceStage(id, agencyID uuid.UUID, stage models.ProspectStage) (*models.ScoutingProspect, error) {
	switch stage {
	case models.ProspectStageContacted, models.ProspectStageMeeting, models.ProspectStagePassed:
	case models.ProspectStageSigned:
		return nil, errors.New("use the sign operation to mark a prospect signed")
	default:
		return nil, errors.New("invalid pipeline stage")
	}

	prospect, err := s.GetProspect(id, agencyID)
	if err != nil {
		return nil, err
	}

	if prospect.Stage == models.ProspectStageSigned {
		return nil, errors.New("signed prospects cannot change stage")
	}

	if err := s.db.Model(prospect).Update("stage", stage).Error; err != nil {
		return nil, fmt.Errorf("failed to update prospect stage: %w", err)
	}

	return prospect, nil
}

// SignProspect converts a prospect into a roster member in one transaction.
func (s *ProspectService) SignProspect(id, agencyID uuid.UUID, dayRate float64) (*models.ScoutingProspect, error) {
	prospect, err := s.GetProspect(id, agencyID)
	if err != nil {
		return nil, err
	}

	if prospect.Stage == models.ProspectStageSigned {
		return nil, errors.New("prospect has already been signed")
	}
	if prospect.Stage == models.ProspectStagePassed {
		return nil, errors.New("passed prospects cannot be signed")
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		member := &models.RosterMember{
			AgencyID:        agencyID,
			FullName:        prospect.FullName,
			Email:           prospect.Email,
			InstagramHandle: prospect.InstagramHandle,
			DayRate:         dayRate,
			IsActive:        true,
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("failed to create roster member: %w", err)
		}

		now := time.Now()
		return tx.Model(prospect).Updates(map[string]interface{}{
			"stage":            models.ProspectStageSigned,
			"signed_at":        now,
			"roster_member_id": member.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	go s.sendSignedNotification(prospect)

	return prospect, nil
}

func (s *ProspectService) GetProspect(id, agencyID uuid.UUID) (*models.ScoutingProspect, error) {
	var prospect models.ScoutingProspect
	if err := s.db.Where("id = ? AND agency_id = ?", id, agencyID).First(&prospect).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("prospect not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &prospect, nil
}

func (s *ProspectService) SearchProspects(agencyID uuid.UUID, params ProspectSearchParams) ([]models.ScoutingProspect, int64, error) {
	query := s.db.Model(&models.ScoutingProspect{}).Where("agency_id = ?", agencyID)

	if params.Stage != nil {
		query = query.Where("stage = ?", *params.Stage)
	}

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ? OR instagram_handle ILIKE ?", search, search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count prospects: %w", err)
	}

	allowedSortFields := []string{"created_at", "full_name", "stage"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var prospects []models.ScoutingProspect
	if err := query.Find(&prospects).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch prospects: %w", err)
	}

	return prospects, total, nil
}

func (s *ProspectService) DeleteProspect(id, agencyID uuid.UUID) error {
	result := s.db.Where("id = ? AND agency_id = ?", id, agencyID).Delete(&models.ScoutingProspect{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete prospect: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("prospect not found")
	}

	return nil
}

// checkDuplicate enforces agency-scoped uniqueness on normalized email and
// handle. The partial unique indexes back this up at the database level.
func (s *ProspectService) checkDuplicate(agencyID uuid.UUID, email, handle string, excludeID *uuid.UUID) error {
	if email == "" && handle == "" {
		return nil
	}

	query := s.db.Model(&models.ScoutingProspect{}).Where("agency_id = ?", agencyID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	switch {
	case email != "" && handle != "":
		query = query.Where("email = ? OR instagram_handle = ?", email, handle)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		query = query.Where("instagram_handle = ?", handle)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return ErrDuplicateProspect
	}

	return nil
}

func (s *ProspectService) sendSignedNotification(prospect *models.ScoutingProspect) {
	if s.notificationService == nil {
		return
	}

	var agency models.Agency
	if err := s.db.Preload("Owner").First(&agency, prospect.AgencyID).Error; err != nil {
		return
	}

	s.notificationService.SendProspectSignedNotification(&agency, prospect)
}
