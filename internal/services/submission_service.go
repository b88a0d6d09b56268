// internal/services/submission_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/workflow"
)

// SubmissionService persists license submissions and drives the signing
// provider. The provider is injected behind the workflow interface so tests
// can substitute a fake.
type SubmissionService struct {
	db                  *gorm.DB
	provider            workflow.SubmissionAPI
	notificationService *NotificationService
}

type SubmissionFormRequest struct {
	TemplateID         uuid.UUID  `json:"template_id" validate:"required"`
	DraftID            *uuid.UUID `json:"draft_id,omitempty"`
	ClientName         string     `json:"client_name" validate:"required"`
	ClientEmail        string     `json:"client_email" validate:"required,email"`
	TalentNames        string     `json:"talent_names,omitempty"`
	LicenseFee         *float64   `json:"license_fee,omitempty"`
	DocusealTemplateID string     `json:"docuseal_template_id,omitempty"`
}

type PreviewResponse struct {
	DraftID    uuid.UUID `json:"draft_id"`
	PreviewURL string    `json:"preview_url"`
}

type SubmissionSearchParams struct {
	utils.PaginationParams
	Status *models.SubmissionStatus `json:"status,omitempty"`
}

func NewSubmissionService(db *gorm.DB, provider workflow.SubmissionAPI, notificationService *NotificationService) *SubmissionService {
	return &SubmissionService{
		db:                  db,
		provider:            provider,
		notificationService: notificationService,
	}
}

// CreateDraft registers a draft with the provider and persists the workflow
// instance. Callers hold on to the returned row's ID for preview and finalize.
func (s *SubmissionService) CreateDraft(ctx context.Context, agencyID uuid.UUID, req *SubmissionFormRequest) (*models.LicenseSubmission, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return s.ensureDraft(ctx, agencyID, req)
}

// Preview renders the current form snapshot against the draft, creating the
// draft first when the caller does not hold one yet. Repeat previews reuse the
// same draft.
func (s *SubmissionService) Preview(ctx context.Context, agencyID uuid.UUID, req *SubmissionFormRequest) (*PreviewResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	submission, err := s.ensureDraft(ctx, agencyID, req)
	if err != nil {
		return nil, err
	}

	template, err := s.templateForAgency(agencyID, req.TemplateID)
	if err != nil {
		return nil, err
	}

	payload := workflow.BuildDraftRequest(template, s.workflowOptions(req), s.formInput(req))
	url, err := s.provider.Preview(ctx, submission.DocusealSubmissionID, payload)
	if err != nil {
		return nil, &workflow.Error{Class: workflow.FailurePreview, Err: err}
	}

	return &PreviewResponse{
		DraftID:    submission.ID,
		PreviewURL: url,
	}, nil
}

// Finalize dispatches the draft for signature. This is the one-way transition:
// on success the row is marked sent and no further edits are possible through
// this workflow. On provider failure the draft stays reusable for a retry.
func (s *SubmissionService) Finalize(ctx context.Context, agencyID uuid.UUID, req *SubmissionFormRequest) (*models.LicenseSubmission, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	submission, err := s.ensureDraft(ctx, agencyID, req)
	if err != nil {
		return nil, err
	}

	if submission.Status == models.SubmissionStatusSent {
		return nil, errors.New("submission has already been sent")
	}

	template, err := s.templateForAgency(agencyID, req.TemplateID)
	if err != nil {
		return nil, err
	}

	payload := workflow.BuildFinalizeRequest(template, s.workflowOptions(req), s.formInput(req))
	if err := s.provider.Finalize(ctx, submission.DocusealSubmissionID, payload); err != nil {
		return nil, &workflow.Error{Class: workflow.FailureSending, Err: err}
	}

	now := time.Now()
	submission.Status = models.SubmissionStatusSent
	submission.SentAt = &now
	if err := s.db.Save(submission).Error; err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	go s.sendSentNotification(submission)

	return submission, nil
}

func (s *SubmissionService) GetSubmission(id uuid.UUID, agencyID uuid.UUID) (*models.LicenseSubmission, error) {
	var submission models.LicenseSubmission
	if err := s.db.Preload("Template").
		Where("id = ? AND agency_id = ?", id, agencyID).
		First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("submission not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &submission, nil
}

// SearchSubmissions lists an agency's submissions. Drafts are excluded unless
// asked for explicitly; no list view shows unsent drafts by default.
func (s *SubmissionService) SearchSubmissions(agencyID uuid.UUID, params SubmissionSearchParams) ([]models.LicenseSubmission, int64, error) {
	query := s.db.Model(&models.LicenseSubmission{}).
		Where("agency_id = ?", agencyID).
		Preload("Template")

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	} else {
		query = query.Where("status = ?", models.SubmissionStatusSent)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	allowedSortFields := []string{"created_at", "sent_at", "client_name"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var submissions []models.LicenseSubmission
	if err := query.Find(&submissions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	return submissions, total, nil
}

// ensureDraft returns the existing draft when the request carries an id, and
// otherwise creates one remotely and locally. A second draft is never created
// for a request that already names one.
func (s *SubmissionService) ensureDraft(ctx context.Context, agencyID uuid.UUID, req *SubmissionFormRequest) (*models.LicenseSubmission, error) {
	if req.DraftID != nil {
		var existing models.LicenseSubmission
		if err := s.db.Where("id = ? AND agency_id = ?", *req.DraftID, agencyID).
			First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("draft not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		return &existing, nil
	}

	template, err := s.templateForAgency(agencyID, req.TemplateID)
	if err != nil {
		return nil, err
	}

	payload := workflow.BuildDraftRequest(template, s.workflowOptions(req), s.formInput(req))
	draft, err := s.provider.CreateDraft(ctx, payload)
	if err != nil {
		return nil, &workflow.Error{Class: workflow.FailureDraft, Err: err}
	}
	if draft == nil || draft.ID == "" {
		return nil, &workflow.Error{Class: workflow.FailureDraft, Err: workflow.ErrDraftMissingID}
	}

	submission := &models.LicenseSubmission{
		TemplateID:           template.ID,
		AgencyID:             agencyID,
		DocusealTemplateID:   payload.DocusealTemplateID,
		DocusealSubmissionID: draft.ID,
		ClientName:           payload.ClientName,
		ClientEmail:          payload.ClientEmail,
		TalentNames:          payload.TalentNames,
		LicenseFee:           payload.LicenseFee,
		DurationDays:         payload.DurationDays,
		CustomTerms:          payload.CustomTerms,
		StartDate:            template.StartDate,
		Status:               models.SubmissionStatusDraft,
	}

	if err := s.db.Create(submission).Error; err != nil {
		return nil, fmt.Errorf("failed to persist draft: %w", err)
	}

	return submission, nil
}

func (s *SubmissionService) templateForAgency(agencyID, templateID uuid.UUID) (*models.LicenseTemplate, error) {
	var template models.LicenseTemplate
	if err := s.db.Where("id = ? AND agency_id = ? AND is_active = ?", templateID, agencyID, true).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("license template not found or inactive")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &template, nil
}

func (s *SubmissionService) workflowOptions(req *SubmissionFormRequest) workflow.Options {
	return workflow.Options{
		FeeOverride:        req.LicenseFee,
		DocusealTemplateID: req.DocusealTemplateID,
	}
}

func (s *SubmissionService) formInput(req *SubmissionFormRequest) workflow.FormInput {
	return workflow.FormInput{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		TalentNames: req.TalentNames,
	}
}

func (s *SubmissionService) sendSentNotification(submission *models.LicenseSubmission) {
	if s.notificationService == nil {
		return
	}

	var agency models.Agency
	if err := s.db.Preload("Owner").First(&agency, submission.AgencyID).Error; err != nil {
		return
	}

	s.notificationService.SendSubmissionSentNotification(&agency, submission)
}
