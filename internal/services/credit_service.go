// internal/services/credit_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/config"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

var ErrInsufficientCredits = errors.New("insufficient credit balance")

// CreditService owns the append-only credit ledger. The balance is always
// derived from the ledger sum, never stored on the user row.
type CreditService struct {
	db             *gorm.DB
	config         *config.Config
	paymentService *PaymentService
}

type PurchasePackRequest struct {
	Packs int `json:"packs" validate:"required,min=1,max=100"`
}

type PurchasePackResponse struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Credits       int       `json:"credits"`
	AmountUSD     float64   `json:"amount_usd"`
	ClientSecret  string    `json:"client_secret"`
	PaymentID     string    `json:"payment_id"`
}

type GenerationRequest struct {
	TalentID *uuid.UUID `json:"talent_id,omitempty"`
	Prompt   string     `json:"prompt" validate:"required,min=3"`
	Model    string     `json:"model,omitempty" validate:"omitempty,max=100"`
}

func NewCreditService(db *gorm.DB, config *config.Config, paymentService *PaymentService) *CreditService {
	return &CreditService{
		db:             db,
		config:         config,
		paymentService: paymentService,
	}
}

func (s *CreditService) GetBalance(userID uuid.UUID) (int, error) {
	var balance int
	err := s.db.Model(&models.CreditEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute credit balance: %w", err)
	}

	return balance, nil
}

// PurchasePack opens a pending credit-pack transaction and a Stripe payment
// intent for it. Credits land in the ledger only when the payment is
// confirmed.
func (s *CreditService) PurchasePack(userID uuid.UUID, req *PurchasePackRequest) (*PurchasePackResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	credits := req.Packs * s.config.Credits.PackSize
	amount := float64(req.Packs) * s.config.Credits.PackPriceUSD

	transaction := &models.Transaction{
		TransactionType: models.TransactionTypeCreditPurchase,
		UserID:          userID,
		Amount:          amount,
		Currency:        "usd",
		CreditAmount:    credits,
		Status:          models.TransactionStatusPending,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	intent, err := s.paymentService.CreatePaymentIntent(userID, &CreatePaymentIntentRequest{
		Amount: amount,
		Metadata: map[string]string{
			"transaction_id": transaction.ID.String(),
			"credits":        fmt.Sprintf("%d", credits),
		},
	})
	if err != nil {
		return nil, err
	}

	return &PurchasePackResponse{
		TransactionID: transaction.ID,
		Credits:       credits,
		AmountUSD:     amount,
		ClientSecret:  intent.ClientSecret,
		PaymentID:     intent.PaymentID,
	}, nil
}

// RequestGeneration debits the generation cost and queues a job atomically.
// The balance check and the debit happen in one transaction under a lock on
// the user's latest ledger rows, so two concurrent requests cannot both spend
// the same credits.
func (s *CreditService) RequestGeneration(userID uuid.UUID, req *GenerationRequest) (*models.GenerationJob, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	cost := s.config.Credits.GenerationCost

	var job *models.GenerationJob
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entries []models.CreditEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Find(&entries).Error; err != nil {
			return fmt.Errorf("failed to read credit ledger: %w", err)
		}

		balance := 0
		for _, entry := range entries {
			balance += entry.Amount
		}
		if balance < cost {
			return ErrInsufficientCredits
		}

		job = &models.GenerationJob{
			UserID:     userID,
			TalentID:   req.TalentID,
			Prompt:     req.Prompt,
			Model:      req.Model,
			CreditCost: cost,
			Status:     models.GenerationJobQueued,
		}
		if err := tx.Create(job).Error; err != nil {
			return fmt.Errorf("failed to create generation job: %w", err)
		}

		debit := &models.CreditEntry{
			UserID:      userID,
			EntryType:   models.CreditEntryDebit,
			Amount:      -cost,
			Description: "AI generation",
			JobID:       &job.ID,
		}
		return tx.Create(debit).Error
	})
	if err != nil {
		return nil, err
	}

	return job, nil
}

// CompleteGeneration records the job result.
func (s *CreditService) CompleteGeneration(jobID uuid.UUID, resultURLs []string) error {
	urls := make(models.JSONB)
	urls["urls"] = resultURLs

	now := time.Now()
	result := s.db.Model(&models.GenerationJob{}).
		Where("id = ? AND status IN ?", jobID, []models.GenerationJobStatus{
			models.GenerationJobQueued,
			models.GenerationJobRunning,
		}).
		Updates(map[string]interface{}{
			"status":       models.GenerationJobSucceeded,
			"result_urls":  urls,
			"completed_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to complete generation job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("generation job not found or already finished")
	}

	return nil
}

// FailGeneration marks the job failed and refunds the debit, so users are
// only ever charged for generations that produced output.
func (s *CreditService) FailGeneration(jobID uuid.UUID, reason string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var job models.GenerationJob
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("generation job not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		switch job.Status {
		case models.GenerationJobQueued, models.GenerationJobRunning:
		default:
			return errors.New("generation job has already finished")
		}

		now := time.Now()
		if err := tx.Model(&job).Updates(map[string]interface{}{
			"status":       models.GenerationJobFailed,
			"error":        reason,
			"completed_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update generation job: %w", err)
		}

		credit := &models.CreditEntry{
			UserID:      job.UserID,
			EntryType:   models.CreditEntryRefund,
			Amount:      job.CreditCost,
			Description: "Refund for failed generation",
			JobID:       &job.ID,
		}
		return tx.Create(credit).Error
	})
}

func (s *CreditService) GetLedger(userID uuid.UUID, params utils.PaginationParams) ([]models.CreditEntry, int64, error) {
	query := s.db.Model(&models.CreditEntry{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	allowedSortFields := []string{"created_at", "amount"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var entries []models.CreditEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch ledger entries: %w", err)
	}

	return entries, total, nil
}

func (s *CreditService) GetGenerationJob(id, userID uuid.UUID) (*models.GenerationJob, error) {
	var job models.GenerationJob
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("generation job not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &job, nil
}

func (s *CreditService) ListGenerationJobs(userID uuid.UUID, params utils.PaginationParams) ([]models.GenerationJob, int64, error) {
	query := s.db.Model(&models.GenerationJob{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count generation jobs: %w", err)
	}

	allowedSortFields := []string{"created_at", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var jobs []models.GenerationJob
	if err := query.Find(&jobs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch generation jobs: %w", err)
	}

	return jobs, total, nil
}
