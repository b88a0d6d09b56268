// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"gorm.io/gorm"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/config"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

type PaymentService struct {
	db     *gorm.DB
	config *config.Config
}

type CreatePaymentIntentRequest struct {
	Amount   float64           `json:"amount" validate:"required,min=0.01"`
	Currency string            `json:"currency,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	TransactionID   uuid.UUID `json:"transaction_id" validate:"required"`
}

type RefundRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" validate:"required"`
	Amount        float64   `json:"amount,omitempty"`
	Reason        string    `json:"reason" validate:"required"`
}

func NewPaymentService(db *gorm.DB, config *config.Config) *PaymentService {
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: config,
	}
}

func (s *PaymentService) CreatePaymentIntent(userID uuid.UUID, req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	// Stripe amounts are in the smallest currency unit
	amountInCents := int64(req.Amount * 100)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("user_id", userID.String())
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

// ConfirmPayment reconciles a pending transaction with Stripe. For completed
// credit purchases it appends the purchase entry to the buyer's ledger in the
// same database transaction, so credits are never granted without a settled
// payment.
func (s *PaymentService) ConfirmPayment(userID uuid.UUID, req *ConfirmPaymentRequest) (*models.Transaction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", req.TransactionID, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("transaction not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if transaction.Status == models.TransactionStatusCompleted {
		return &transaction, nil
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		err = s.db.Transaction(func(tx *gorm.DB) error {
			now := time.Now()
			transaction.Status = models.TransactionStatusCompleted
			transaction.ProcessedAt = &now
			transaction.PaymentReference = pi.ID
			if err := tx.Save(&transaction).Error; err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			if transaction.TransactionType == models.TransactionTypeCreditPurchase {
				entry := &models.CreditEntry{
					UserID:        transaction.UserID,
					EntryType:     models.CreditEntryPurchase,
					Amount:        transaction.CreditAmount,
					Description:   fmt.Sprintf("Purchased %d credits", transaction.CreditAmount),
					TransactionID: &transaction.ID,
				}
				if err := tx.Create(entry).Error; err != nil {
					return fmt.Errorf("failed to record credit purchase: %w", err)
				}
			}

			return nil
		})
		if err != nil {
			return nil, err
		}

	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		transaction.Status = models.TransactionStatusPending
		if err := s.db.Save(&transaction).Error; err != nil {
			return nil, fmt.Errorf("failed to update transaction: %w", err)
		}

	default:
		transaction.Status = models.TransactionStatusFailed
		if err := s.db.Save(&transaction).Error; err != nil {
			return nil, fmt.Errorf("failed to update transaction: %w", err)
		}
	}

	return &transaction, nil
}

// ProcessRefund reverses a completed transaction through Stripe. A refunded
// credit purchase also claws the credits back out of the ledger, which may
// leave the balance negative if they were already spent.
func (s *PaymentService) ProcessRefund(req *RefundRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var transaction models.Transaction
	if err := s.db.First(&transaction, req.TransactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("transaction not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if transaction.Status != models.TransactionStatusCompleted {
		return errors.New("can only refund completed transactions")
	}

	refundAmount := req.Amount
	if refundAmount <= 0 || refundAmount > transaction.Amount {
		refundAmount = transaction.Amount
	}

	if transaction.PaymentReference != "" {
		params := &stripe.RefundParams{
			PaymentIntent: stripe.String(transaction.PaymentReference),
			Amount:        stripe.Int64(int64(refundAmount * 100)),
			Reason:        stripe.String("requested_by_customer"),
		}
		if _, err := refund.New(params); err != nil {
			return fmt.Errorf("failed to process refund: %w", err)
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		transaction.Status = models.TransactionStatusRefunded
		transaction.RefundedAt = &now
		transaction.RefundReason = req.Reason
		if err := tx.Save(&transaction).Error; err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		if transaction.TransactionType == models.TransactionTypeCreditPurchase && transaction.CreditAmount > 0 {
			entry := &models.CreditEntry{
				UserID:        transaction.UserID,
				EntryType:     models.CreditEntryRefund,
				Amount:        -transaction.CreditAmount,
				Description:   "Credit purchase refunded",
				TransactionID: &transaction.ID,
			}
			if err := tx.Create(entry).Error; err != nil {
				return fmt.Errorf("failed to record credit refund: %w", err)
			}
			logrus.WithFields(logrus.Fields{
				"user_id":        transaction.UserID,
				"transaction_id": transaction.ID,
				"credits":        transaction.CreditAmount,
			}).Info("Credits clawed back after refund")
		}

		return nil
	})
}

func (s *PaymentService) GetPaymentHistory(userID uuid.UUID, params utils.PaginationParams) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Preload("Booking")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	allowedSortFields := []string{"created_at", "amount", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return transactions, total, nil
}
