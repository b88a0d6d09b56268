// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

type AdminService struct {
	db                  *gorm.DB
	notificationService *NotificationService
	paymentService      *PaymentService
}

type AdminDashboardStats struct {
	TotalUsers        int64   `json:"total_users"`
	ActiveUsers       int64   `json:"active_users"`
	NewUsersThisMonth int64   `json:"new_users_this_month"`
	TotalAgencies     int64   `json:"total_agencies"`
	TotalRosterSize   int64   `json:"total_roster_size"`
	TotalRevenue      float64 `json:"total_revenue"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	ContractsSent     int64   `json:"contracts_sent"`
	OpenProspects     int64   `json:"open_prospects"`
	ActiveBookings    int64   `json:"active_bookings"`
	CreditsSold       int64   `json:"credits_sold"`
	GenerationsRun    int64   `json:"generations_run"`
}

type AdminUserFilter struct {
	utils.PaginationParams
	UserType      *models.UserType   `json:"user_type,omitempty"`
	Status        *models.UserStatus `json:"status,omitempty"`
	CreatedAfter  *time.Time         `json:"created_after,omitempty"`
	CreatedBefore *time.Time         `json:"created_before,omitempty"`
}

type AdminTransactionFilter struct {
	utils.PaginationParams
	TransactionType *models.TransactionType   `json:"transaction_type,omitempty"`
	Status          *models.TransactionStatus `json:"status,omitempty"`
	UserID          *uuid.UUID                `json:"user_id,omitempty"`
	CreatedAfter    *time.Time                `json:"created_after,omitempty"`
	CreatedBefore   *time.Time                `json:"created_before,omitempty"`
}

func NewAdminService(db *gorm.DB, notificationService *NotificationService, paymentService *PaymentService) *AdminService {
	return &AdminService{
		db:                  db,
		notificationService: notificationService,
		paymentService:      paymentService,
	}
}

func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}
	monthStart := time.Now().AddDate(0, 0, -30)

	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&stats.ActiveUsers)
	s.db.Model(&models.User{}).Where("created_at >= ?", monthStart).Count(&stats.NewUsersThisMonth)
	s.db.Model(&models.Agency{}).Count(&stats.TotalAgencies)
	s.db.Model(&models.RosterMember{}).Where("is_active = ?", true).Count(&stats.TotalRosterSize)

	s.db.Model(&models.Transaction{}).
		Where("status = ?", models.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalRevenue)
	s.db.Model(&models.Transaction{}).
		Where("status = ? AND created_at >= ?", models.TransactionStatusCompleted, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.MonthlyRevenue)

	s.db.Model(&models.LicenseSubmission{}).
		Where("status = ?", models.SubmissionStatusSent).Count(&stats.ContractsSent)
	s.db.Model(&models.ScoutingProspect{}).
		Where("stage NOT IN ?", []models.ProspectStage{models.ProspectStageSigned, models.ProspectStagePassed}).
		Count(&stats.OpenProspects)
	s.db.Model(&models.Booking{}).
		Where("status IN ?", []models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Count(&stats.ActiveBookings)

	var creditsSold int64
	s.db.Model(&models.CreditEntry{}).
		Where("entry_type = ?", models.CreditEntryPurchase).
		Select("COALESCE(SUM(amount), 0)").Scan(&creditsSold)
	stats.CreditsSold = creditsSold
	s.db.Model(&models.GenerationJob{}).Count(&stats.GenerationsRun)

	return stats, nil
}

func (s *AdminService) GetUsers(filter AdminUserFilter) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{}).Preload("Agency")

	if filter.UserType != nil {
		query = query.Where("user_type = ?", *filter.UserType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	allowedSortFields := []string{"created_at", "username", "email", "last_login_at"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

func (s *AdminService) UpdateUserStatus(userID uuid.UUID, status models.UserStatus, adminID uuid.UUID, reason string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if user.UserType == models.UserTypeAdmin {
		return errors.New("cannot change status of admin accounts")
	}

	oldStatus := user.Status
	user.Status = status
	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	s.createAuditLog(adminID, "user_status_change", "user", &user.ID, map[string]interface{}{
		"old_status": string(oldStatus),
		"new_status": string(status),
		"reason":     reason,
	})

	go s.notificationService.SendUserStatusChangeNotification(&user, oldStatus, reason)

	return nil
}

func (s *AdminService) GetTransactions(filter AdminTransactionFilter) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{}).Preload("User").Preload("Booking")

	if filter.TransactionType != nil {
		query = query.Where("transaction_type = ?", *filter.TransactionType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	allowedSortFields := []string{"created_at", "amount", "status"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return transactions, total, nil
}

func (s *AdminService) ProcessRefund(transactionID uuid.UUID, adminID uuid.UUID, reason string) error {
	if err := s.paymentService.ProcessRefund(&RefundRequest{
		TransactionID: transactionID,
		Reason:        reason,
	}); err != nil {
		return err
	}

	s.createAuditLog(adminID, "refund_processed", "transaction", &transactionID, map[string]interface{}{
		"reason": reason,
	})

	return nil
}

func (s *AdminService) GetAuditLogs(params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{}).Preload("User")

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("action ILIKE ? OR resource_type ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	allowedSortFields := []string{"created_at", "action"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, total, nil
}

func (s *AdminService) createAuditLog(userID uuid.UUID, action, resourceType string, resourceID *uuid.UUID, newValues map[string]interface{}) {
	log := &models.AuditLog{
		UserID:       &userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		NewValues:    models.JSONB(newValues),
	}

	s.db.Create(log)
}
