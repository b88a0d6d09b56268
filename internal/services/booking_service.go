// internal/services/booking_service.go
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

type BookingService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type CreateBookingRequest struct {
	TalentID  uuid.UUID `json:"talent_id" validate:"required"`
	Title     string    `json:"title" validate:"required,min=2,max=255"`
	Brief     string    `json:"brief,omitempty"`
	StartDate string    `json:"start_date" validate:"required"`
	EndDate   string    `json:"end_date" validate:"required"`
}

type BookingSearchParams struct {
	utils.PaginationParams
	Status *models.BookingStatus `json:"status,omitempty"`
}

func NewBookingService(db *gorm.DB, notificationService *NotificationService) *BookingService {
	return &BookingService{db: db, notificationService: notificationService}
}

// CreateBooking opens a pending booking request from a brand against a roster
// member. The rate is taken from the member's day rate times the number of
// days, so brands cannot name their own price.
func (s *BookingService) CreateBooking(brandUserID uuid.UUID, req *CreateBookingRequest) (*models.Booking, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	startDate, endDate, err := parseBookingDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var talent models.RosterMember
	if err := s.db.Where("id = ? AND is_active = ?", req.TalentID, true).First(&talent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("talent not found or inactive")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	booking := &models.Booking{
		AgencyID:    talent.AgencyID,
		TalentID:    talent.ID,
		BrandUserID: brandUserID,
		Title:       req.Title,
		Brief:       req.Brief,
		StartDate:   startDate,
		EndDate:     endDate,
		Rate:        bookingRate(talent.DayRate, startDate, endDate),
		Status:      models.BookingStatusPending,
	}

	if err := s.db.Create(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	go s.sendBookingNotification(booking, "requested")

	return booking, nil
}

func parseBookingDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start date format, expected YYYY-MM-DD")
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end date format, expected YYYY-MM-DD")
	}
	if !endDate.After(startDate) {
		return time.Time{}, time.Time{}, errors.New("end date must be after start date")
	}
	return startDate, endDate, nil
}

func bookingRate(dayRate float64, start, end time.Time) float64 {
	days := int(end.Sub(start).Hours() / 24)
	return dayRate * float64(days)
}

// ConfirmBooking is an agency action on a pending booking.
func (s *BookingService) ConfirmBooking(id, agencyID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingForAgency(id, agencyID)
	if err != nil {
		return nil, err
	}

	if booking.Status != models.BookingStatusPending {
		return nil, fmt.Errorf("cannot confirm a booking in status %s", booking.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.BookingStatusConfirmed,
		"confirmed_at": now,
	}
	if err := s.db.Model(booking).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	go s.sendBookingNotification(booking, "confirmed")

	return booking, nil
}

// CompleteBooking closes out a confirmed booking after the end date.
func (s *BookingService) CompleteBooking(id, agencyID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingForAgency(id, agencyID)
	if err != nil {
		return nil, err
	}

	if booking.Status != models.BookingStatusConfirmed {
		return nil, fmt.Errorf("cannot complete a booking in status %s", booking.Status)
	}

	if err := s.db.Model(booking).Update("status", models.BookingStatusCompleted).Error; err != nil {
		return nil, fmt.Errorf("failed to complete booking: %w", err)
	}

	return booking, nil
}

// CancelBooking is available to either side while the booking is pending or
// confirmed. Completed bookings cannot be canceled.
func (s *BookingService) CancelBooking(id, userID uuid.UUID, reason string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Agency").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if booking.BrandUserID != userID && booking.Agency.OwnerID != userID {
		return nil, errors.New("access denied to this booking")
	}

	switch booking.Status {
	case models.BookingStatusPending, models.BookingStatusConfirmed:
	default:
		return nil, fmt.Errorf("cannot cancel a booking in status %s", booking.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":        models.BookingStatusCanceled,
		"canceled_at":   now,
		"cancel_reason": reason,
	}
	if err := s.db.Model(&booking).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	go s.sendBookingNotification(&booking, "canceled")

	return &booking, nil
}

func (s *BookingService) GetBooking(id, userID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Talent").Preload("Agency").Preload("Brand").
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if booking.BrandUserID != userID && booking.Agency.OwnerID != userID {
		return nil, errors.New("access denied to this booking")
	}

	return &booking, nil
}

func (s *BookingService) SearchAgencyBookings(agencyID uuid.UUID, params BookingSearchParams) ([]models.Booking, int64, error) {
	query := s.db.Model(&models.Booking{}).
		Where("agency_id = ?", agencyID).
		Preload("Talent").Preload("Brand")

	return s.search(query, params)
}

func (s *BookingService) SearchBrandBookings(brandUserID uuid.UUID, params BookingSearchParams) ([]models.Booking, int64, error) {
	query := s.db.Model(&models.Booking{}).
		Where("brand_user_id = ?", brandUserID).
		Preload("Talent").Preload("Agency")

	return s.search(query, params)
}

func (s *BookingService) search(query *gorm.DB, params BookingSearchParams) ([]models.Booking, int64, error) {
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Search != "" {
		query = query.Where("title ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	allowedSortFields := []string{"created_at", "start_date", "rate"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	return bookings, total, nil
}

func (s *BookingService) bookingForAgency(id, agencyID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Where("id = ? AND agency_id = ?", id, agencyID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &booking, nil
}

func (s *BookingService) sendBookingNotification(booking *models.Booking, event string) {
	if s.notificationService == nil {
		return
	}

	s.notificationService.SendBookingNotification(booking, event)
}
