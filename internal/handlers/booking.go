// internal/handlers/booking.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/services"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// POST /bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"booking": booking})
}

// GET /bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := services.BookingSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if status := c.Query("status"); status != "" {
		s := models.BookingStatus(status)
		params.Status = &s
	}

	// Agencies see their roster's bookings; everyone else sees their own.
	if userType, _ := utils.GetUserTypeFromContext(c); userType == string(models.UserTypeAgency) {
		agencyID, ok := requireAgencyID(c)
		if !ok {
			return
		}
		bookings, total, err := h.bookingService.SearchAgencyBookings(agencyID, params)
		if err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		utils.PaginatedResponse(c, utils.CreatePaginationResult(bookings, total, params.PaginationParams))
		return
	}

	bookings, total, err := h.bookingService.SearchBrandBookings(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(bookings, total, params.PaginationParams))
}

// GET /bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(id, userID)
	if err != nil {
		utils.NotFoundResponse(c, "Booking")
		return
	}

	utils.SuccessResponse(c, gin.H{"booking": booking})
}

// PUT /bookings/:id/confirm
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.ConfirmBooking(id, agencyID)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"booking": booking})
}

// PUT /bookings/:id/complete
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.CompleteBooking(id, agencyID)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"booking": booking})
}

// PUT /bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	booking, err := h.bookingService.CancelBooking(id, userID, req.Reason)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"booking": booking})
}
