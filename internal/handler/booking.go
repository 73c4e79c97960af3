package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/observability"
	"carpool/internal/repository"
	"carpool/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	rideService    *service.RideService
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(rideService *service.RideService, bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{
		rideService:    rideService,
		bookingService: bookingService,
	}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
type CreateBookingRequest struct {
	RideID string `json:"ride_id"`
	Seats  int    `json:"seats"`
}

// BookingResponse is the HTTP representation of a booking.
type BookingResponse struct {
	ID          string `json:"id"`
	RideID      string `json:"ride_id"`
	SeatsBooked int    `json:"seats_booked"`
	Status      string `json:"status"`
}

// ConfirmBookingResponse is the HTTP response for a confirmed booking.
type ConfirmBookingResponse struct {
	Message string `json:"message"`
}

func bookingToResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:          booking.ID,
		RideID:      booking.RideID,
		SeatsBooked: booking.SeatsBooked,
		Status:      string(booking.Status),
	}
}

// CreateBooking handles POST /v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.rideService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		RideID:      req.RideID,
		SeatsBooked: req.Seats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, bookingToResponse(booking))
}

// GetBooking handles GET /v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.rideService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, bookingToResponse(booking))
}

// ConfirmBooking handles POST /v1/bookings/:id/confirm
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	err := h.bookingService.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		observability.ConfirmationsTotal.WithLabelValues(confirmOutcomeLabel(err)).Inc()
		respondError(c, err)
		return
	}

	observability.ConfirmationsTotal.WithLabelValues(observability.OutcomeConfirmed).Inc()

	respondJSON(c, http.StatusOK, ConfirmBookingResponse{Message: "booking confirmed successfully"})
}

func confirmOutcomeLabel(err error) string {
	switch {
	case errors.Is(err, service.ErrInsufficientSeats):
		return observability.OutcomeNoCapacity
	case errors.Is(err, service.ErrBookingNotPending):
		return observability.OutcomeNotPending
	case errors.Is(err, repository.ErrNotFound):
		return observability.OutcomeNotFound
	default:
		return observability.OutcomeError
	}
}
