package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/observability"
	"carpool/internal/service"
)

// FareHandler handles HTTP requests for fare quotes.
type FareHandler struct {
	fareService *service.FareService
}

// NewFareHandler creates a new FareHandler.
func NewFareHandler(fareService *service.FareService) *FareHandler {
	return &FareHandler{fareService: fareService}
}

// LocationPayload is a lat/lng pair in request bodies.
type LocationPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// QuoteFareRequest is the HTTP request body for a fare quote. Seats is
// a pointer so an absent field defaults to 1 while an explicit zero is
// rejected downstream.
type QuoteFareRequest struct {
	Source      *LocationPayload `json:"source"`
	Destination *LocationPayload `json:"destination"`
	Seats       *int             `json:"seats,omitempty"`
}

// QuoteFareResponse is the HTTP response for a fare quote.
type QuoteFareResponse struct {
	BaseFare        float64 `json:"base_fare"`
	DistanceKm      float64 `json:"distance_km"`
	PerKmRate       float64 `json:"per_km_rate"`
	Seats           int     `json:"seats"`
	SurgeMultiplier float64 `json:"surge_multiplier"`
	TotalFare       float64 `json:"total_fare"`
	FinalFare       float64 `json:"final_fare"`
}

// QuoteFare handles POST /v1/fares/quote
func (h *FareHandler) QuoteFare(c *gin.Context) {
	var req QuoteFareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Source == nil || req.Destination == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing source or destination"})
		return
	}

	seats := 1
	if req.Seats != nil {
		seats = *req.Seats
	}

	quote, err := h.fareService.Quote(c.Request.Context(),
		domain.Location{Lat: req.Source.Lat, Lng: req.Source.Lng},
		domain.Location{Lat: req.Destination.Lat, Lng: req.Destination.Lng},
		seats,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	observability.QuotesTotal.Inc()

	respondJSON(c, http.StatusOK, QuoteFareResponse{
		BaseFare:        quote.BaseFare,
		DistanceKm:      quote.DistanceKm,
		PerKmRate:       quote.PerKmRate,
		Seats:           quote.Seats,
		SurgeMultiplier: quote.SurgeMultiplier,
		TotalFare:       quote.TotalFare,
		FinalFare:       quote.FinalFare,
	})
}
