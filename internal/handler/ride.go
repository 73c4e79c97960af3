package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/observability"
	"carpool/internal/service"
)

const dateLayout = "2006-01-02"

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService     *service.RideService
	matchingService *service.MatchingService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService, matchingService *service.MatchingService) *RideHandler {
	return &RideHandler{
		rideService:     rideService,
		matchingService: matchingService,
	}
}

// PublishRideRequest is the HTTP request body for publishing a ride.
type PublishRideRequest struct {
	Source      *LocationPayload `json:"source"`
	Destination *LocationPayload `json:"destination"`
	Date        string           `json:"date"`
	SeatsTotal  int              `json:"seats_total"`
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID             string  `json:"id"`
	SourceLat      float64 `json:"source_lat"`
	SourceLng      float64 `json:"source_lng"`
	DestinationLat float64 `json:"destination_lat"`
	DestinationLng float64 `json:"destination_lng"`
	Date           string  `json:"date"`
	SeatsTotal     int     `json:"seats_total"`
	SeatsAvailable int     `json:"seats_available"`
}

// NearbyRidesResponse is the HTTP response for a nearby-rides search.
type NearbyRidesResponse struct {
	Rides []RideResponse `json:"rides"`
}

func rideToResponse(ride *domain.Ride) RideResponse {
	return RideResponse{
		ID:             ride.ID,
		SourceLat:      ride.Source.Lat,
		SourceLng:      ride.Source.Lng,
		DestinationLat: ride.Destination.Lat,
		DestinationLng: ride.Destination.Lng,
		Date:           ride.Date.Format(dateLayout),
		SeatsTotal:     ride.SeatsTotal,
		SeatsAvailable: ride.SeatsAvailable,
	}
}

// PublishRide handles POST /v1/rides
func (h *RideHandler) PublishRide(c *gin.Context) {
	var req PublishRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Source == nil || req.Destination == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing source or destination"})
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date, expected YYYY-MM-DD"})
		return
	}

	ride, err := h.rideService.PublishRide(c.Request.Context(), service.PublishRideRequest{
		Source:      domain.Location{Lat: req.Source.Lat, Lng: req.Source.Lng},
		Destination: domain.Location{Lat: req.Destination.Lat, Lng: req.Destination.Lng},
		Date:        date,
		SeatsTotal:  req.SeatsTotal,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, rideToResponse(ride))
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, rideToResponse(ride))
}

// CancelRide handles DELETE /v1/rides/:id
func (h *RideHandler) CancelRide(c *gin.Context) {
	if err := h.rideService.CancelRide(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// FindNearby handles GET /v1/rides/nearby?lat=&lng=&max_distance=&date=
func (h *RideHandler) FindNearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid lat/lng"})
		return
	}

	maxDistanceKm := service.DefaultSearchRadiusKm
	if raw := c.Query("max_distance"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_distance"})
			return
		}
		maxDistanceKm = parsed
	}

	date, err := time.ParseInLocation(dateLayout, c.Query("date"), time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date, expected YYYY-MM-DD"})
		return
	}

	rides, err := h.matchingService.FindNearby(c.Request.Context(), domain.Location{Lat: lat, Lng: lng}, maxDistanceKm, date)
	if err != nil {
		respondError(c, err)
		return
	}

	observability.SearchesTotal.Inc()

	response := NearbyRidesResponse{Rides: make([]RideResponse, 0, len(rides))}
	for _, ride := range rides {
		response.Rides = append(response.Rides, rideToResponse(ride))
	}

	respondJSON(c, http.StatusOK, response)
}
