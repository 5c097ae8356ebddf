package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confreg/services/accommodation"
)

// AccommodationHandler exposes hotel booking endpoints.
type AccommodationHandler struct {
	Service accommodation.AccommodationService
}

// NewAccommodationHandler creates an AccommodationHandler.
func NewAccommodationHandler(svc accommodation.AccommodationService) *AccommodationHandler {
	return &AccommodationHandler{Service: svc}
}

// BookAccommodationHandler creates a booking priced off the room-rate table.
func (h *AccommodationHandler) BookAccommodationHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req accommodation.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Service.Book(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GetMyAccommodationsHandler lists the caller's bookings.
func (h *AccommodationHandler) GetMyAccommodationsHandler(c *gin.Context) {
	userID := c.GetString("userID")

	bookings, err := h.Service.GetByUserID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
