package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confreg/models"
	"confreg/services/registration"
)

// RegistrationHandler exposes pricing and registration endpoints.
type RegistrationHandler struct {
	Service registration.RegistrationService
}

// NewRegistrationHandler creates a RegistrationHandler.
func NewRegistrationHandler(svc registration.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{Service: svc}
}

// PricePreviewHandler prices a selection set without side effects. The
// phase is optional; when omitted the current calendar phase applies.
func (h *RegistrationHandler) PricePreviewHandler(c *gin.Context) {
	var req struct {
		Role       string            `json:"role"`
		Phase      models.Phase      `json:"phase,omitempty"`
		Selections models.Selections `json:"selections"`
		CouponCode string            `json:"couponCode,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	breakdown, err := h.Service.Preview(req.Role, req.Phase, req.Selections, req.CouponCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}

// UpsertRegistrationHandler creates or updates the caller's registration.
func (h *RegistrationHandler) UpsertRegistrationHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req registration.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	reg, err := h.Service.Upsert(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration": reg})
}

// GetMyRegistrationHandler returns the caller's registration.
func (h *RegistrationHandler) GetMyRegistrationHandler(c *gin.Context) {
	userID := c.GetString("userID")

	reg, err := h.Service.GetByUserID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration": reg})
}
