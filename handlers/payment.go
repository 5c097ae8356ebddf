package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confreg/models"
	"confreg/services/payment"
)

// PaymentHandler exposes the attendee-facing payment endpoints.
type PaymentHandler struct {
	Service payment.PaymentService
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// CreateOrderHandler opens a gateway order for the outstanding balance of a
// registration or accommodation booking.
func (h *PaymentHandler) CreateOrderHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		PaymentType string `json:"paymentType"`
		RefID       string `json:"refId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if req.PaymentType == "" {
		req.PaymentType = models.PaymentTypeRegistration
	}

	p, err := h.Service.CreateOrder(userID, req.PaymentType, req.RefID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": p})
}

// VerifyPaymentHandler applies a client-reported capture after checking its
// signature.
func (h *PaymentHandler) VerifyPaymentHandler(c *gin.Context) {
	var req struct {
		OrderID   string `json:"orderId"`
		PaymentID string `json:"paymentId"`
		Signature string `json:"signature"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Service.Verify(req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": p})
}

// ReportFailureHandler records a failed attempt reported by the client.
func (h *PaymentHandler) ReportFailureHandler(c *gin.Context) {
	var req struct {
		OrderID   string `json:"orderId"`
		PaymentID string `json:"paymentId,omitempty"`
		Reason    string `json:"reason,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.ReportFailure(req.OrderID, req.PaymentID, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// ListPaymentsHandler lists the caller's ledger rows for a reference.
func (h *PaymentHandler) ListPaymentsHandler(c *gin.Context) {
	userID := c.GetString("userID")
	refID := c.Param("refId")

	rows, err := h.Service.ListByRef(refID)
	if err != nil {
		respondError(c, err)
		return
	}

	mine := make([]models.Payment, 0, len(rows))
	for _, row := range rows {
		if row.UserID == userID {
			mine = append(mine, row)
		}
	}
	c.JSON(http.StatusOK, gin.H{"payments": mine})
}
