package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"confreg/services/payment"
	"confreg/utils"
)

// WebhookHandler receives gateway pushes.
type WebhookHandler struct {
	Service payment.PaymentService
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(svc payment.PaymentService) *WebhookHandler {
	return &WebhookHandler{Service: svc}
}

// GatewayWebhookHandler verifies and applies a gateway event. It always
// answers 200 so the gateway does not retry forever; failures are logged
// and left to reconciliation.
func (h *WebhookHandler) GatewayWebhookHandler(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.GetLogger().Error("webhook body read failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if err := h.Service.HandleWebhook(body, signature); err != nil {
		utils.GetLogger().Error("webhook processing failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
