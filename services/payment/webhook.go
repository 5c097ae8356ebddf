package payment

import (
	"encoding/json"

	"go.uber.org/zap"

	"confreg/models"
)

// Webhook event types that carry a capture. Everything else is acknowledged
// and ignored.
const (
	eventPaymentCaptured = "payment.captured"
	eventOrderPaid       = "order.paid"
)

// webhookEvent mirrors the gateway's push payload shape.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

// HandleWebhook authenticates and applies a gateway push. Duplicate
// delivery of a capture is a no-op: the SUCCESS transition is one-shot and
// the aggregate is a ledger sum either way.
func (s *DefaultPaymentService) HandleWebhook(body []byte, headerSignature string) error {
	if !VerifyWebhookSignature(body, headerSignature, s.WebhookSecret) {
		s.Logger.Warn("webhook signature mismatch")
		return newError(CodeSignatureMismatch, "webhook signature verification failed")
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return newError(CodeInvalidRequest, "malformed webhook payload")
	}

	switch event.Event {
	case eventPaymentCaptured, eventOrderPaid:
	default:
		s.Logger.Debug("ignoring webhook event", zap.String("event", event.Event))
		return nil
	}

	orderID := event.Payload.Payment.Entity.OrderID
	if orderID == "" {
		orderID = event.Payload.Order.Entity.ID
	}
	if orderID == "" {
		return newError(CodeInvalidRequest, "webhook payload carries no order id")
	}

	p, err := s.Payments.GetByOrderID(orderID)
	if err != nil {
		return err
	}
	if p == nil {
		s.Logger.Warn("webhook for unknown order", zap.String("orderId", orderID))
		return newError(CodeNotFound, "no payment found for order")
	}

	return s.applySuccess(p, event.Payload.Payment.Entity.ID, "")
}

// Reconcile recovers a capture the callbacks missed: it asks the gateway
// for the order's payment list and applies the captured one.
func (s *DefaultPaymentService) Reconcile(orderID string) (*models.Payment, error) {
	p, err := s.Payments.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, newError(CodeNotFound, "no payment found for order")
	}

	gatewayPayments, err := s.Gateway.FetchOrderPayments(orderID)
	if err != nil {
		s.Logger.Error("gateway reconciliation lookup failed",
			zap.String("orderId", orderID), zap.Error(err))
		return nil, newError(CodeGatewayFailure, "payment gateway is unavailable, please retry")
	}

	for _, gp := range gatewayPayments {
		if gp.Status == capturedStatus {
			if err := s.applySuccess(p, gp.ID, ""); err != nil {
				return nil, err
			}
			return s.Payments.GetByOrderID(orderID)
		}
	}
	return nil, newError(CodeNotFound, "gateway has no captured payment for this order")
}
