package payment

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// GatewayPayment is one payment attempt as the gateway reports it.
type GatewayPayment struct {
	ID     string
	Status string
	Amount int // paise
}

// Gateway abstracts the payment gateway: order creation and the
// order-to-payments lookup used by manual reconciliation.
type Gateway interface {
	CreateOrder(amountPaise int, currency, receipt string, notes map[string]interface{}) (string, error)
	FetchOrderPayments(orderID string) ([]GatewayPayment, error)
}

// captured is the gateway's terminal success status for a payment.
const capturedStatus = "captured"

// RazorpayGateway implements Gateway over the Razorpay API.
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway builds a gateway client with a bounded request timeout
// so a slow upstream cannot pin a request worker.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	client.SetTimeout(10)
	return &RazorpayGateway{client: client}
}

// CreateOrder opens a gateway order and returns its id.
func (g *RazorpayGateway) CreateOrder(amountPaise int, currency, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("gateway order creation failed: %w", err)
	}
	id, ok := order["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("gateway returned an order without an id")
	}
	return id, nil
}

// FetchOrderPayments lists the payment attempts recorded against an order.
func (g *RazorpayGateway) FetchOrderPayments(orderID string) ([]GatewayPayment, error) {
	resp, err := g.client.Order.Payments(orderID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway payment lookup failed: %w", err)
	}

	items, _ := resp["items"].([]interface{})
	payments := make([]GatewayPayment, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		p := GatewayPayment{}
		p.ID, _ = entry["id"].(string)
		p.Status, _ = entry["status"].(string)
		if amount, ok := entry["amount"].(float64); ok {
			p.Amount = int(amount)
		}
		payments = append(payments, p)
	}
	return payments, nil
}
