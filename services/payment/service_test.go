package payment

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"confreg/models"
)

const (
	testKeySecret     = "key-secret"
	testWebhookSecret = "webhook-secret"
)

func newTestService(regs ...*models.Registration) (*DefaultPaymentService, *memPaymentRepo, *memRegRepo, *countingBadges, *countingNotifier) {
	payments := newMemPaymentRepo()
	regRepo := newMemRegRepo(regs...)
	badges := &countingBadges{}
	notifier := &countingNotifier{}
	svc := &DefaultPaymentService{
		Payments:       payments,
		Registrations:  regRepo,
		Accommodations: newMemAccRepo(),
		Users:          &memUserRepo{user: &models.User{ID: "u1", Email: "u1@example.com"}},
		Gateway:        newFakeGateway(),
		Badges:         badges,
		Notifier:       notifier,
		Logger:         zap.NewNop(),
		KeySecret:      testKeySecret,
		WebhookSecret:  testWebhookSecret,
		Currency:       "INR",
	}
	return svc, payments, regRepo, badges, notifier
}

func testRegistration(total int) *models.Registration {
	return &models.Registration{
		ID:                 "reg-1",
		UserID:             "u1",
		RegistrationNumber: "AOA2026-0001",
		TotalAmount:        total,
		PaymentStatus:      models.PaymentStatusPending,
	}
}

func capturedWebhook(t *testing.T, orderID, paymentID string) ([]byte, string) {
	t.Helper()
	event := map[string]interface{}{
		"event": "payment.captured",
		"payload": map[string]interface{}{
			"payment": map[string]interface{}{
				"entity": map[string]interface{}{
					"id":       paymentID,
					"order_id": orderID,
					"status":   "captured",
				},
			},
		},
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return body, Sign(string(body), testWebhookSecret)
}

func TestCreateOrderForOutstandingBalance(t *testing.T) {
	svc, payments, _, _, _ := newTestService(testRegistration(24060))

	p, err := svc.CreateOrder("u1", models.PaymentTypeRegistration, "reg-1")
	require.NoError(t, err)
	assert.Equal(t, 24060, p.Amount)
	assert.Equal(t, "order_test_reg-1", p.GatewayOrderID)

	row, err := payments.GetByOrderID(p.GatewayOrderID)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, models.PaymentCreated, row.Status)
}

func TestCreateOrderRejectsWrongOwnerAndPaid(t *testing.T) {
	reg := testRegistration(24060)
	svc, _, _, _, _ := newTestService(reg)

	_, err := svc.CreateOrder("someone-else", models.PaymentTypeRegistration, "reg-1")
	require.Error(t, err)

	reg.TotalPaid = reg.TotalAmount
	_, err = svc.CreateOrder("u1", models.PaymentTypeRegistration, "reg-1")
	require.Error(t, err)

	var perr *PayError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeAlreadyPaid, perr.Code)
}

func TestVerifyAppliesCapture(t *testing.T) {
	svc, _, regRepo, badges, notifier := newTestService(testRegistration(24060))

	p, err := svc.CreateOrder("u1", models.PaymentTypeRegistration, "reg-1")
	require.NoError(t, err)

	sig := Sign(p.GatewayOrderID+"|pay_1", testKeySecret)
	verified, err := svc.Verify(p.GatewayOrderID, "pay_1", sig)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, verified.Status)

	reg, err := regRepo.GetByID("reg-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, reg.PaymentStatus)
	assert.Equal(t, 24060, reg.TotalPaid)
	assert.Equal(t, 1, badges.calls)
	assert.Equal(t, 1, notifier.calls)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	svc, _, regRepo, _, _ := newTestService(testRegistration(24060))

	p, err := svc.CreateOrder("u1", models.PaymentTypeRegistration, "reg-1")
	require.NoError(t, err)

	sig := Sign(p.GatewayOrderID+"|pay_other", testKeySecret)
	_, err = svc.Verify(p.GatewayOrderID, "pay_1", sig)
	require.Error(t, err)

	var perr *PayError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeSignatureMismatch, perr.Code)

	// Nothing moved.
	reg, err := regRepo.GetByID("reg-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, reg.PaymentStatus)
	assert.Zero(t, reg.TotalPaid)
}

func TestWebhookIsIdempotent(t *testing.T) {
	svc, _, regRepo, badges, notifier := newTestService(testRegistration(24060))

	p, err := svc.CreateOrder("u1", models.PaymentTypeRegistration, "reg-1")
	require.NoError(t, err)

	body, sig := capturedWebhook(t, p.GatewayOrderID, "pay_1")
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.HandleWebhook(body, sig))
	}

	reg, err := regRepo.GetByID("reg-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, reg.PaymentStatus)
	assert.Equal(t, 24060, reg.TotalPaid)

	// Side effects ran for the single applied capture, not per delivery.
	assert.Equal(t, 1, badges.calls)
	assert.Equal(t, 1, notifier.calls)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	svc, _, _, _, _ := newTestService(testRegistration(24060))

	body, _ := capturedWebhook(t, "order_x", "pay_1")
	err := svc.HandleWebhook(body, Sign(string(body), "wrong-secret"))
	require.Error(t, err)

	var perr *PayError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeSignatureMismatch, perr.Code)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	svc, _, regRepo, _, _ := newTestService(testRegistration(24060))

	body := []byte(`{"event":"payment.failed","payload":{}}`)
	sig := Sign(string(body), testWebhookSecret)
	require.NoError(t, svc.HandleWebhook(body, sig))

	reg, err := regRepo.GetByID("reg-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, reg.PaymentStatus)
}

func TestReconcileAppliesMissedCapture(t *testing.T) {
	svc, _, regRepo, _, _ := newTestService(testRegistration(24060))
	gateway := svc.Gateway.(*fakeGateway)

	p, err := svc.CreateOrder("u1", models.PaymentTypeRegistration, "reg-1")
	require.NoError(t, err)

	gateway.payments[p.GatewayOrderID] = []GatewayPayment{
		{ID: "pay_failed", Status: "failed"},
		{ID: "pay_ok", Status: "captured", Amount: 2406000},
	}

	reconciled, err := svc.Reconcile(p.GatewayOrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, reconciled.Status)
	assert.Equal(t, "pay_ok", reconciled.GatewayPaymentID)

	reg, err := regRepo.GetByID("reg-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, reg.PaymentStatus)
}

func TestReconcileWithoutCapture(t *testing.T) {
	svc, _, _, _, _ := newTestService(testRegistration(24060))

	p, err := svc.CreateOrder("u1", models.PaymentTypeRegistration, "reg-1")
	require.NoError(t, err)

	_, err = svc.Reconcile(p.GatewayOrderID)
	require.Error(t, err)

	var perr *PayError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeNotFound, perr.Code)
}

func TestReportFailureLeavesRegistrationAlone(t *testing.T) {
	svc, payments, regRepo, _, _ := newTestService(testRegistration(24060))

	p, err := svc.CreateOrder("u1", models.PaymentTypeRegistration, "reg-1")
	require.NoError(t, err)

	require.NoError(t, svc.ReportFailure(p.GatewayOrderID, "pay_1", "card declined"))

	row, err := payments.GetByOrderID(p.GatewayOrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, row.Status)
	assert.Equal(t, "card declined", row.FailureReason)

	reg, err := regRepo.GetByID("reg-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, reg.PaymentStatus)
	assert.Zero(t, reg.TotalPaid)
}

func TestFailureAfterSuccessDoesNotDowngrade(t *testing.T) {
	svc, payments, regRepo, _, _ := newTestService(testRegistration(24060))

	p, err := svc.CreateOrder("u1", models.PaymentTypeRegistration, "reg-1")
	require.NoError(t, err)

	sig := Sign(p.GatewayOrderID+"|pay_1", testKeySecret)
	_, err = svc.Verify(p.GatewayOrderID, "pay_1", sig)
	require.NoError(t, err)

	// A stray failure report after the capture must not flip anything.
	require.NoError(t, svc.ReportFailure(p.GatewayOrderID, "pay_1", "late failure"))

	row, err := payments.GetByOrderID(p.GatewayOrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, row.Status)

	reg, err := regRepo.GetByID("reg-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, reg.PaymentStatus)
}

func TestSideEffectFailureIsRecordedNotPropagated(t *testing.T) {
	svc, _, regRepo, _, notifier := newTestService(testRegistration(24060))
	notifier.fail = errors.New("smtp refused")

	p, err := svc.CreateOrder("u1", models.PaymentTypeRegistration, "reg-1")
	require.NoError(t, err)

	sig := Sign(p.GatewayOrderID+"|pay_1", testKeySecret)
	_, err = svc.Verify(p.GatewayOrderID, "pay_1", sig)
	require.NoError(t, err)

	reg, err := regRepo.GetByID("reg-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, reg.PaymentStatus)
	assert.Equal(t, "smtp refused", reg.LastNotifyError)
}

func TestResendConfirmation(t *testing.T) {
	reg := testRegistration(24060)
	reg.TotalPaid = reg.TotalAmount
	reg.PaymentStatus = models.PaymentStatusPaid
	svc, _, _, badges, notifier := newTestService(reg)

	require.NoError(t, svc.ResendConfirmation("reg-1"))
	assert.Equal(t, 1, badges.calls)
	assert.Equal(t, 1, notifier.calls)

	unpaid := testRegistration(100)
	svc2, _, _, _, _ := newTestService(unpaid)
	err := svc2.ResendConfirmation("reg-1")
	require.Error(t, err)
}

func TestAccommodationPaymentPath(t *testing.T) {
	svc, _, _, badges, notifier := newTestService()
	accRepo := svc.Accommodations.(*memAccRepo)
	booking := &models.Accommodation{ID: "acc-1", UserID: "u1", Amount: 9000}
	accRepo.byID[booking.ID] = booking

	p, err := svc.CreateOrder("u1", models.PaymentTypeAccommodation, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 9000, p.Amount)

	sig := Sign(p.GatewayOrderID+"|pay_1", testKeySecret)
	_, err = svc.Verify(p.GatewayOrderID, "pay_1", sig)
	require.NoError(t, err)

	stored, err := accRepo.GetByID("acc-1")
	require.NoError(t, err)
	assert.Equal(t, 9000, stored.TotalPaid)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)

	// Badge and mail are registration side effects only.
	assert.Zero(t, badges.calls)
	assert.Zero(t, notifier.calls)
}
