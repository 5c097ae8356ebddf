package payment

import (
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"confreg/models"
)

// memPaymentRepo is an in-memory ledger with the one-shot SUCCESS
// transition of the Mongo implementation.
type memPaymentRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Payment // keyed by gateway order id
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{rows: map[string]*models.Payment{}}
}

func (r *memPaymentRepo) Create(p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	cp.Status = models.PaymentCreated
	r.rows[cp.GatewayOrderID] = &cp
	return nil
}

func (r *memPaymentRepo) GetByOrderID(orderID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[orderID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) MarkSuccess(orderID, gatewayPaymentID, signature string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[orderID]
	if !ok {
		return false, errors.New("no such order")
	}
	if p.Status == models.PaymentSuccess {
		return false, nil
	}
	p.Status = models.PaymentSuccess
	p.GatewayPaymentID = gatewayPaymentID
	p.GatewaySignature = signature
	return true, nil
}

func (r *memPaymentRepo) MarkFailed(orderID, gatewayPaymentID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[orderID]
	if !ok {
		return errors.New("no such order")
	}
	if p.Status == models.PaymentCreated {
		p.Status = models.PaymentFailed
		p.GatewayPaymentID = gatewayPaymentID
		p.FailureReason = reason
	}
	return nil
}

func (r *memPaymentRepo) SumSuccessByRef(refID, paymentType string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, p := range r.rows {
		if p.RefID == refID && p.PaymentType == paymentType && p.Status == models.PaymentSuccess {
			total += p.Amount
		}
	}
	return total, nil
}

func (r *memPaymentRepo) ListByRef(refID string) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Payment
	for _, p := range r.rows {
		if p.RefID == refID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) DeleteByRef(refID string) error { return nil }

// memRegRepo covers only what the payment service touches.
type memRegRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Registration
}

func newMemRegRepo(regs ...*models.Registration) *memRegRepo {
	r := &memRegRepo{byID: map[string]*models.Registration{}}
	for _, reg := range regs {
		r.byID[reg.ID] = reg
	}
	return r
}

func (r *memRegRepo) GetByID(id string) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *reg
	return &cp, nil
}

func (r *memRegRepo) GetByUserID(userID string) (*models.Registration, error) { return nil, nil }
func (r *memRegRepo) GetByNumber(number string) (*models.Registration, error) { return nil, nil }
func (r *memRegRepo) GetAll() ([]models.Registration, error)                  { return nil, nil }
func (r *memRegRepo) Create(reg *models.Registration) error                   { return nil }
func (r *memRegRepo) Update(reg *models.Registration) error                   { return nil }

func (r *memRegRepo) SetFields(id string, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.byID[id]
	if !ok {
		return errors.New("not found")
	}
	if v, ok := fields["total_paid"]; ok {
		reg.TotalPaid = v.(int)
	}
	if v, ok := fields["payment_status"]; ok {
		reg.PaymentStatus = v.(string)
	}
	if v, ok := fields["last_notify_error"]; ok {
		reg.LastNotifyError = v.(string)
	}
	return nil
}

func (r *memRegRepo) Delete(id string) error                      { return nil }
func (r *memRegRepo) CountCourseSelections() (int, error)         { return 0, nil }
func (r *memRegRepo) MaxNumberSuffix(prefix string) (int, error)  { return 0, nil }

// memAccRepo covers only what the payment service touches.
type memAccRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Accommodation
}

func newMemAccRepo(bookings ...*models.Accommodation) *memAccRepo {
	r := &memAccRepo{byID: map[string]*models.Accommodation{}}
	for _, b := range bookings {
		r.byID[b.ID] = b
	}
	return r
}

func (r *memAccRepo) GetByID(id string) (*models.Accommodation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *b
	return &cp, nil
}

func (r *memAccRepo) GetByUserID(userID string) ([]models.Accommodation, error) { return nil, nil }
func (r *memAccRepo) Create(b *models.Accommodation) error                      { return nil }

func (r *memAccRepo) SetFields(id string, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return errors.New("not found")
	}
	if v, ok := fields["total_paid"]; ok {
		b.TotalPaid = v.(int)
	}
	if v, ok := fields["payment_status"]; ok {
		b.PaymentStatus = v.(string)
	}
	return nil
}

func (r *memAccRepo) Delete(id string) error { return nil }

// memUserRepo returns the same user for every lookup.
type memUserRepo struct {
	user *models.User
}

func (r *memUserRepo) GetByID(id string) (*models.User, error)       { return r.user, nil }
func (r *memUserRepo) GetByEmail(email string) (*models.User, error) { return r.user, nil }
func (r *memUserRepo) GetAll() ([]models.User, error)                { return nil, nil }
func (r *memUserRepo) Create(u *models.User) error                   { return nil }
func (r *memUserRepo) Update(u *models.User) error                   { return nil }
func (r *memUserRepo) Delete(id string) error                        { return nil }

// fakeGateway records orders and serves a scripted payment list.
type fakeGateway struct {
	mu       sync.Mutex
	orders   int
	payments map[string][]GatewayPayment
	fail     bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{payments: map[string][]GatewayPayment{}}
}

func (g *fakeGateway) CreateOrder(amountPaise int, currency, receipt string, notes map[string]interface{}) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return "", errors.New("gateway down")
	}
	g.orders++
	return "order_test_" + receipt, nil
}

func (g *fakeGateway) FetchOrderPayments(orderID string) ([]GatewayPayment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return nil, errors.New("gateway down")
	}
	return g.payments[orderID], nil
}

// countingBadges counts EnsureIssued calls.
type countingBadges struct {
	mu    sync.Mutex
	calls int
	fail  error
}

func (b *countingBadges) EnsureIssued(reg *models.Registration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = b.calls + 1
	return b.fail
}

// countingNotifier counts confirmation sends.
type countingNotifier struct {
	mu    sync.Mutex
	calls int
	fail  error
}

func (n *countingNotifier) SendPaymentConfirmation(user *models.User, reg *models.Registration) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = n.calls + 1
	return n.fail
}
