package registration

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"confreg/config"
	counterRepo "confreg/database/repository/counter"
	registrationRepo "confreg/database/repository/registration"
	"confreg/models"
)

// memRegRepo is an in-memory RegistrationRepository with the same unique
// constraints as the Mongo collection.
type memRegRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Registration
}

func newMemRegRepo() *memRegRepo {
	return &memRegRepo{byID: map[string]*models.Registration{}}
}

func dupKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func (r *memRegRepo) GetByID(id string) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *reg
	return &cp, nil
}

func (r *memRegRepo) GetByUserID(userID string) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.byID {
		if reg.UserID == userID {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRegRepo) GetByNumber(number string) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.byID {
		if reg.RegistrationNumber == number {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRegRepo) GetAll() ([]models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Registration, 0, len(r.byID))
	for _, reg := range r.byID {
		out = append(out, *reg)
	}
	return out, nil
}

func (r *memRegRepo) Create(reg *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.RegistrationNumber == reg.RegistrationNumber || existing.UserID == reg.UserID {
			return dupKeyErr()
		}
	}
	cp := *reg
	cp.Version = 1
	cp.CreatedAt = time.Now()
	r.byID[cp.ID] = &cp
	reg.Version = cp.Version
	return nil
}

func (r *memRegRepo) Update(reg *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[reg.ID]
	if !ok || stored.Version != reg.Version {
		return registrationRepo.ErrVersionConflict
	}
	cp := *reg
	cp.Version++
	r.byID[cp.ID] = &cp
	reg.Version = cp.Version
	return nil
}

func (r *memRegRepo) SetFields(id string, fields bson.M) error {
	return nil
}

func (r *memRegRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memRegRepo) CountCourseSelections() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, reg := range r.byID {
		if reg.Selections.AddAoaCourse {
			n++
		}
	}
	return n, nil
}

func (r *memRegRepo) MaxNumberSuffix(prefix string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, reg := range r.byID {
		if !strings.HasPrefix(reg.RegistrationNumber, prefix) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(reg.RegistrationNumber, prefix))
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max, nil
}

// memCounterRepo is an in-memory CounterRepository.
type memCounterRepo struct {
	mu     sync.Mutex
	values map[string]int
}

func newMemCounterRepo() *memCounterRepo {
	return &memCounterRepo{values: map[string]int{}}
}

func (r *memCounterRepo) Get(name string) (*models.Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[name]
	if !ok {
		return nil, nil
	}
	return &models.Counter{Name: name, Sequence: v}, nil
}

func (r *memCounterRepo) EnsureSeed(name string, value int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.values[name]; !ok {
		r.values[name] = value
	}
	return nil
}

func (r *memCounterRepo) NextSequence(name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.values[name]; !ok {
		return 0, counterRepo.ErrCounterMissing
	}
	r.values[name]++
	return r.values[name], nil
}

func (r *memCounterRepo) RaiseTo(name string, min int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values[name] < min {
		r.values[name] = min
	}
	return nil
}

func (r *memCounterRepo) Set(name string, value int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[name] = value
	return nil
}

// memUserRepo is an in-memory UserRepository.
type memUserRepo struct {
	mu   sync.Mutex
	byID map[string]*models.User
}

func newMemUserRepo(users ...*models.User) *memUserRepo {
	r := &memUserRepo{byID: map[string]*models.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *memUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetAll() ([]models.User, error) { return nil, nil }
func (r *memUserRepo) Create(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = u
	return nil
}
func (r *memUserRepo) Update(u *models.User) error { return nil }
func (r *memUserRepo) Delete(id string) error      { return nil }

// memPaymentRepo covers only what the registration service touches.
type memPaymentRepo struct {
	mu      sync.Mutex
	deleted []string
}

func (r *memPaymentRepo) Create(p *models.Payment) error                       { return nil }
func (r *memPaymentRepo) GetByOrderID(orderID string) (*models.Payment, error) { return nil, nil }
func (r *memPaymentRepo) MarkSuccess(orderID, paymentID, sig string) (bool, error) {
	return false, nil
}
func (r *memPaymentRepo) MarkFailed(orderID, paymentID, reason string) error { return nil }
func (r *memPaymentRepo) SumSuccessByRef(refID, paymentType string) (int, error) {
	return 0, nil
}
func (r *memPaymentRepo) ListByRef(refID string) ([]models.Payment, error) { return nil, nil }
func (r *memPaymentRepo) DeleteByRef(refID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, refID)
	return nil
}

// memAttendanceRepo covers only what the registration service touches.
type memAttendanceRepo struct {
	mu      sync.Mutex
	deleted []string
}

func (r *memAttendanceRepo) GetByRegistrationID(id string) (*models.Attendance, error) {
	return nil, nil
}
func (r *memAttendanceRepo) GetByNumber(number string) (*models.Attendance, error) {
	return nil, nil
}
func (r *memAttendanceRepo) Create(a *models.Attendance) error { return nil }
func (r *memAttendanceRepo) AppendScan(id string, scan models.ScanEvent) error {
	return nil
}
func (r *memAttendanceRepo) DeleteByRegistrationID(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return nil
}

// newTestService wires a service over in-memory fakes with a fixed clock
// inside the early-bird window.
func newTestService(users ...*models.User) (*DefaultRegistrationService, *memRegRepo, *memCounterRepo) {
	regRepo := newMemRegRepo()
	counters := newMemCounterRepo()
	svc := &DefaultRegistrationService{
		Repo:        regRepo,
		Users:       newMemUserRepo(users...),
		Counters:    counters,
		Payments:    &memPaymentRepo{},
		Attendances: &memAttendanceRepo{},
		Table:       func() *config.PricingTable { return config.DefaultPricingTable() },
		Now: func() time.Time {
			return time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
		},
	}
	return svc, regRepo, counters
}

func completeUser(id, role string) *models.User {
	return &models.User{
		ID:              id,
		FullName:        "Dr. Test Attendee",
		Email:           id + "@example.com",
		Role:            role,
		ProfileComplete: true,
	}
}
