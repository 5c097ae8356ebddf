package attendance

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confreg/models"
)

type memAttendanceRepo struct {
	mu    sync.Mutex
	byReg map[string]*models.Attendance
}

func newMemAttendanceRepo() *memAttendanceRepo {
	return &memAttendanceRepo{byReg: map[string]*models.Attendance{}}
}

func (r *memAttendanceRepo) GetByRegistrationID(id string) (*models.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byReg[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *memAttendanceRepo) GetByNumber(number string) (*models.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byReg {
		if a.RegistrationNumber == number {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAttendanceRepo) Create(a *models.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.byReg[cp.RegistrationID] = &cp
	return nil
}

func (r *memAttendanceRepo) AppendScan(registrationID string, scan models.ScanEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byReg[registrationID]
	if !ok {
		return nil
	}
	a.Scans = append(a.Scans, scan)
	return nil
}

func (r *memAttendanceRepo) DeleteByRegistrationID(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byReg, id)
	return nil
}

func paidRegistration() *models.Registration {
	return &models.Registration{
		ID:                 "reg-1",
		UserID:             "u1",
		RegistrationNumber: "AOA2026-0007",
		PaymentStatus:      models.PaymentStatusPaid,
	}
}

func TestEnsureIssuedIsIdempotent(t *testing.T) {
	repo := newMemAttendanceRepo()
	svc := &DefaultAttendanceService{Repo: repo}
	reg := paidRegistration()

	require.NoError(t, svc.EnsureIssued(reg))
	first, err := svc.GetByRegistrationID(reg.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.RegistrationNumber, first.QRPayload)
	assert.NotEmpty(t, first.QRImage)

	// A second issue reuses the record instead of minting a new QR.
	require.NoError(t, svc.EnsureIssued(reg))
	again, err := svc.GetByRegistrationID(reg.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestCheckInFlagsRepeatScans(t *testing.T) {
	repo := newMemAttendanceRepo()
	svc := &DefaultAttendanceService{Repo: repo}
	reg := paidRegistration()
	require.NoError(t, svc.EnsureIssued(reg))

	record, already, err := svc.CheckIn(reg.RegistrationNumber, "hall-a")
	require.NoError(t, err)
	assert.False(t, already)
	assert.Len(t, record.Scans, 1)

	record, already, err = svc.CheckIn(reg.RegistrationNumber, "hall-b")
	require.NoError(t, err)
	assert.True(t, already)
	assert.Len(t, record.Scans, 2)
}

func TestCheckInUnknownNumber(t *testing.T) {
	svc := &DefaultAttendanceService{Repo: newMemAttendanceRepo()}

	_, _, err := svc.CheckIn("AOA2026-9999", "hall-a")
	require.Error(t, err)
}
