package user

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confreg/models"
	"confreg/utils"
)

type memUserRepo struct {
	mu   sync.Mutex
	byID map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*models.User{}}
}

func (r *memUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, assert.AnError
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
	cp := *u
	r.byID[cp.ID] = &cp
	return nil
}

func (r *memUserRepo) Update(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[cp.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(id string) error { return nil }

func signup() SignupRequest {
	return SignupRequest{
		FullName: "Dr. Test Attendee",
		Email:    "attendee@example.com",
		Phone:    "+911234567890",
		Role:     "Non-AOA Member",
		Password: "s3cret-pass",
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := &DefaultUserService{Repo: newMemUserRepo()}

	created, err := svc.Register(signup())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "s3cret-pass", created.PasswordHash)
	// Institution and city are still missing.
	assert.False(t, created.ProfileComplete)

	u, token, err := svc.Authenticate("attendee@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	id, err := utils.ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	_, _, err = svc.Authenticate("attendee@example.com", "wrong")
	require.Error(t, err)
	var uerr *UserError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, CodeInvalidCredentials, uerr.Code)
}

func TestRegisterRejectsDuplicateEmailAndBadRole(t *testing.T) {
	svc := &DefaultUserService{Repo: newMemUserRepo()}

	_, err := svc.Register(signup())
	require.NoError(t, err)

	_, err = svc.Register(signup())
	require.Error(t, err)
	var uerr *UserError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, CodeDuplicate, uerr.Code)

	bad := signup()
	bad.Email = "other@example.com"
	bad.Role = "EXHIBITOR"
	_, err = svc.Register(bad)
	require.Error(t, err)
}

func TestUpdateProfileCompletesCheckoutGate(t *testing.T) {
	svc := &DefaultUserService{Repo: newMemUserRepo()}

	created, err := svc.Register(signup())
	require.NoError(t, err)
	require.False(t, created.ProfileComplete)

	updated, err := svc.UpdateProfile(created.ID, ProfileUpdate{
		Institution: "City Orthopaedic Centre",
		City:        "Pune",
		Country:     "India",
	})
	require.NoError(t, err)
	assert.True(t, updated.ProfileComplete)

	// Email stays what it was; the update shape cannot carry one.
	assert.Equal(t, "attendee@example.com", updated.Email)
}
