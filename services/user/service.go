package user

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userRepo "confreg/database/repository/user"
	"confreg/models"
	"confreg/services/pricing"
	"confreg/utils"
)

// SignupRequest carries the account-creation fields.
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// ProfileUpdate carries the editable profile fields. Email and phone are
// immutable after signup and rejected here.
type ProfileUpdate struct {
	FullName       string `json:"fullName,omitempty"`
	Role           string `json:"role,omitempty"`
	Institution    string `json:"institution,omitempty"`
	City           string `json:"city,omitempty"`
	Country        string `json:"country,omitempty"`
	MealPreference string `json:"mealPreference,omitempty"`
}

// UserService manages attendee accounts.
type UserService interface {
	// Register creates an account and returns it.
	Register(req SignupRequest) (*models.User, error)
	// Authenticate verifies credentials and returns the user plus a JWT.
	Authenticate(email, password string) (*models.User, string, error)
	// GetByID fetches an account.
	GetByID(id string) (*models.User, error)
	// GetAll lists all accounts (admin).
	GetAll() ([]models.User, error)
	// UpdateProfile applies editable profile fields and recomputes the
	// profile-completion flag.
	UpdateProfile(id string, update ProfileUpdate) (*models.User, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// tokenTTL is the signin token lifetime.
const tokenTTL = 72 * time.Hour

// Register creates an account. Email and phone become immutable from here.
func (s *DefaultUserService) Register(req SignupRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" || req.FullName == "" || req.Phone == "" {
		return nil, newError(CodeInvalidInput, "name, email, phone and password are required")
	}
	if _, ok := pricing.NormalizeRole(req.Role); !ok {
		return nil, newError(CodeInvalidInput, "unrecognized role")
	}

	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("signup: duplicate check failed", zap.Error(err))
		return nil, newError(CodeInvalidInput, "signup failed, please try again")
	}
	if existing != nil {
		return nil, newError(CodeDuplicate, "an account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           uuid.New().String(),
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
		PasswordHash: string(hashed),
	}
	u.ProfileComplete = profileComplete(u)

	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies credentials and returns the user plus a JWT.
func (s *DefaultUserService) Authenticate(email, password string) (*models.User, string, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		return nil, "", newError(CodeInvalidCredentials, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", newError(CodeInvalidCredentials, "invalid email or password")
	}

	token, err := utils.GenerateToken(u.ID, u.Email, tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// GetByID fetches an account.
func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, newError(CodeNotFound, "user not found")
	}
	return u, nil
}

// GetAll lists all accounts.
func (s *DefaultUserService) GetAll() ([]models.User, error) {
	return s.Repo.GetAll()
}

// UpdateProfile applies editable fields. Checkout stays closed until the
// profile is complete.
func (s *DefaultUserService) UpdateProfile(id string, update ProfileUpdate) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, newError(CodeNotFound, "user not found")
	}

	if update.Role != "" {
		if _, ok := pricing.NormalizeRole(update.Role); !ok {
			return nil, newError(CodeInvalidInput, "unrecognized role")
		}
		u.Role = update.Role
	}
	if update.FullName != "" {
		u.FullName = update.FullName
	}
	if update.Institution != "" {
		u.Institution = update.Institution
	}
	if update.City != "" {
		u.City = update.City
	}
	if update.Country != "" {
		u.Country = update.Country
	}
	if update.MealPreference != "" {
		u.MealPreference = update.MealPreference
	}
	u.ProfileComplete = profileComplete(u)

	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// profileComplete reports whether the fields checkout depends on are filled.
func profileComplete(u *models.User) bool {
	return u.FullName != "" && u.Email != "" && u.Phone != "" &&
		u.Role != "" && u.Institution != "" && u.City != ""
}
