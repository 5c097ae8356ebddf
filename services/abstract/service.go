package abstract

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	abstractRepo "confreg/database/repository/abstract"
	"confreg/models"
)

// SubmitRequest is an abstract submission.
type SubmitRequest struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	Body     string   `json:"body"`
}

// AbsError is a caller-facing abstract error.
type AbsError struct {
	Code    string
	Message string
}

func (e *AbsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AbstractService manages scientific-programme submissions.
type AbstractService interface {
	// Submit creates or replaces the user's submission in a category,
	// editable until review starts.
	Submit(userID string, req SubmitRequest) (*models.Abstract, error)
	// ListByUser lists the user's submissions.
	ListByUser(userID string) ([]models.Abstract, error)
	// GetAll lists all submissions (admin).
	GetAll() ([]models.Abstract, error)
	// Review appends a review and moves the abstract under review (admin).
	Review(abstractID string, review models.Review) (*models.Abstract, error)
	// Decide sets the final accept/reject status (admin).
	Decide(abstractID, status string) (*models.Abstract, error)
}

// DefaultAbstractService implements AbstractService.
type DefaultAbstractService struct {
	Repo abstractRepo.AbstractRepository
}

// Submit creates or replaces the user's submission in a category. Once a
// review exists the submission is frozen.
func (s *DefaultAbstractService) Submit(userID string, req SubmitRequest) (*models.Abstract, error) {
	if req.Title == "" || req.Category == "" || req.Body == "" {
		return nil, &AbsError{Code: "invalidRequest", Message: "category, title and body are required"}
	}

	existing, err := s.Repo.GetByUserAndCategory(userID, req.Category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status != models.AbstractSubmitted {
			return nil, &AbsError{Code: "frozen", Message: "submission is already under review"}
		}
		existing.Title = req.Title
		existing.Authors = req.Authors
		existing.Body = req.Body
		if err := s.Repo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	a := &models.Abstract{
		ID:       uuid.New().String(),
		UserID:   userID,
		Category: req.Category,
		Title:    req.Title,
		Authors:  req.Authors,
		Body:     req.Body,
		Status:   models.AbstractSubmitted,
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListByUser lists the user's submissions.
func (s *DefaultAbstractService) ListByUser(userID string) ([]models.Abstract, error) {
	return s.Repo.ListByUser(userID)
}

// GetAll lists all submissions.
func (s *DefaultAbstractService) GetAll() ([]models.Abstract, error) {
	return s.Repo.GetAll()
}

// Review appends a review and moves the abstract under review.
func (s *DefaultAbstractService) Review(abstractID string, review models.Review) (*models.Abstract, error) {
	a, err := s.Repo.GetByID(abstractID)
	if err != nil {
		return nil, &AbsError{Code: "notFound", Message: "abstract not found"}
	}
	review.ReviewedAt = time.Now()
	a.Reviews = append(a.Reviews, review)
	if a.Status == models.AbstractSubmitted {
		a.Status = models.AbstractUnderReview
	}
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Decide sets the final accept/reject status.
func (s *DefaultAbstractService) Decide(abstractID, status string) (*models.Abstract, error) {
	if status != models.AbstractAccepted && status != models.AbstractRejected {
		return nil, &AbsError{Code: "invalidRequest", Message: "decision must be ACCEPTED or REJECTED"}
	}
	a, err := s.Repo.GetByID(abstractID)
	if err != nil {
		return nil, &AbsError{Code: "notFound", Message: "abstract not found"}
	}
	a.Status = status
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}
