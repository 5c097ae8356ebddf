package abstractRepo

import "confreg/models"

// AbstractRepository defines data access for abstract submissions.
type AbstractRepository interface {
	// GetByID retrieves an abstract by its unique ID.
	GetByID(id string) (*models.Abstract, error)
	// GetByUserAndCategory retrieves a user's submission in a category;
	// nil when absent.
	GetByUserAndCategory(userID, category string) (*models.Abstract, error)
	// ListByUser retrieves all submissions by a user.
	ListByUser(userID string) ([]models.Abstract, error)
	// GetAll retrieves all submissions.
	GetAll() ([]models.Abstract, error)
	// Create inserts a new submission.
	Create(a *models.Abstract) error
	// Update writes back a modified submission.
	Update(a *models.Abstract) error
	// Delete removes a submission by its ID.
	Delete(id string) error
}
