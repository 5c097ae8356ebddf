package models

import "time"

// Abstract submission workflow states.
const (
	AbstractSubmitted   = "SUBMITTED"
	AbstractUnderReview = "UNDER_REVIEW"
	AbstractAccepted    = "ACCEPTED"
	AbstractRejected    = "REJECTED"
)

// Review is one reviewer's verdict on an abstract.
type Review struct {
	Reviewer   string    `bson:"reviewer" json:"reviewer"`
	Score      int       `bson:"score" json:"score"`
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	ReviewedAt time.Time `bson:"reviewed_at" json:"reviewedAt"`
}

// Abstract is a scientific-programme submission. One per user per category;
// editable until review starts.
type Abstract struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Category  string    `bson:"category" json:"category"`
	Title     string    `bson:"title" json:"title"`
	Authors   []string  `bson:"authors" json:"authors"`
	Body      string    `bson:"body" json:"body"`
	Status    string    `bson:"status" json:"status"`
	Reviews   []Review  `bson:"reviews,omitempty" json:"reviews,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
