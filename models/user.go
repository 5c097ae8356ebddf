package models

import "time"

// User is an attendee account. Email and phone are immutable after signup.
type User struct {
	ID              string    `bson:"id" json:"id"`
	FullName        string    `bson:"full_name" json:"fullName"`
	Email           string    `bson:"email" json:"email"`
	Phone           string    `bson:"phone" json:"phone"`
	Role            string    `bson:"role" json:"role"` // raw display string, normalized before pricing
	Institution     string    `bson:"institution,omitempty" json:"institution,omitempty"`
	City            string    `bson:"city,omitempty" json:"city,omitempty"`
	Country         string    `bson:"country,omitempty" json:"country,omitempty"`
	MealPreference  string    `bson:"meal_preference,omitempty" json:"mealPreference,omitempty"`
	ProfileComplete bool      `bson:"profile_complete" json:"profileComplete"`
	PasswordHash    string    `bson:"password_hash" json:"-"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
