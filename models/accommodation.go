package models

import "time"

// Accommodation is a hotel booking priced off the room-rate table. It pays
// through the same payment ledger as registrations, with its own reference.
type Accommodation struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"user_id" json:"userId"`
	Hotel         string    `bson:"hotel" json:"hotel"`
	RoomType      string    `bson:"room_type" json:"roomType"`
	CheckIn       string    `bson:"check_in" json:"checkIn"`   // "YYYY-MM-DD"
	CheckOut      string    `bson:"check_out" json:"checkOut"` // "YYYY-MM-DD"
	Nights        int       `bson:"nights" json:"nights"`
	Amount        int       `bson:"amount" json:"amount"`
	TotalPaid     int       `bson:"total_paid" json:"totalPaid"`
	PaymentStatus string    `bson:"payment_status" json:"paymentStatus"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}
