package models

import "time"

// CounterRegistrationNumber is the counter document backing registration
// number allocation.
const CounterRegistrationNumber = "registrationNumber"

// Counter is a named monotonically increasing sequence. Its value is always
// at least the highest suffix among issued registration numbers.
type Counter struct {
	Name      string    `bson:"name" json:"name"`
	Sequence  int       `bson:"sequence" json:"sequence"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
