package models

import "time"

// ScanEvent is one QR scan at a check-in station.
type ScanEvent struct {
	Station   string    `bson:"station" json:"station"`
	ScannedAt time.Time `bson:"scanned_at" json:"scannedAt"`
}

// Attendance holds the check-in QR for a paid registration and its scan
// ledger. Created once, on first successful registration payment.
type Attendance struct {
	ID                 string      `bson:"id" json:"id"`
	RegistrationID     string      `bson:"registration_id" json:"registrationId"`
	RegistrationNumber string      `bson:"registration_number" json:"registrationNumber"`
	QRPayload          string      `bson:"qr_payload" json:"qrPayload"` // the registration number
	QRImage            []byte      `bson:"qr_image,omitempty" json:"-"` // PNG badge code
	Scans              []ScanEvent `bson:"scans,omitempty" json:"scans,omitempty"`
	CreatedAt          time.Time   `bson:"created_at" json:"createdAt"`
}
