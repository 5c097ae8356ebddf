package attendanceRepo

import "confreg/models"

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	// GetByRegistrationID retrieves the attendance record for a
	// registration; nil when none has been issued.
	GetByRegistrationID(registrationID string) (*models.Attendance, error)
	// GetByNumber retrieves an attendance record by registration number;
	// nil when absent.
	GetByNumber(number string) (*models.Attendance, error)
	// Create inserts a new attendance record.
	Create(a *models.Attendance) error
	// AppendScan appends a scan event to the record's ledger.
	AppendScan(registrationID string, scan models.ScanEvent) error
	// DeleteByRegistrationID removes the record for a registration (cascade).
	DeleteByRegistrationID(registrationID string) error
}
