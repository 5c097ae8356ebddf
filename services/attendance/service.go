package attendance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	attendanceRepo "confreg/database/repository/attendance"
	registrationRepo "confreg/database/repository/registration"
	"confreg/models"
	"confreg/utils"
)

// AttendanceService issues check-in QRs and records scans.
type AttendanceService interface {
	// EnsureIssued creates the attendance record for a paid registration,
	// or reuses the existing one. Safe to call repeatedly.
	EnsureIssued(reg *models.Registration) error
	// GetByRegistrationID fetches the attendance record.
	GetByRegistrationID(registrationID string) (*models.Attendance, error)
	// CheckIn records a scan of the given registration number at a station
	// and reports whether this number was scanned before.
	CheckIn(number, station string) (*models.Attendance, bool, error)
}

// DefaultAttendanceService implements AttendanceService.
type DefaultAttendanceService struct {
	Repo          attendanceRepo.AttendanceRepository
	Registrations registrationRepo.RegistrationRepository
}

// qrSize is the rendered badge-code edge length in pixels.
const qrSize = 256

// EnsureIssued creates the attendance record for a paid registration. The
// QR payload is the registration number itself.
func (s *DefaultAttendanceService) EnsureIssued(reg *models.Registration) error {
	existing, err := s.Repo.GetByRegistrationID(reg.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	png, err := qrcode.Encode(reg.RegistrationNumber, qrcode.Medium, qrSize)
	if err != nil {
		return fmt.Errorf("failed to render attendance QR: %w", err)
	}

	a := &models.Attendance{
		ID:                 uuid.New().String(),
		RegistrationID:     reg.ID,
		RegistrationNumber: reg.RegistrationNumber,
		QRPayload:          reg.RegistrationNumber,
		QRImage:            png,
	}
	if err := s.Repo.Create(a); err != nil {
		// A concurrent capture may have issued it first; reuse theirs.
		if again, getErr := s.Repo.GetByRegistrationID(reg.ID); getErr == nil && again != nil {
			return nil
		}
		return err
	}

	utils.GetLogger().Info("attendance QR issued",
		zap.String("registrationNumber", reg.RegistrationNumber))
	return nil
}

// GetByRegistrationID fetches the attendance record.
func (s *DefaultAttendanceService) GetByRegistrationID(registrationID string) (*models.Attendance, error) {
	a, err := s.Repo.GetByRegistrationID(registrationID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("no attendance record for registration %s", registrationID)
	}
	return a, nil
}

// CheckIn records a scan. Scans are appended unconditionally; the caller is
// told whether the badge was scanned before so the station can flag it.
func (s *DefaultAttendanceService) CheckIn(number, station string) (*models.Attendance, bool, error) {
	a, err := s.Repo.GetByNumber(number)
	if err != nil {
		return nil, false, err
	}
	if a == nil {
		return nil, false, fmt.Errorf("unknown registration number %s", number)
	}

	alreadyScanned := len(a.Scans) > 0
	scan := models.ScanEvent{Station: station, ScannedAt: time.Now()}
	if err := s.Repo.AppendScan(a.RegistrationID, scan); err != nil {
		return nil, false, err
	}
	a.Scans = append(a.Scans, scan)
	return a, alreadyScanned, nil
}
