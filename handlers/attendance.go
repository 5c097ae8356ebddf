package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"confreg/models"
	"confreg/services/attendance"
	"confreg/services/registration"
)

// AttendanceHandler exposes badge retrieval and check-in scanning.
type AttendanceHandler struct {
	Service       attendance.AttendanceService
	Registrations registration.RegistrationService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(svc attendance.AttendanceService, regs registration.RegistrationService) *AttendanceHandler {
	return &AttendanceHandler{Service: svc, Registrations: regs}
}

// GetMyBadgeHandler returns the caller's badge with its QR image.
func (h *AttendanceHandler) GetMyBadgeHandler(c *gin.Context) {
	userID := c.GetString("userID")

	reg, err := h.Registrations.GetByUserID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if reg.PaymentStatus != models.PaymentStatusPaid {
		c.JSON(http.StatusNotFound, gin.H{"error": "badge is issued after payment is completed"})
		return
	}

	record, err := h.Service.GetByRegistrationID(reg.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	// The PNG is excluded from the model's JSON shape; attach it here as a
	// data URI the client can drop into an <img>.
	c.JSON(http.StatusOK, gin.H{
		"badge":   record,
		"qrImage": "data:image/png;base64," + base64.StdEncoding.EncodeToString(record.QRImage),
	})
}

// CheckInHandler records a scan at a station.
func (h *AttendanceHandler) CheckInHandler(c *gin.Context) {
	var req struct {
		RegistrationNumber string `json:"registrationNumber"`
		Station            string `json:"station"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	record, already, err := h.Service.CheckIn(req.RegistrationNumber, req.Station)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": record, "alreadyScanned": already})
}
