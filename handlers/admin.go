package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confreg/models"
	"confreg/services/abstract"
	"confreg/services/payment"
	"confreg/services/registration"
	"confreg/services/user"
)

// AdminHandler exposes the back-office console.
type AdminHandler struct {
	Registrations registration.RegistrationService
	Payments      payment.PaymentService
	Users         user.UserService
	Abstracts     abstract.AbstractService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(regs registration.RegistrationService, pays payment.PaymentService, users user.UserService, abstracts abstract.AbstractService) *AdminHandler {
	return &AdminHandler{Registrations: regs, Payments: pays, Users: users, Abstracts: abstracts}
}

// ListRegistrationsHandler lists every registration.
func (h *AdminHandler) ListRegistrationsHandler(c *gin.Context) {
	regs, err := h.Registrations.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registrations": regs})
}

// GetRegistrationHandler fetches one registration.
func (h *AdminHandler) GetRegistrationHandler(c *gin.Context) {
	reg, err := h.Registrations.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration": reg})
}

// DeleteRegistrationHandler removes a registration and cascades to its
// payment and attendance rows.
func (h *AdminHandler) DeleteRegistrationHandler(c *gin.Context) {
	if err := h.Registrations.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// CreateManualRegistrationHandler registers a user under a preferred number.
func (h *AdminHandler) CreateManualRegistrationHandler(c *gin.Context) {
	var req registration.ManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	reg, err := h.Registrations.CreateManual(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"registration": reg})
}

// GetCounterHandler reports the number allocator's current sequence.
func (h *AdminHandler) GetCounterHandler(c *gin.Context) {
	value, err := h.Registrations.CounterValue()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counter": value})
}

// SetCounterHandler overwrites the allocator sequence. Values below the
// highest number already issued are rejected.
func (h *AdminHandler) SetCounterHandler(c *gin.Context) {
	var req struct {
		Value int `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Registrations.SetCounter(req.Value); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counter": req.Value})
}

// ReconcileOrderHandler asks the gateway for an order's payments and applies
// a captured one. Used when the callback and webhook were both missed.
func (h *AdminHandler) ReconcileOrderHandler(c *gin.Context) {
	p, err := h.Payments.Reconcile(c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": p})
}

// ResendConfirmationHandler re-runs the post-success side effects for a
// paid registration.
func (h *AdminHandler) ResendConfirmationHandler(c *gin.Context) {
	if err := h.Payments.ResendConfirmation(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

// ListUsersHandler lists all accounts.
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.Users.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ListAbstractsHandler lists every submission.
func (h *AdminHandler) ListAbstractsHandler(c *gin.Context) {
	items, err := h.Abstracts.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"abstracts": items})
}

// ReviewAbstractHandler appends a review to a submission.
func (h *AdminHandler) ReviewAbstractHandler(c *gin.Context) {
	var req models.Review
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	a, err := h.Abstracts.Review(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"abstract": a})
}

// DecideAbstractHandler sets the final accept/reject status.
func (h *AdminHandler) DecideAbstractHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	a, err := h.Abstracts.Decide(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"abstract": a})
}
