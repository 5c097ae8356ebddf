package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confreg/services/abstract"
)

// AbstractHandler exposes scientific-programme submission endpoints.
type AbstractHandler struct {
	Service abstract.AbstractService
}

// NewAbstractHandler creates an AbstractHandler.
func NewAbstractHandler(svc abstract.AbstractService) *AbstractHandler {
	return &AbstractHandler{Service: svc}
}

// SubmitAbstractHandler creates or replaces the caller's submission in a
// category.
func (h *AbstractHandler) SubmitAbstractHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req abstract.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	a, err := h.Service.Submit(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"abstract": a})
}

// ListMyAbstractsHandler lists the caller's submissions.
func (h *AbstractHandler) ListMyAbstractsHandler(c *gin.Context) {
	userID := c.GetString("userID")

	items, err := h.Service.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"abstracts": items})
}
