package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"confreg/services/user"
	"confreg/utils"
)

// UserHandler exposes account endpoints.
type UserHandler struct {
	Service user.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// RegisterUserHandler creates an account.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var req user.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	u, err := h.Service.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

// AuthenticateUserHandler signs a user in and returns a token.
func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	u, token, err := h.Service.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

// GetMeHandler returns the authenticated account.
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	userID := c.GetString("userID")
	u, err := h.Service.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// UpdateProfileHandler applies editable profile fields. Email and phone are
// immutable and silently absent from the update shape.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req user.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	u, err := h.Service.UpdateProfile(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// LogoutHandler revokes the presented token for the rest of its lifetime.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	token := c.GetString("authToken")
	if token != "" {
		client := utils.GetAuthCacheClient()
		client.Set(c.Request.Context(), "revoked:"+utils.HashToken(token), "1", 72*time.Hour)
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}
