package handlers

import (
	"errors"
	"net/http"

	"dairy-pos/internal/accounts"

	"github.com/gin-gonic/gin"
)

// --- POST: /api/users/register ---
func (h *Handler) Register(c *gin.Context) {
	var input accounts.RegisterInput

	// 1. Parse JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All required fields must be filled.", "error": err.Error()})
		return
	}

	// 2. Create user and shop together
	if _, err := h.d.Accounts.Register(c.Request.Context(), input); err != nil {
		if errors.Is(err, accounts.ErrEmailTaken) || errors.Is(err, accounts.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration.", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful! Please login."})
}

// --- POST: /api/users/login ---
func (h *Handler) Login(c *gin.Context) {
	var input accounts.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required."})
		return
	}

	session, err := h.d.Accounts.Login(c.Request.Context(), input)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful!",
			"token":   session.Token,
			"user":    session.User,
			"shop":    session.Shop,
		})
	case errors.Is(err, accounts.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, accounts.ErrNoShop):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login.", "error": err.Error()})
	}
}
