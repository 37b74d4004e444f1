package handlers

import (
	"errors"
	"net/http"

	"dairy-pos/internal/ai"

	"github.com/gin-gonic/gin"
)

type AskRequest struct {
	ShopID  string `json:"shop_id"`
	Message string `json:"message" binding:"required"`
}

// --- POST: /api/ask ---
func (h *Handler) AskAI(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message is required"})
		return
	}

	// 1. Run the agent against the caller's shop
	reply, err := h.d.Agent.Ask(c.Request.Context(), shopIDOr(c, req.ShopID), req.Message)
	if err != nil {
		if errors.Is(err, ai.ErrDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Assistant failed", "error": err.Error()})
		return
	}

	// 2. Return the answer
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
