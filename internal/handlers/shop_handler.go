package handlers

import (
	"errors"
	"net/http"

	"dairy-pos/internal/accounts"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/shops/:id ---
func (h *Handler) GetShop(c *gin.Context) {
	shop, err := h.d.Accounts.Shop(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, shop)
	case errors.Is(err, accounts.ErrShopNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Shop not found."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error fetching shop.", "error": err.Error()})
	}
}
