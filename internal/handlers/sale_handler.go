package handlers

import (
	"errors"
	"net/http"

	"dairy-pos/internal/models"
	"dairy-pos/internal/sales"

	"github.com/gin-gonic/gin"
)

// --- POST: /api/sales/add ---
func (h *Handler) RecordSale(c *gin.Context) {
	var in sales.RecordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required sale fields.", "error": err.Error()})
		return
	}
	in.ShopID = shopIDOr(c, in.ShopID)

	sale, err := h.d.Sales.RecordSale(c.Request.Context(), in)
	if err != nil {
		// a missing product is the till's mistake, so 400 like a stock error
		status := http.StatusBadRequest
		if errors.Is(err, sales.ErrStoreFailure) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"message": "Error recording sale.", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sale recorded successfully!",
		"sale_id": sale.ID,
		"total":   sale.TotalPrice,
	})
}

// --- GET: /api/sales/shop/:shop_id ---
func (h *Handler) GetShopSales(c *gin.Context) {
	list, err := h.d.Sales.ListByShop(c.Request.Context(), c.Param("shop_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching sales reports.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// --- GET: /api/sales/debt/:customer_id ---
func (h *Handler) GetCustomerDebt(c *gin.Context) {
	list, err := h.d.Sales.ListUnpaidSales(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching customer debt.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

type payRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// --- POST: /api/sales/pay/:sale_id ---
func (h *Handler) SettlePayment(c *gin.Context) {
	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.PaymentMethod.Settles() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A valid payment method (cash or online) is required."})
		return
	}

	sale, err := h.d.Sales.SettlePayment(c.Request.Context(), c.Param("sale_id"), req.PaymentMethod)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Payment recorded successfully!", "sale": sale})
	case errors.Is(err, sales.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Sale not found."})
	case errors.Is(err, sales.ErrAlreadySettled):
		c.JSON(http.StatusBadRequest, gin.H{"message": "This sale has already been paid."})
	case errors.Is(err, sales.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only tab sales can be settled.", "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error recording payment.", "error": err.Error()})
	}
}

// --- GET: /api/sales/:sale_id ---
func (h *Handler) GetSale(c *gin.Context) {
	sale, err := h.d.Sales.Get(c.Request.Context(), c.Param("sale_id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, sale)
	case errors.Is(err, sales.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Sale not found."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching sale.", "error": err.Error()})
	}
}
