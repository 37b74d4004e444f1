package handlers

import (
	"errors"
	"net/http"

	"dairy-pos/internal/customers"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/shops/:id/customers ---
func (h *Handler) GetShopCustomers(c *gin.Context) {
	list, err := h.d.Customers.ListByShop(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error fetching customers for this shop.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// --- POST: /api/customers/add ---
func (h *Handler) AddCustomer(c *gin.Context) {
	var in customers.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required customer fields.", "error": err.Error()})
		return
	}
	in.ShopID = shopIDOr(c, in.ShopID)

	customer, err := h.d.Customers.Create(c.Request.Context(), in)
	if err != nil {
		writeCustomerErr(c, "Error saving customer.", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Customer added successfully!", "customer": customer})
}

// --- POST: /api/customers/update/:id ---
func (h *Handler) UpdateCustomer(c *gin.Context) {
	var in customers.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required customer fields.", "error": err.Error()})
		return
	}

	customer, err := h.d.Customers.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeCustomerErr(c, "Error updating customer.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer updated successfully!", "customer": customer})
}

// --- DELETE: /api/customers/:id ---
func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.d.Customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeCustomerErr(c, "Error deleting customer.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully."})
}

func writeCustomerErr(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, customers.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"message": "A customer with this email already exists for this shop."})
	case errors.Is(err, customers.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": msg, "error": err.Error()})
	case errors.Is(err, customers.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": msg, "error": err.Error()})
	}
}
