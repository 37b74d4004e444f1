package handlers

import (
	"errors"
	"net/http"

	"dairy-pos/internal/catalog"
	"dairy-pos/internal/uploads"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/shops/:id/products ---
func (h *Handler) GetShopProducts(c *gin.Context) {
	products, err := h.d.Catalog.ListByShop(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error fetching products for this shop.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- POST: /api/products/add ---
func (h *Handler) AddProduct(c *gin.Context) {
	var in catalog.Input

	// 1. Parse JSON or form input
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required product fields.", "error": err.Error()})
		return
	}
	in.ShopID = shopIDOr(c, in.ShopID)

	// 2. Save to DB
	product, err := h.d.Catalog.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(productStatus(err), gin.H{"message": "Error saving product.", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully!", "product": product})
}

// --- POST: /api/products/update/:id ---
func (h *Handler) UpdateProduct(c *gin.Context) {
	var in catalog.Input
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required product fields.", "error": err.Error()})
		return
	}

	product, err := h.d.Catalog.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		c.JSON(productStatus(err), gin.H{"message": "Error updating product.", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully!", "product": product})
}

// --- DELETE: /api/products/:id ---
// Past sales keep their snapshot of the product, so deleting is always allowed.
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.d.Catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(productStatus(err), gin.H{"message": "Error deleting product.", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

// --- UPLOAD: Handle Image Files ---
func (h *Handler) UploadImage(c *gin.Context) {
	// 1. Get the file from the request
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No image uploaded"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not read upload"})
		return
	}
	defer src.Close()

	// 2. Check it is an image and store it
	url, err := h.d.Uploads.Save(src)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "File uploaded successfully", "url": url})
	case errors.Is(err, uploads.ErrTooLarge), errors.Is(err, uploads.ErrNotImage):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save file"})
	}
}

func productStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
