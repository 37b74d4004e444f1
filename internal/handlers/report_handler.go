package handlers

import (
	"fmt"
	"net/http"
	"time"

	"dairy-pos/internal/database"

	"github.com/gin-gonic/gin"
)

const dateOnly = "2006-01-02"

// --- GET: /api/reports/:shop_id?from=&to= ---
// Revenue covers paid sales inside the window; outstanding debt is always the
// shop's full unpaid total.
func (h *Handler) GetSalesReport(c *gin.Context) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	start, err := parseBound(c.Query("from"), today, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	end, err := parseBound(c.Query("to"), today, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "'to' must not be before 'from'"})
		return
	}

	report, err := database.GetSalesReport(c.Request.Context(), h.d.DB, c.Param("shop_id"), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build report", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// --- GET: /api/reports/:shop_id/debtors ---
func (h *Handler) GetDebtors(c *gin.Context) {
	debtors, err := database.GetDebtors(c.Request.Context(), h.d.DB, c.Param("shop_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch debtors", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, debtors)
}

// parseBound reads RFC3339 or a bare date. A bare 'to' date runs to the end of
// that day.
func parseBound(v string, today time.Time, end bool) (time.Time, error) {
	day := today
	if v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, nil
		}
		t, err := time.ParseInLocation(dateOnly, v, today.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", v)
		}
		day = t
	}
	if end {
		return day.Add(24*time.Hour - time.Nanosecond), nil
	}
	return day, nil
}
