package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus reports basic liveness plus collection counts.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	companies, err := h.store.ListCompanies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	bills, err := h.store.ListBills()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"companies": len(companies),
		"bills":     len(bills),
	})
}
