package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCompanies returns all companies.
// GET /api/companies
func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.store.ListCompanies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies, "total": len(companies)})
}

// GetCompany returns one company.
// GET /api/companies/:id
func (h *Handler) GetCompany(c *gin.Context) {
	company, err := h.store.GetCompany(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if company == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}
	c.JSON(http.StatusOK, company)
}

// ListCompanyBills returns one company's bills.
// GET /api/companies/:id/bills
func (h *Handler) ListCompanyBills(c *gin.Context) {
	bills, err := h.store.ListBillsByCompany(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills, "total": len(bills)})
}

// ListBills returns all bills.
// GET /api/bills
func (h *Handler) ListBills(c *gin.Context) {
	bills, err := h.store.ListBills()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills, "total": len(bills)})
}
