package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Upload templates, shaped so a filled-in copy round-trips through the
// detector and parsers unchanged.
const billsTemplateCSV = `Company Name,Bill No,Bill Date (DD/MM/YYYY),PO No,Type,Bill Amount,Pending Amount,Due Days
"Example Company Ltd","INV/001/2025","01/01/2025","PO-001","Sale","10000.00","10000.00","30"
`

const companiesTemplateCSV = `Name,Address,City,Contact No.,E-Mail & Website,Bank Name,Bank Branch Name,Bank Address,Bank IFSC Code,Bank Account No.,IBAN No.,Swift Code
"Example Company Ltd","123 Business Street","Mumbai","+919876543210","contact@example.com","State Bank","Fort Branch","1 Bank Road, Mumbai","SBIN0000300","00000012345","","SBININBB"
`

// DownloadTemplate serves the CSV upload template for a collection kind.
// GET /api/templates/:kind
func (h *Handler) DownloadTemplate(c *gin.Context) {
	var body, filename string
	switch c.Param("kind") {
	case "bills":
		body, filename = billsTemplateCSV, "bills_template.csv"
	case "companies":
		body, filename = companiesTemplateCSV, "companies_template.csv"
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown template kind"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}
