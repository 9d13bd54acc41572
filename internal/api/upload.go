package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Princy-soni14/billing-reminder-system/internal/ingest"
	"github.com/Princy-soni14/billing-reminder-system/internal/parser"
)

// Upload ingests one spreadsheet (SSE streaming response).
// POST /api/upload, multipart form: file + kind=bills|companies
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no uploaded file"})
		return
	}

	kind := parser.Kind(c.DefaultPostForm("kind", string(parser.KindBills)))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be bills or companies"})
		return
	}
	if !parser.Accepted(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please upload .xlsx, .xls or .csv"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	progressChan := h.coordinator.Ingest(file, ingest.Options{
		Filename:           fileHeader.Filename,
		Kind:               kind,
		KeepEmptyCompanies: h.cfg.Ingest.KeepEmptyCompanies,
	})

	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

// ListUploads returns the upload audit history, newest first.
// GET /api/uploads
func (h *Handler) ListUploads(c *gin.Context) {
	audits, err := h.store.ListAudits()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploads": audits, "total": len(audits)})
}
