package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Princy-soni14/billing-reminder-system/internal/config"
	"github.com/Princy-soni14/billing-reminder-system/internal/ingest"
	"github.com/Princy-soni14/billing-reminder-system/internal/store"
)

// Handler serves the REST API.
type Handler struct {
	store       *store.Store
	coordinator *ingest.Coordinator
	cfg         *config.AppConfig
	log         *logrus.Logger
}

// NewHandler creates the API handler.
func NewHandler(s *store.Store, cfg *config.AppConfig, log *logrus.Logger) *Handler {
	return &Handler{
		store:       s,
		coordinator: ingest.NewCoordinator(s, log),
		cfg:         cfg,
		log:         log,
	}
}

// RegisterRoutes registers all API routes on the group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// bulk ingestion
	router.POST("/upload", h.Upload)
	router.GET("/uploads", h.ListUploads)
	router.GET("/templates/:kind", h.DownloadTemplate)

	// data queries
	router.GET("/companies", h.ListCompanies)
	router.GET("/companies/:id", h.GetCompany)
	router.GET("/companies/:id/bills", h.ListCompanyBills)
	router.GET("/bills", h.ListBills)
}
