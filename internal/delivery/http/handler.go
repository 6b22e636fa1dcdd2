package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hi8esh/askziva/internal/domain"
)

// ReportService produces intelligence reports for product references.
type ReportService interface {
	Scan(ctx context.Context, reference string) (*domain.IntelligenceReport, error)
	Analyze(ctx context.Context, title string) (*domain.IntelligenceReport, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service ReportService
}

// NewHandler creates a new HTTP handler
func NewHandler(service ReportService) *Handler {
	return &Handler{service: service}
}

// Home confirms the engine is up for anyone poking the root path.
func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, "AskZiva engine is running")
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "askziva-backend",
		"version": "1.0.0",
	})
}

// scanRequest is the POST /scan body.
type scanRequest struct {
	URL string `json:"url"`
}

// Scan handles POST /scan: full report for a URL or free-text reference.
func (h *Handler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No URL provided"})
		return
	}

	report, err := h.service.Scan(c.Request.Context(), req.URL)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Analyze handles GET /analyze?title=: search-query path only.
func (h *Handler) Analyze(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No title provided"})
		return
	}

	report, err := h.service.Analyze(c.Request.Context(), title)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// renderError maps service errors to responses. Only ErrInvalidInput is
// expected here; the aggregator degrades everything else internally.
func (h *Handler) renderError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No URL provided"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "scan failed"})
}
