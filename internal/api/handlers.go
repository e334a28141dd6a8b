package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/report"
	"github.com/UnknownOlympus/hermes/internal/resolver"
	"github.com/UnknownOlympus/hermes/internal/validate"
	"github.com/gin-gonic/gin"
)

// Checker is the resolver surface the HTTP handlers depend on.
type Checker interface {
	ResolveBatch(
		ctx context.Context,
		reference string,
		candidates []models.Candidate,
		thresholdMinutes float64,
		opts ...resolver.Option,
	) ([]models.RouteResult, error)
}

// CheckRequest is the request body for both check endpoints.
type CheckRequest struct {
	Reference        string   `json:"reference"`
	ThresholdMinutes float64  `json:"threshold_minutes"`
	Addresses        []string `json:"addresses"`
}

// CheckResponse carries ordered display rows plus the batch summary.
type CheckResponse struct {
	Rows    []report.Row   `json:"rows"`
	Summary models.Summary `json:"summary"`
}

// CheckHandler serves batch drive-time checks.
type CheckHandler struct {
	Log     *slog.Logger
	Checker Checker
}

// Check runs one batch and returns the rows and summary as JSON.
func (h *CheckHandler) Check(c *gin.Context) {
	results, ok := h.run(c)
	if !ok {
		return
	}

	rows, summary := report.Aggregate(results)
	c.JSON(http.StatusOK, CheckResponse{Rows: rows, Summary: summary})
}

// Export runs one batch and streams the results as a CSV attachment.
func (h *CheckHandler) Export(c *gin.Context) {
	results, ok := h.run(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("drive-time-check-%s.csv", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := report.WriteCSV(c.Writer, results); err != nil {
		h.Log.ErrorContext(c.Request.Context(), "Failed to stream CSV export", "error", err)
	}
}

// run decodes and validates the request, executes the batch and handles the
// error surface shared by both endpoints. The boolean reports whether results
// are usable; on false a response has already been written.
func (h *CheckHandler) run(c *gin.Context) ([]models.RouteResult, bool) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return nil, false
	}

	if _, err := validate.Address(req.Reference); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference address is required"})
		return nil, false
	}
	if req.ThresholdMinutes <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "threshold_minutes must be a positive number"})
		return nil, false
	}

	candidates := validate.Candidates(req.Reference, req.Addresses)
	if len(candidates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one candidate address is required"})
		return nil, false
	}

	results, err := h.Checker.ResolveBatch(c.Request.Context(), req.Reference, candidates, req.ThresholdMinutes)
	if err != nil {
		if errors.Is(err, resolver.ErrAllCandidatesFailed) {
			// Every candidate failed, most likely an unreachable provider.
			_, summary := report.Aggregate(results)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "summary": summary})
			return nil, false
		}

		h.Log.ErrorContext(c.Request.Context(), "Batch resolution failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	return results, true
}
