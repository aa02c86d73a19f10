package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/storage"
	"github.com/talentmatch/backend/tenure"
	"github.com/talentmatch/backend/tools"
)

// CandidateHandler serves candidate profiles and tenure analysis
type CandidateHandler struct {
	candidates storage.CandidateStore
	analyzer   *tenure.Analyzer
	registry   *tools.ToolRegistry
	logger     *zap.SugaredLogger
}

// NewCandidateHandler creates a new candidate handler
func NewCandidateHandler(candidates storage.CandidateStore, analyzer *tenure.Analyzer, registry *tools.ToolRegistry, logger *zap.SugaredLogger) *CandidateHandler {
	return &CandidateHandler{
		candidates: candidates,
		analyzer:   analyzer,
		registry:   registry,
		logger:     logger,
	}
}

// GetCandidate returns one candidate's full profile
// @Summary Get candidate details
// @Tags Candidates
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} models.Candidate "Candidate profile"
// @Failure 404 {object} models.ErrorResponse "Candidate not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /candidates/{id} [get]
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	cand, err := h.candidates.GetCandidate(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Candidate not found",
			Code:  http.StatusNotFound,
		})
		return
	}
	if err != nil {
		h.logger.Errorw("failed to fetch candidate", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to fetch candidate",
			Code:  http.StatusInternalServerError,
		})
		return
	}
	c.JSON(http.StatusOK, cand)
}

// GetTenure returns the tenure analysis for one candidate
// @Summary Analyze candidate tenure
// @Description Scores the candidate's work-history stability (0-100) with a stable/moderate/high_risk label.
// @Tags Candidates
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} models.TenureResponse "Tenure analysis"
// @Failure 404 {object} models.ErrorResponse "Candidate not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /candidates/{id}/tenure [get]
func (h *CandidateHandler) GetTenure(c *gin.Context) {
	cand, err := h.candidates.GetCandidate(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Candidate not found",
			Code:  http.StatusNotFound,
		})
		return
	}
	if err != nil {
		h.logger.Errorw("failed to fetch candidate", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to fetch candidate",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	analysis := h.analyzer.Analyze(cand.WorkHistory)
	c.JSON(http.StatusOK, models.TenureResponse{
		CandidateID:     cand.ID,
		Name:            cand.Name,
		Label:           analysis.Label,
		Score:           analysis.Score,
		AvgTenureMonths: analysis.AvgTenureMonths,
		ShortStints:     analysis.ShortStints,
		LongStints:      analysis.LongStints,
		RedFlags:        analysis.RedFlags,
	})
}

// ListTools lists the agent-callable tools
// @Summary List available tools
// @Tags Tools
// @Produce json
// @Success 200 {object} map[string]interface{} "Tool definitions"
// @Router /tools [get]
func (h *CandidateHandler) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": h.registry.Definitions()})
}

// Health returns server health status
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse "Server is healthy"
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Version:   "1.0.0",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
