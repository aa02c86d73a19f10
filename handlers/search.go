package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentmatch/backend/agent"
	"github.com/talentmatch/backend/filter"
	"github.com/talentmatch/backend/models"
)

// CompanyStore resolves stored employer profiles by id.
type CompanyStore interface {
	GetCompanyProfile(ctx context.Context, id string) (*models.CompanyProfile, error)
}

// SearchHandler handles candidate search requests
type SearchHandler struct {
	filter    *filter.Filter
	loop      *agent.Loop
	companies CompanyStore // may be nil
	logger    *zap.SugaredLogger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(f *filter.Filter, loop *agent.Loop, companies CompanyStore, logger *zap.SugaredLogger) *SearchHandler {
	return &SearchHandler{
		filter:    f,
		loop:      loop,
		companies: companies,
		logger:    logger,
	}
}

// resolveCompany prefers an inline profile, then a stored one by id.
func (h *SearchHandler) resolveCompany(ctx context.Context, inline *models.CompanyProfile, companyID string) *models.CompanyProfile {
	if inline != nil || companyID == "" || h.companies == nil {
		return inline
	}
	profile, err := h.companies.GetCompanyProfile(ctx, companyID)
	if err != nil {
		h.logger.Warnw("failed to resolve company profile", "company", companyID, "error", err)
		return nil
	}
	return profile
}

// Search runs one progressive search turn
// @Summary Search candidates progressively
// @Description Runs one search turn. Requirements accumulate across turns within a session, narrowing the pool. Omit session_id to start a new session.
// @Tags Search
// @Accept json
// @Produce json
// @Param request body models.SearchRequest true "Search request"
// @Success 200 {object} models.SearchResponse "Ranked matches"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /agent/search [post]
func (h *SearchHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Query is required",
			Code:  http.StatusBadRequest,
		})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	company := h.resolveCompany(c.Request.Context(), req.Company, req.CompanyID)
	resp, err := h.filter.Filter(c.Request.Context(), req.SessionID, req.Query, req.Reset, company)
	if err != nil {
		h.logger.Errorw("search turn failed", "session", req.SessionID, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Search failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	resp.NarrativeSummary = filter.Summarize(resp)
	c.JSON(http.StatusOK, resp)
}

// Chat routes a message through the tool-calling agent
// @Summary Converse with the recruiting agent
// @Description Sends one message through the agent loop. The agent decides which tools to call and replies conversationally.
// @Tags Search
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Chat message"
// @Success 200 {object} models.ChatResponse "Agent reply"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /agent/chat [post]
func (h *SearchHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Message is required",
			Code:  http.StatusBadRequest,
		})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	if company := h.resolveCompany(c.Request.Context(), req.Company, req.CompanyID); company != nil {
		if err := h.filter.SetCompany(c.Request.Context(), req.SessionID, company); err != nil {
			h.logger.Errorw("failed to set company profile", "session", req.SessionID, "error", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to store company profile",
				Code:  http.StatusInternalServerError,
			})
			return
		}
	}

	resp, err := h.loop.Chat(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		h.logger.Errorw("chat turn failed", "session", req.SessionID, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Chat failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Reset reinitializes a search session
// @Summary Reset a search session
// @Description Discards the session's accumulated requirements and restores the full candidate pool.
// @Tags Search
// @Accept json
// @Produce json
// @Param request body models.ResetRequest true "Session to reset"
// @Success 200 {object} models.ResetResponse "Reset acknowledged"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Unknown session"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /agent/reset [post]
func (h *SearchHandler) Reset(c *gin.Context) {
	var req models.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "session_id is required",
			Code:  http.StatusBadRequest,
		})
		return
	}

	available, err := h.filter.Reset(c.Request.Context(), req.SessionID)
	if errors.Is(err, filter.ErrUnknownSession) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Unknown session",
			Code:  http.StatusNotFound,
		})
		return
	}
	if err != nil {
		h.logger.Errorw("session reset failed", "session", req.SessionID, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Reset failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	h.loop.Reset(req.SessionID)

	c.JSON(http.StatusOK, models.ResetResponse{
		SessionID:           req.SessionID,
		Status:              "success",
		CandidatesAvailable: available,
	})
}

// SetCompanyProfile attaches an employer profile to a session
// @Summary Set the employer profile for a session
// @Description Stores the company mission and culture answers used for culture-fit scoring.
// @Tags Search
// @Accept json
// @Produce json
// @Param request body models.CompanyProfileRequest true "Company profile"
// @Success 200 {object} map[string]string "Profile stored"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /company/profile [post]
func (h *SearchHandler) SetCompanyProfile(c *gin.Context) {
	var req models.CompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "session_id and profile are required",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if err := h.filter.SetCompany(c.Request.Context(), req.SessionID, &req.Profile); err != nil {
		h.logger.Errorw("failed to store company profile", "session", req.SessionID, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to store company profile",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": req.SessionID, "status": "success"})
}
