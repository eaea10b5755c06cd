package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "refutree/internal/errors"
	"refutree/internal/models"
	"refutree/internal/services"
)

// IncidentHandler handles incident-related requests.
type IncidentHandler struct {
	incidentService services.IncidentServicer
}

// NewIncidentHandler creates a new IncidentHandler.
func NewIncidentHandler(incidentService services.IncidentServicer) *IncidentHandler {
	return &IncidentHandler{incidentService: incidentService}
}

// ReportIncidentRequest represents the payload for reporting an incident.
type ReportIncidentRequest struct {
	Type         string     `json:"type" binding:"required,max=100"`
	Title        string     `json:"title" binding:"required,min=1,max=200"`
	Description  string     `json:"description" binding:"max=5000"`
	Priority     string     `json:"priority" binding:"omitempty,priority"`
	ResidentIDs  []string   `json:"resident_ids"`
	Location     string     `json:"location" binding:"max=200"`
	ReportedBy   string     `json:"reported_by" binding:"max=100"`
	ReportedAt   *time.Time `json:"reported_at"`
	FollowUpDate *time.Time `json:"follow_up_date"`
}

// UpdateIncidentStatusRequest represents the payload for a status change.
type UpdateIncidentStatusRequest struct {
	Status          string `json:"status" binding:"required,incident_status"`
	FollowUpActions string `json:"follow_up_actions" binding:"max=2000"`
}

// ReportIncident handles incident intake
// @Summary     Report an incident
// @Description Register a new incident report; it always starts open
// @Tags        incidents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ReportIncidentRequest true "Incident details"
// @Success     201 {object} models.Incident "Incident reported"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incidents [post]
func (h *IncidentHandler) ReportIncident(c *gin.Context) {
	var req ReportIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	incident := &models.Incident{
		Type:         req.Type,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     models.Priority(req.Priority),
		ResidentIDs:  req.ResidentIDs,
		Location:     req.Location,
		ReportedBy:   req.ReportedBy,
		FollowUpDate: req.FollowUpDate,
	}
	if req.ReportedAt != nil {
		incident.ReportedAt = *req.ReportedAt
	}

	created, err := h.incidentService.Report(getActor(c), incident)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"incident": created})
}

// ListIncidents handles the incident list view
// @Summary     List incidents
// @Description Get a filtered, paginated list of incidents, newest first
// @Tags        incidents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Search in title, description, location, and reporter"
// @Param       status query string false "Filter by status"
// @Param       priority query string false "Filter by priority"
// @Param       type query string false "Filter by incident type"
// @Param       from query string false "Only incidents reported on or after this date"
// @Param       to query string false "Only incidents reported on or before this date"
// @Param       sort query string false "Sort order (asc/desc by reported date)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Incident] "List of incidents"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /incidents [get]
func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	page, err := getPageRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	from, err := parseDateParam(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.incidentService.List(services.IncidentFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Type:     c.Query("type"),
		From:     from,
		To:       to,
		SortAsc:  c.Query("sort") == "asc",
	}, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetIncident handles retrieval of one incident
// @Summary     Get incident by ID
// @Description Get a specific incident report
// @Tags        incidents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Incident ID"
// @Success     200 {object} models.Incident "Incident details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Incident not found"
// @Router      /incidents/{id} [get]
func (h *IncidentHandler) GetIncident(c *gin.Context) {
	incident, err := h.incidentService.Get(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"incident": incident})
}

// UpdateIncidentStatus handles workflow transitions
// @Summary     Update incident status
// @Description Move an incident along its workflow; transitions only move forward
// @Tags        incidents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Incident ID"
// @Param       request body UpdateIncidentStatusRequest true "New status"
// @Success     200 {object} models.Incident "Updated incident"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Incident not found"
// @Failure     409 {object} ErrorResponse "Invalid transition"
// @Router      /incidents/{id}/status [patch]
func (h *IncidentHandler) UpdateIncidentStatus(c *gin.Context) {
	var req UpdateIncidentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	incident, err := h.incidentService.UpdateStatus(getActor(c), c.Param("id"), models.IncidentStatus(req.Status), req.FollowUpActions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"incident": incident})
}

// DeleteIncident handles incident deletion
// @Summary     Delete incident
// @Description Permanently remove an incident report
// @Tags        incidents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Incident ID"
// @Success     204 "Incident deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Incident not found"
// @Router      /incidents/{id} [delete]
func (h *IncidentHandler) DeleteIncident(c *gin.Context) {
	if err := h.incidentService.Delete(getActor(c), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetIncidentStats handles the incidents dashboard card
// @Summary     Incident statistics
// @Description Get incident totals, status/priority breakdowns, and recency buckets
// @Tags        incidents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.IncidentStats "Incident statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /incidents/stats [get]
func (h *IncidentHandler) GetIncidentStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.incidentService.Stats()})
}
