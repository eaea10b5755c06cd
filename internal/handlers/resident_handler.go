package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "refutree/internal/errors"
	"refutree/internal/models"
	"refutree/internal/services"
)

// ResidentHandler handles resident-related requests.
type ResidentHandler struct {
	residentService services.ResidentServicer
}

// NewResidentHandler creates a new ResidentHandler.
func NewResidentHandler(residentService services.ResidentServicer) *ResidentHandler {
	return &ResidentHandler{residentService: residentService}
}

// ResidentRequest represents the payload for creating or updating a resident.
type ResidentRequest struct {
	Name        string              `json:"name" binding:"required,min=1,max=200"`
	Nationality string              `json:"nationality" binding:"max=100"`
	Room        string              `json:"room" binding:"max=20"`
	Priority    string              `json:"priority" binding:"omitempty,priority"`
	CaseWorker  string              `json:"case_worker" binding:"max=100"`
	ArrivalDate *time.Time          `json:"arrival_date"`
	Contact     *models.ContactInfo `json:"contact"`
	Medical     *models.MedicalInfo `json:"medical"`
	LabelIDs    []string            `json:"label_ids"`
	Notes       string              `json:"notes" binding:"max=2000"`
}

func (r *ResidentRequest) toModel() *models.Resident {
	resident := &models.Resident{
		Name:        r.Name,
		Nationality: r.Nationality,
		Room:        r.Room,
		Priority:    models.Priority(r.Priority),
		CaseWorker:  r.CaseWorker,
		Contact:     r.Contact,
		Medical:     r.Medical,
		LabelIDs:    r.LabelIDs,
		Notes:       r.Notes,
	}
	if r.ArrivalDate != nil {
		resident.ArrivalDate = *r.ArrivalDate
	}
	return resident
}

// CreateResident handles resident intake
// @Summary     Create a resident
// @Description Register a new resident case record
// @Tags        residents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ResidentRequest true "Resident details"
// @Success     201 {object} models.Resident "Resident created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /residents [post]
func (h *ResidentHandler) CreateResident(c *gin.Context) {
	var req ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resident, err := h.residentService.Create(getActor(c), req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"resident": resident})
}

// ListResidents handles the resident list view
// @Summary     List residents
// @Description Get a filtered, paginated list of residents
// @Tags        residents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Search in name, nationality, room, and case worker"
// @Param       status query string false "Filter by status (active/archived/all)"
// @Param       priority query string false "Filter by priority"
// @Param       label_id query string false "Filter by label membership"
// @Param       sort query string false "Sort order (asc/desc by name)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Resident] "List of residents"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /residents [get]
func (h *ResidentHandler) ListResidents(c *gin.Context) {
	page, err := getPageRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.residentService.List(services.ResidentFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		LabelID:  c.Query("label_id"),
		SortDesc: c.Query("sort") == "desc",
	}, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetResident handles retrieval of one resident
// @Summary     Get resident by ID
// @Description Get a specific resident's case record
// @Tags        residents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Resident ID"
// @Success     200 {object} models.Resident "Resident details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Resident not found"
// @Router      /residents/{id} [get]
func (h *ResidentHandler) GetResident(c *gin.Context) {
	resident, err := h.residentService.Get(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resident": resident})
}

// UpdateResident handles resident updates
// @Summary     Update resident
// @Description Update a resident's editable fields
// @Tags        residents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Resident ID"
// @Param       request body ResidentRequest true "Updated resident details"
// @Success     200 {object} models.Resident "Updated resident"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Resident not found"
// @Router      /residents/{id} [put]
func (h *ResidentHandler) UpdateResident(c *gin.Context) {
	var req ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resident, err := h.residentService.Update(getActor(c), c.Param("id"), req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resident": resident})
}

// ArchiveResident handles resident archival
// @Summary     Archive resident
// @Description Mark a resident as departed; records are never hard-deleted
// @Tags        residents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Resident ID"
// @Success     200 {object} models.Resident "Archived resident"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Resident not found"
// @Router      /residents/{id}/archive [post]
func (h *ResidentHandler) ArchiveResident(c *gin.Context) {
	resident, err := h.residentService.Archive(getActor(c), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resident": resident})
}

// GetResidentStats handles the residents dashboard card
// @Summary     Resident statistics
// @Description Get resident totals broken down by status and priority
// @Tags        residents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.ResidentStats "Resident statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /residents/stats [get]
func (h *ResidentHandler) GetResidentStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.residentService.Stats()})
}
