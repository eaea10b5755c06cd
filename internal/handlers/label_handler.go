package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "refutree/internal/errors"
	"refutree/internal/models"
	"refutree/internal/services"
)

// LabelHandler handles label-related requests.
type LabelHandler struct {
	labelService services.LabelServicer
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService services.LabelServicer) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// LabelRequest represents the payload for creating or updating a label.
type LabelRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=50"`
	Color    string `json:"color" binding:"omitempty,hex_color"`
	Category string `json:"category" binding:"max=50"`
	Icon     string `json:"icon" binding:"max=50"`
}

func (r *LabelRequest) toModel() *models.Label {
	return &models.Label{
		Name:     r.Name,
		Color:    r.Color,
		Category: r.Category,
		Icon:     r.Icon,
	}
}

// CreateLabel handles label creation
// @Summary     Create a label
// @Description Create a user-defined label; names must be unique
// @Tags        labels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body LabelRequest true "Label details"
// @Success     201 {object} models.Label "Label created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate label name"
// @Router      /labels [post]
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	label, err := h.labelService.Create(getActor(c), req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"label": label})
}

// ListLabels handles the label list view
// @Summary     List labels
// @Description Get a filtered list of labels, sorted by name
// @Tags        labels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Search in name and category"
// @Param       category query string false "Filter by category"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Label] "List of labels"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /labels [get]
func (h *LabelHandler) ListLabels(c *gin.Context) {
	page, err := getPageRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.labelService.List(services.LabelFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLabel handles retrieval of one label
// @Summary     Get label by ID
// @Description Get a specific label definition
// @Tags        labels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Label ID"
// @Success     200 {object} models.Label "Label details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Label not found"
// @Router      /labels/{id} [get]
func (h *LabelHandler) GetLabel(c *gin.Context) {
	label, err := h.labelService.Get(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"label": label})
}

// UpdateLabel handles label updates
// @Summary     Update label
// @Description Update a user-defined label; system labels are immutable
// @Tags        labels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Label ID"
// @Param       request body LabelRequest true "Updated label details"
// @Success     200 {object} models.Label "Updated label"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "System label"
// @Failure     404 {object} ErrorResponse "Label not found"
// @Failure     409 {object} ErrorResponse "Duplicate label name"
// @Router      /labels/{id} [put]
func (h *LabelHandler) UpdateLabel(c *gin.Context) {
	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	label, err := h.labelService.Update(getActor(c), c.Param("id"), req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"label": label})
}

// DeleteLabel handles label deletion
// @Summary     Delete label
// @Description Delete a user-defined label; system labels are protected
// @Tags        labels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Label ID"
// @Success     204 "Label deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "System label"
// @Failure     404 {object} ErrorResponse "Label not found"
// @Router      /labels/{id} [delete]
func (h *LabelHandler) DeleteLabel(c *gin.Context) {
	if err := h.labelService.Delete(getActor(c), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
