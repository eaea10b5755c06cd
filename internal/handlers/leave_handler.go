package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "refutree/internal/errors"
	"refutree/internal/models"
	"refutree/internal/services"
)

// LeaveHandler handles leave-request-related requests.
type LeaveHandler struct {
	leaveService services.LeaveServicer
}

// NewLeaveHandler creates a new LeaveHandler.
func NewLeaveHandler(leaveService services.LeaveServicer) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// SubmitLeaveRequest represents the payload for filing a leave request.
type SubmitLeaveRequest struct {
	ResidentID  string    `json:"resident_id" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Destination string    `json:"destination" binding:"max=200"`
	Reason      string    `json:"reason" binding:"max=1000"`
}

// DecideLeaveRequest represents the payload for approving or rejecting.
type DecideLeaveRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// SubmitLeave handles leave request intake
// @Summary     Submit a leave request
// @Description File a leave request for a resident; it always starts pending
// @Tags        leave-requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SubmitLeaveRequest true "Leave request details"
// @Success     201 {object} models.LeaveRequest "Leave request submitted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Resident not found"
// @Router      /leave-requests [post]
func (h *LeaveHandler) SubmitLeave(c *gin.Context) {
	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	request, err := h.leaveService.Submit(getActor(c), &models.LeaveRequest{
		ResidentID:  req.ResidentID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Destination: req.Destination,
		Reason:      req.Reason,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"leave_request": request})
}

// ListLeaveRequests handles the leave request list view
// @Summary     List leave requests
// @Description Get a filtered, paginated list of leave requests, newest first
// @Tags        leave-requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Search in resident name, destination, and reason"
// @Param       status query string false "Filter by status"
// @Param       resident_id query string false "Filter by resident"
// @Param       from query string false "Only requests starting on or after this date"
// @Param       to query string false "Only requests starting on or before this date"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.LeaveRequest] "List of leave requests"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /leave-requests [get]
func (h *LeaveHandler) ListLeaveRequests(c *gin.Context) {
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

	result, err := h.leaveService.List(services.LeaveFilter{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		ResidentID: c.Query("resident_id"),
		From:       from,
		To:         to,
	}, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLeaveRequest handles retrieval of one leave request
// @Summary     Get leave request by ID
// @Description Get a specific leave request
// @Tags        leave-requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Leave request ID"
// @Success     200 {object} models.LeaveRequest "Leave request details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Leave request not found"
// @Router      /leave-requests/{id} [get]
func (h *LeaveHandler) GetLeaveRequest(c *gin.Context) {
	request, err := h.leaveService.Get(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leave_request": request})
}

// ApproveLeave handles granting a leave request
// @Summary     Approve leave request
// @Description Grant a pending leave request; the decision is final
// @Tags        leave-requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Leave request ID"
// @Param       request body DecideLeaveRequest false "Decision notes"
// @Success     200 {object} models.LeaveRequest "Approved leave request"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Leave request not found"
// @Failure     409 {object} ErrorResponse "Request already decided"
// @Router      /leave-requests/{id}/approve [post]
func (h *LeaveHandler) ApproveLeave(c *gin.Context) {
	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	request, err := h.leaveService.Approve(getActor(c), c.Param("id"), req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leave_request": request})
}

// RejectLeave handles denying a leave request
// @Summary     Reject leave request
// @Description Deny a pending leave request; the decision is final
// @Tags        leave-requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Leave request ID"
// @Param       request body DecideLeaveRequest false "Decision notes"
// @Success     200 {object} models.LeaveRequest "Rejected leave request"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Leave request not found"
// @Failure     409 {object} ErrorResponse "Request already decided"
// @Router      /leave-requests/{id}/reject [post]
func (h *LeaveHandler) RejectLeave(c *gin.Context) {
	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	request, err := h.leaveService.Reject(getActor(c), c.Param("id"), req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leave_request": request})
}

// GetLeaveStats handles the leave requests dashboard card
// @Summary     Leave request statistics
// @Description Get leave request counts per status
// @Tags        leave-requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int "Counts per status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /leave-requests/stats [get]
func (h *LeaveHandler) GetLeaveStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.leaveService.Stats()})
}
