package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"refutree/internal/services"
)

// ReportHandler handles management report requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetManagementReport handles report generation
// @Summary     Generate management report
// @Description Build the management report from the current collection statistics
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "Reporting period start (labeling only)"
// @Param       to query string false "Reporting period end (labeling only)"
// @Success     200 {object} services.ManagementReport "Management report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/management [get]
func (h *ReportHandler) GetManagementReport(c *gin.Context) {
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

	report := h.reportService.Management(getActor(c), from, to)
	c.JSON(http.StatusOK, gin.H{"report": report})
}
