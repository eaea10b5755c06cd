package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"refutree/internal/services"
)

// AuditHandler handles audit trail requests.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// auditFilterFromQuery binds the shared audit query parameters.
func auditFilterFromQuery(c *gin.Context) (services.AuditFilter, error) {
	from, err := parseDateParam(c, "from")
	if err != nil {
		return services.AuditFilter{}, err
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		return services.AuditFilter{}, err
	}
	return services.AuditFilter{
		Search: c.Query("search"),
		User:   c.Query("user"),
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
	}, nil
}

// ListAuditEntries handles the audit trail view
// @Summary     List audit entries
// @Description Get a filtered, paginated view of the audit trail, newest first
// @Tags        audit
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Search in user, entity, and details"
// @Param       user query string false "Filter by user"
// @Param       action query string false "Filter by action"
// @Param       entity query string false "Filter by entity"
// @Param       from query string false "Only entries on or after this date"
// @Param       to query string false "Only entries on or before this date"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.AuditEntry] "Audit entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /audit [get]
func (h *AuditHandler) ListAuditEntries(c *gin.Context) {
	page, err := getPageRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	f, err := auditFilterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.auditService.Query(f, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportAuditCSV handles the audit trail download
// @Summary     Export audit trail as CSV
// @Description Download the filtered audit trail as a CSV file
// @Tags        audit
// @Accept      json
// @Produce     text/csv
// @Security    BearerAuth
// @Param       search query string false "Search in user, entity, and details"
// @Param       user query string false "Filter by user"
// @Param       action query string false "Filter by action"
// @Param       entity query string false "Filter by entity"
// @Param       from query string false "Only entries on or after this date"
// @Param       to query string false "Only entries on or before this date"
// @Success     200 {file} file "CSV download"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /audit/export [get]
func (h *AuditHandler) ExportAuditCSV(c *gin.Context) {
	f, err := auditFilterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, filename, err := h.auditService.ExportCSV(f)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
