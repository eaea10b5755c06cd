package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "refutree/internal/errors"
	"refutree/internal/services"
)

// maxBundleSize caps import uploads at 32 MiB.
const maxBundleSize = 32 << 20

// BackupHandler handles export and import of the full dataset.
type BackupHandler struct {
	backupService services.BackupServicer
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService services.BackupServicer) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// ExportBundle handles the backup download
// @Summary     Export all data
// @Description Download a versioned JSON bundle of every collection
// @Tags        backup
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {file} file "Bundle download"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backup/export [get]
func (h *BackupHandler) ExportBundle(c *gin.Context) {
	bundle, filename, err := h.backupService.Export(getActor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	payload, err := json.Marshal(bundle)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", payload)
}

// ImportBundle handles a backup restore
// @Summary     Import a data bundle
// @Description Validate and restore a previously exported bundle; the import is all-or-nothing
// @Tags        backup
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       bundle body object true "Exported bundle"
// @Success     200 {object} services.ImportResult "Import summary"
// @Failure     400 {object} ErrorResponse "Invalid bundle"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backup/import [post]
func (h *BackupHandler) ImportBundle(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBundleSize))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "could not read request body"))
		return
	}

	result, err := h.backupService.Import(getActor(c), raw)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
