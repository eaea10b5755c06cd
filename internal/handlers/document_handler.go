package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "refutree/internal/errors"
	"refutree/internal/models"
	"refutree/internal/services"
)

// DocumentHandler handles document metadata requests.
type DocumentHandler struct {
	documentService services.DocumentServicer
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService services.DocumentServicer) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// RegisterDocumentRequest represents the payload for registering a document.
type RegisterDocumentRequest struct {
	ResidentID string     `json:"resident_id"`
	Name       string     `json:"name" binding:"required,min=1,max=200"`
	Type       string     `json:"type" binding:"required,max=100"`
	ExpiryDate *time.Time `json:"expiry_date"`
	UploadedBy string     `json:"uploaded_by" binding:"max=100"`
	Notes      string     `json:"notes" binding:"max=2000"`
}

// UpdateDocumentStatusRequest represents the payload for a verification step.
type UpdateDocumentStatusRequest struct {
	Status string `json:"status" binding:"required,document_status"`
	Notes  string `json:"notes" binding:"max=2000"`
}

// RegisterDocument handles document registration
// @Summary     Register a document
// @Description Record metadata for an uploaded document; it always starts pending
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RegisterDocumentRequest true "Document details"
// @Success     201 {object} models.Document "Document registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Resident not found"
// @Router      /documents [post]
func (h *DocumentHandler) RegisterDocument(c *gin.Context) {
	var req RegisterDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	document, err := h.documentService.Register(getActor(c), &models.Document{
		ResidentID: req.ResidentID,
		Name:       req.Name,
		Type:       req.Type,
		ExpiryDate: req.ExpiryDate,
		UploadedBy: req.UploadedBy,
		Notes:      req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": document})
}

// ListDocuments handles the document list view
// @Summary     List documents
// @Description Get a filtered, paginated list of documents, newest uploads first
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Search in name, notes, and uploader"
// @Param       status query string false "Filter by status"
// @Param       type query string false "Filter by document type"
// @Param       resident_id query string false "Filter by resident"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Document] "List of documents"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	page, err := getPageRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.documentService.List(services.DocumentFilter{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		ResidentID: c.Query("resident_id"),
	}, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDocument handles retrieval of one document
// @Summary     Get document by ID
// @Description Get a specific document's metadata
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Document ID"
// @Success     200 {object} models.Document "Document details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Router      /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	document, err := h.documentService.Get(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": document})
}

// UpdateDocumentStatus handles verification steps
// @Summary     Update document status
// @Description Verify, reject, or expire a document
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Document ID"
// @Param       request body UpdateDocumentStatusRequest true "New status"
// @Success     200 {object} models.Document "Updated document"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Failure     409 {object} ErrorResponse "Invalid transition"
// @Router      /documents/{id}/status [patch]
func (h *DocumentHandler) UpdateDocumentStatus(c *gin.Context) {
	var req UpdateDocumentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	document, err := h.documentService.UpdateStatus(getActor(c), c.Param("id"), models.DocumentStatus(req.Status), req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": document})
}

// DeleteDocument handles document deletion
// @Summary     Delete document
// @Description Remove a document's metadata
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Document ID"
// @Success     204 "Document deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Router      /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	if err := h.documentService.Delete(getActor(c), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetDocumentStats handles the documents dashboard card
// @Summary     Document statistics
// @Description Get document totals, status breakdown, and expiring-soon count
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DocumentStats "Document statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /documents/stats [get]
func (h *DocumentHandler) GetDocumentStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.documentService.Stats()})
}
