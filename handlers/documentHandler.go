package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"MediClaim/models"
	"MediClaim/repositories"
	"MediClaim/services"
	"MediClaim/utils"
)

type DocumentHandler struct {
	service *services.DocumentService
}

func NewDocumentHandler(service *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// UploadDocument accepts a multipart upload from a doctor against an
// appointment they are party to.
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	appointmentID, err := strconv.ParseUint(c.PostForm("appointment_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid appointment_id"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"error": "A file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(400, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	document, err := h.service.UploadForAppointment(c.Request.Context(), p, services.UploadDocumentRequest{
		AppointmentID: uint(appointmentID),
		Type:          models.DocumentType(c.PostForm("type")),
		OriginalName:  fileHeader.Filename,
		MimeType:      fileHeader.Header.Get("Content-Type"),
		Body:          file,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, document)
}

// CreateUploadURL registers a claim document and returns a pre-signed URL to
// PUT the binary to.
func (h *DocumentHandler) CreateUploadURL(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req services.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	resp, err := h.service.CreateUploadURL(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, resp)
}

// ReceiveContent accepts the binary on a pre-signed upload URL. The signature
// replaces the session here.
func (h *DocumentHandler) ReceiveContent(c *gin.Context) {
	key := c.Param("key")
	if err := h.service.VerifySignature(key, c.Query("expires"), c.Query("sig")); err != nil {
		respondError(c, err)
		return
	}

	document, err := h.service.ReceiveContent(c.Request.Context(), key, c.Request.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, document)
}

// ServeContent streams a document binary on a signed URL.
func (h *DocumentHandler) ServeContent(c *gin.Context) {
	key := c.Param("key")
	if err := h.service.VerifySignature(key, c.Query("expires"), c.Query("sig")); err != nil {
		respondError(c, err)
		return
	}

	document, err := h.service.GetByKey(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}

	reader, size, err := h.service.Open(document)
	if err != nil {
		respondError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "inline; filename=\""+document.OriginalName+"\"")
	c.DataFromReader(200, size, document.MimeType, reader, nil)
}

// GetDocument returns document metadata with a fresh signed view URL.
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	document, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.service.Authorize(c.Request.Context(), p, document); err != nil {
		respondError(c, err)
		return
	}

	document.URL = h.service.ViewURL(document)
	c.JSON(200, document)
}

// ViewDocument streams the binary inside an authenticated session.
func (h *DocumentHandler) ViewDocument(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	document, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.service.Authorize(c.Request.Context(), p, document); err != nil {
		respondError(c, err)
		return
	}

	reader, size, err := h.service.Open(document)
	if err != nil {
		respondError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "inline; filename=\""+document.OriginalName+"\"")
	c.DataFromReader(200, size, document.MimeType, reader, nil)
}

func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	filter := repositories.DocumentFilter{
		Page: utils.ParsePagination(c.Query("page"), c.Query("limit")),
	}
	if appointmentID, err := strconv.ParseUint(c.Query("appointment_id"), 10, 32); err == nil {
		filter.AppointmentID = uint(appointmentID)
	}
	if claimID, err := strconv.ParseUint(c.Query("claim_id"), 10, 32); err == nil {
		filter.ClaimID = uint(claimID)
	}

	documents, total, err := h.service.List(c.Request.Context(), p, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, utils.NewPagedResult(documents, filter.Page, total))
}
