package handlers

import (
	"fmt"
	"net/http"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/interfaces/http/middleware"
	"brickvest.backend/internal/interfaces/http/response"
	"brickvest.backend/internal/usecases"
	"brickvest.backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// defaultMaxUploadBytes caps uploads when no limit is configured
const defaultMaxUploadBytes = 10 << 20

// DocumentHandler handles document endpoints
type DocumentHandler struct {
	documentUsecase *usecases.DocumentUsecase
	maxUploadBytes  int64
}

// NewDocumentHandler creates a new document handler. maxUploadBytes comes
// from MAX_UPLOAD_BYTES; zero or negative falls back to the default.
func NewDocumentHandler(documentUsecase *usecases.DocumentUsecase, maxUploadBytes int64) *DocumentHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &DocumentHandler{documentUsecase: documentUsecase, maxUploadBytes: maxUploadBytes}
}

// Upload stores a new document
// POST /api/documents
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("file is required"))
		return
	}
	if fh.Size > h.maxUploadBytes {
		response.Error(c, domainerrors.BadRequest(fmt.Sprintf("file exceeds the %d byte upload limit", h.maxUploadBytes)))
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("unreadable upload"))
		return
	}
	defer f.Close()

	doc, err := h.documentUsecase.Upload(c.Request.Context(), userID, usecases.DocumentUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Description: c.PostForm("description"),
		Body:        f,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, doc)
}

// Get returns one accessible document with a download URL
// GET /api/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	userID, role, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, err := h.documentUsecase.Get(c.Request.Context(), userID, role, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, doc)
}

// List returns the documents the requester can access
// GET /api/documents
func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	q := utils.ParseListQuery(c.Request.URL.Query())
	docs, total, err := h.documentUsecase.List(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, docs, total, q.Page, q.Limit)
}

// Update edits document metadata
// PUT /api/documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	userID, role, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	doc, err := h.documentUsecase.Update(c.Request.Context(), userID, role, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, doc)
}

// Delete removes a document
// DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, role, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.documentUsecase.Delete(c.Request.Context(), userID, role, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "document deleted")
}

// Share grants another user access to a document
// POST /api/documents/:id/share
func (h *DocumentHandler) Share(c *gin.Context) {
	userID, role, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.ShareDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	share, err := h.documentUsecase.Share(c.Request.Context(), userID, role, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, share)
}

// SignedURL returns a presigned download URL
// GET /api/documents/:id/signed-url
func (h *DocumentHandler) SignedURL(c *gin.Context) {
	userID, role, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	url, err := h.documentUsecase.SignedURL(c.Request.Context(), userID, role, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"url": url})
}
