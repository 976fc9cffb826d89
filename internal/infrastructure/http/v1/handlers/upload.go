package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"spottive/internal/core/apperror"
	"spottive/internal/imaging"
	"spottive/internal/infrastructure/assets"
	"spottive/internal/infrastructure/http/v1/dto"
)

// maxUploadBytes bounds accepted product photo uploads.
const maxUploadBytes = 10 << 20

// UploadHandler normalizes product photos and pushes them to the
// asset host.
type UploadHandler struct {
	assets *assets.Client
}

// NewUploadHandler creates the upload handler. A nil client means the
// asset host is not configured; uploads then fail with 503 while the
// rest of the API keeps working.
func NewUploadHandler(client *assets.Client) *UploadHandler {
	return &UploadHandler{assets: client}
}

// Upload serves POST /upload with a multipart "image" field.
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.assets == nil {
		fail(c, apperror.Unavailable("image uploads are not configured"))
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		fail(c, apperror.Validation("multipart field 'image' is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		fail(c, apperror.Internal("failed to read upload", err))
		return
	}
	if len(data) > maxUploadBytes {
		fail(c, apperror.Validation("image exceeds the 10MB limit"))
		return
	}

	normalized, err := imaging.Normalize(data)
	if err != nil {
		fail(c, err)
		return
	}

	asset, err := h.assets.Upload(c.Request.Context(), normalized.Data, header.Filename)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{
		URL:     asset.URL,
		AssetID: asset.ID,
		Width:   normalized.Width,
		Height:  normalized.Height,
	})
}
