package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-events-hub/portal-api/internal/service"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
	"github.com/campus-events-hub/portal-api/pkg/response"
)

// UploadHandler handles image uploads for event banners and winner photos.
type UploadHandler struct {
	service *service.UploadService
}

// NewUploadHandler constructs an upload handler.
func NewUploadHandler(svc *service.UploadService) *UploadHandler {
	return &UploadHandler{service: svc}
}

// Upload godoc
// @Summary Upload an image
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param bucket path string true "Bucket: event-images or winner"
// @Param file formData file true "Image file"
// @Success 201 {object} response.Envelope
// @Router /admin/uploads/{bucket} [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	bucket := c.Param("bucket")
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	result, err := h.service.Upload(bucket, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
