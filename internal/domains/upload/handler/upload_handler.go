package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentora-backend/internal/domains/upload/service"
	"rentora-backend/internal/shared/response"
)

const maxImagesPerRequest = 10

type UploadHandler struct {
	service *service.UploadService
}

func NewUploadHandler(service *service.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// UploadImage handles POST /upload/image with a single "image" form file.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}

	data, err := readFormFile(fileHeader)
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}

	img, err := h.service.UploadImage(c.Request.Context(), data)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, img)
}

// UploadImages handles POST /upload/images with repeated "images" form files.
func (h *UploadHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "multipart form is required")
		return
	}

	fileHeaders := form.File["images"]
	if len(fileHeaders) == 0 {
		response.BadRequest(c, "at least one image file is required")
		return
	}
	if len(fileHeaders) > maxImagesPerRequest {
		response.BadRequest(c, "too many files in one request")
		return
	}

	files := make([][]byte, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		data, readErr := readFormFile(fh)
		if readErr != nil {
			response.BadRequest(c, "cannot read uploaded file")
			return
		}
		files = append(files, data)
	}

	images, err := h.service.UploadImages(c.Request.Context(), files)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, images)
}

// DeleteImage handles DELETE /upload/:id.
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}

	if err := h.service.DeleteImage(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
