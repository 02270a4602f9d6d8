package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/L-YS-Ayoussef/EchoPost/internal/assets"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/middleware"
)

// ImageHandler handles image asset uploads. Uploading is a separate step from
// creating a post: the client uploads first, gets back a reference, and then
// submits that reference in the post body.
type ImageHandler struct {
	Images    assets.Store
	Lifecycle *assets.Lifecycle
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(images assets.Store, lifecycle *assets.Lifecycle) *ImageHandler {
	return &ImageHandler{Images: images, Lifecycle: lifecycle}
}

// UploadImage godoc
// @Summary      Upload a post image
// @Description  Stores an image asset and returns its reference. When oldPath names a replaced asset it is released.
// @Tags         feed
// @Accept       multipart/form-data
// @Produce      json
// @Param        image    formData  file    false  "Image file (png, jpg, jpeg)"
// @Param        oldPath  formData  string  false  "Reference of the asset being replaced"
// @Success      201      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Security     BearerAuth
// @Router       /post-image [put]
func (h *ImageHandler) UploadImage(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "No file provided!"})
		return
	}
	defer file.Close()

	ref, err := h.Images.Save(file, header.Filename)
	if err != nil {
		if errors.Is(err, assets.ErrUnsupportedType) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Only png, jpg and jpeg images are allowed."})
			return
		}
		log.Printf("[API] Error storing image: %v correlation_id=%s", err, correlationID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	if oldPath := c.PostForm("oldPath"); oldPath != "" {
		h.Lifecycle.Release(oldPath)
	}

	log.Printf("[API] Image stored: %s correlation_id=%s", ref, correlationID)
	c.JSON(http.StatusCreated, gin.H{"message": "File stored.", "filePath": ref})
}
