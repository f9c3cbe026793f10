package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-gallery/internal/application"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/apperror"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/response"
)

// PhotoHandler handles JSON API requests for photos.
type PhotoHandler struct {
	photos *application.PhotoService
	likes  *application.LikeService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photos *application.PhotoService, likes *application.LikeService) *PhotoHandler {
	return &PhotoHandler{photos: photos, likes: likes}
}

// RegisterRoutes registers all photo API routes.
func (h *PhotoHandler) RegisterRoutes(r *gin.RouterGroup) {
	photos := r.Group("/api/v1/photos")
	{
		photos.GET("", h.ListPhotos)
		photos.GET("/:id", h.GetPhoto)
		photos.POST("/:id/like", h.LikePhoto)
		photos.PATCH("/:id/like", h.LikePhoto)
	}
}

// ListPhotos handles GET /api/v1/photos.
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	result, err := h.photos.ListPhotos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetPhoto handles GET /api/v1/photos/:id.
func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	id, err := parsePhotoID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.photos.GetPhoto(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// LikePhoto handles POST|PATCH /api/v1/photos/:id/like.
func (h *PhotoHandler) LikePhoto(c *gin.Context) {
	id, err := parsePhotoID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.likes.IncrementLikes(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parsePhotoID reads the :id path parameter. Ids that cannot name a stored
// photo are reported as not found rather than as bad input.
func parsePhotoID(c *gin.Context) (uint64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NewNotFoundError("Photo", raw)
	}
	return id, nil
}
