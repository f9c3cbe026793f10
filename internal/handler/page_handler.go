package handler

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-gallery/internal/application"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/apperror"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/response"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded HTML views.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.tmpl")
}

// PageHandler serves the server-rendered gallery pages.
type PageHandler struct {
	photos *application.PhotoService
	likes  *application.LikeService
	logger *zap.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(photos *application.PhotoService, likes *application.LikeService, logger *zap.Logger) *PageHandler {
	return &PageHandler{photos: photos, likes: likes, logger: logger}
}

// RegisterRoutes registers the HTML routes. The engine must have the
// templates from Templates installed.
func (h *PageHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/photos") })

	photos := r.Group("/photos")
	{
		photos.GET("", h.Index)
		photos.GET("/:id", h.Show)
		photos.PATCH("/:id", h.Like)
		photos.PUT("/:id", h.Like)
		photos.POST("/:id/like", h.Like)
	}
}

// Index renders every photo.
func (h *PageHandler) Index(c *gin.Context) {
	photos, err := h.photos.ListPhotos(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Title":  "Photos",
		"Photos": photos,
	})
}

// Show renders a single photo.
func (h *PageHandler) Show(c *gin.Context) {
	id, err := parsePhotoID(c)
	if err != nil {
		h.renderError(c, err)
		return
	}

	photo, err := h.photos.GetPhoto(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "show.tmpl", gin.H{
		"Title": photo.Name,
		"Photo": photo,
	})
}

// Like records one like and redirects back to the photo page.
func (h *PageHandler) Like(c *gin.Context) {
	id, err := parsePhotoID(c)
	if err != nil {
		h.renderError(c, err)
		return
	}

	photo, err := h.likes.IncrementLikes(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/photos/"+strconv.FormatUint(photo.ID, 10))
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	_ = c.Error(err)

	kind := apperror.KindOf(err)
	status := response.StatusFor(kind)
	message := "Something went wrong."
	if kind == apperror.KindNotFound {
		message = "The photo you were looking for does not exist."
	} else {
		h.logger.Error("page request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	c.HTML(status, "error.tmpl", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
	c.Abort()
}
