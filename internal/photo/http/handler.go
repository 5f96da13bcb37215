package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookline-app/bookline-backend/internal/auth"
	"github.com/bookline-app/bookline-backend/internal/photo"
	"github.com/bookline-app/bookline-backend/internal/pkg/response"
	"github.com/bookline-app/bookline-backend/internal/user"
)

const maxPhotoSizeBytes = 10 << 20 // 10 MiB

type Handler struct {
	photoService photo.Service
}

func NewHandler(photoService photo.Service) *Handler {
	return &Handler{
		photoService: photoService,
	}
}

// Upload attaches a photo to a business profile.
func (h *Handler) Upload(c *gin.Context) {
	businessID := c.Param("id")
	actorID := auth.GetUserID(c)
	actorRole, err := user.ParseRole(auth.GetUserRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}
	if fileHeader.Size > maxPhotoSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo exceeds maximum size"})
		return
	}

	p, err := h.photoService.Upload(c.Request.Context(), businessID, fileHeader, actorID, actorRole)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPhotoResponse(p))
}

// ListByBusiness returns all photos for a business.
func (h *Handler) ListByBusiness(c *gin.Context) {
	businessID := c.Param("id")

	photos, err := h.photoService.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PhotoResponse, 0, len(photos))
	for i := range photos {
		items = append(items, toPhotoResponse(&photos[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Delete removes a photo and its stored files.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	actorID := auth.GetUserID(c)
	actorRole, err := user.ParseRole(auth.GetUserRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.photoService.Delete(c.Request.Context(), id, actorID, actorRole); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "photo deleted"})
}

// Serve streams the photo content by ID.
func (h *Handler) Serve(c *gin.Context) {
	id := c.Param("id")

	stream, p, err := h.photoService.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", p.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started, nothing useful to send
		return
	}
}

// ServeThumbnail streams the thumbnail by photo ID.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	id := c.Param("id")

	stream, p, err := h.photoService.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	// Thumbnails are always JPEG
	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}
