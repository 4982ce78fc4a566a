package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/findmymess/internal/helpers"
	"github.com/joshua-takyi/findmymess/internal/metrics"
	"github.com/joshua-takyi/findmymess/internal/models"
)

const (
	LogoField   = "logo"
	ContextLogo = "uploaded_logo"

	maxUploadMemory = 10 << 20
)

// UploadLogo stores a multipart "logo" attachment in the blob store and
// leaves the resulting reference on the context for the handler.
func UploadLogo(store helpers.BlobStore, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}
		if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Invalid multipart form", err.Error()))
			c.Abort()
			return
		}

		files := c.Request.MultipartForm.File[LogoField]
		if len(files) == 0 {
			c.Next()
			return
		}
		if len(files) > 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Only one logo file may be uploaded"))
			c.Abort()
			return
		}

		header := files[0]
		if !helpers.IsAllowedLogo(header.Filename) {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Unsupported logo format", helpers.AllowedLogoFormats))
			c.Abort()
			return
		}
		if store == nil {
			logger.Error("Logo upload attempted without a configured blob store")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Internal server error: upload storage not configured"))
			c.Abort()
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Could not read logo file", err.Error()))
			c.Abort()
			return
		}
		defer file.Close()

		logo, err := store.Upload(c.Request.Context(), file, header.Filename)
		if err != nil {
			metrics.RecordUpload("error")
			requestID, _ := c.Get("request_id")
			logger.Error("Logo upload failed", "request_id", requestID, "error", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to upload logo"))
			c.Abort()
			return
		}
		metrics.RecordUpload("ok")

		c.Set(ContextLogo, logo)
		c.Next()
	}
}

// UploadedLogo returns the logo stored by UploadLogo, if any.
func UploadedLogo(c *gin.Context) *models.Logo {
	v, ok := c.Get(ContextLogo)
	if !ok {
		return nil
	}
	logo, _ := v.(*models.Logo)
	return logo
}
