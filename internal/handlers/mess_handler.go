package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/findmymess/internal/helpers"
	"github.com/joshua-takyi/findmymess/internal/middleware"
	"github.com/joshua-takyi/findmymess/internal/models"
	"github.com/joshua-takyi/findmymess/internal/services"
)

const maxFormMemory = 10 << 20

// BindMessInput reads a JSON, multipart or url-encoded mess payload and
// attaches a logo stored by the upload gate.
func BindMessInput(c *gin.Context, logger *slog.Logger) (*models.MessInput, error) {
	var (
		payload *helpers.MessPayload
		err     error
	)

	contentType := c.ContentType()
	switch {
	case contentType == gin.MIMEJSON:
		body, readErr := c.GetRawData()
		if readErr != nil {
			return nil, readErr
		}
		payload, err = helpers.DecodeMessJSON(body)
	case strings.HasPrefix(contentType, gin.MIMEMultipartPOSTForm):
		if c.Request.MultipartForm == nil {
			if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
				return nil, err
			}
		}
		payload, err = helpers.DecodeMessForm(c.Request.PostForm)
	default:
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
		payload, err = helpers.DecodeMessForm(c.Request.PostForm)
	}
	if err != nil {
		return nil, err
	}

	if payload.MenuErr != nil {
		requestID, _ := c.Get("request_id")
		logger.Warn("Ignoring malformed menu",
			"request_id", requestID,
			"path", c.Request.URL.Path,
			"error", payload.MenuErr,
		)
	}
	if logo := middleware.UploadedLogo(c); logo != nil {
		payload.Input.Logo = logo
	}
	return payload.Input, nil
}

func ListMesses(m *services.MessService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := models.ParseStatus(c.Query("status"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Invalid status", err.Error()))
			return
		}
		if status != "" && status != models.StatusApproved && !middleware.IsAdmin(c) {
			// The dashboard relies on this override; it stays open but is logged.
			logger.Warn("Non-approved listing requested without admin key",
				"status", status,
				"client_ip", c.ClientIP(),
			)
		}

		var messes []*models.Mess
		if area := strings.TrimSpace(c.Query("area")); area != "" {
			messes, err = m.SearchMessesByArea(c.Request.Context(), area, status)
		} else {
			messes, err = m.GetAllMesses(c.Request.Context(), status)
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch messes"))
			return
		}

		c.JSON(http.StatusOK, messes)
	}
}

func ListPendingMesses(m *services.MessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		messes, err := m.GetPendingMesses(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch pending messes"))
			return
		}
		c.JSON(http.StatusOK, messes)
	}
}

func GetMess(m *services.MessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		messID := helpers.StringTrim(c.Param("id"))
		if messID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Mess ID is required"))
			return
		}

		mess, err := m.GetMessByID(c.Request.Context(), messID)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch mess"))
			return
		}
		if mess == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Mess not found"))
			return
		}

		c.JSON(http.StatusOK, mess)
	}
}

func CreateMess(m *services.MessService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, err := BindMessInput(c, logger)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Failed to create mess", err.Error()))
			return
		}

		created, err := m.CreateMess(c.Request.Context(), input.ToMess(), middleware.IsAdmin(c))
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Failed to create mess", err.Error()))
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to create mess"))
			return
		}

		c.JSON(http.StatusCreated, created)
	}
}

func UpdateMess(m *services.MessService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		messID := helpers.StringTrim(c.Param("id"))
		if messID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Mess ID is required"))
			return
		}

		input, err := BindMessInput(c, logger)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Failed to update mess", err.Error()))
			return
		}

		updated, err := m.UpdateMess(c.Request.Context(), messID, input)
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Failed to update mess", err.Error()))
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to update mess"))
			return
		}
		if updated == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Mess not found"))
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func UpdateMessStatus(m *services.MessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		messID := helpers.StringTrim(c.Param("id"))
		if messID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Mess ID is required"))
			return
		}

		var req struct {
			Status models.MessStatus `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Invalid status", err.Error()))
			return
		}
		if !models.IsTransitionTarget(req.Status) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid status"))
			return
		}

		mess, err := m.UpdateMessStatus(c.Request.Context(), messID, req.Status)
		if errors.Is(err, models.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Invalid status", err.Error()))
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to update status"))
			return
		}
		if mess == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Mess not found"))
			return
		}

		c.JSON(http.StatusOK, mess)
	}
}

func DeleteMess(m *services.MessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		messID := helpers.StringTrim(c.Param("id"))
		if messID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Mess ID is required"))
			return
		}

		deleted, err := m.DeleteMess(c.Request.Context(), messID)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to delete mess"))
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, models.ErrorResponse("Mess not found"))
			return
		}

		c.Status(http.StatusNoContent)
	}
}
