package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/findmymess/internal/helpers"
	"github.com/joshua-takyi/findmymess/internal/models"
	"github.com/joshua-takyi/findmymess/internal/services"
)

func ListReviewsByMess(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		messID := helpers.StringTrim(c.Param("messId"))
		if messID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Mess ID is required"))
			return
		}

		reviews, err := r.GetReviewsByMessID(c.Request.Context(), messID)
		if errors.Is(err, models.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Invalid mess ID", err.Error()))
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch reviews"))
			return
		}

		c.JSON(http.StatusOK, reviews)
	}
}

func CreateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.CreateReviewInput
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Failed to create review", err.Error()))
			return
		}

		review, err := r.CreateReview(c.Request.Context(), req)
		if errors.Is(err, models.ErrValidation) || errors.Is(err, models.ErrDuplicateReview) {
			c.JSON(http.StatusBadRequest, models.ErrorWithDetails("Failed to create review", err.Error()))
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to create review"))
			return
		}

		c.JSON(http.StatusCreated, review)
	}
}
