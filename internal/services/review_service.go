package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshua-takyi/findmymess/internal/metrics"
	"github.com/joshua-takyi/findmymess/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService struct {
	reviewRepo models.ReviewRepo
}

func NewReviewService(reviewRepo models.ReviewRepo) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
	}
}

func (rs *ReviewService) GetReviewsByMessID(ctx context.Context, messID string) ([]*models.Review, error) {
	return rs.reviewRepo.FindByMessID(ctx, messID)
}

type CreateReviewInput struct {
	MessID         string `json:"messId" form:"messId"`
	UserIdentifier string `json:"userIdentifier" form:"userIdentifier"`
	Rating         int    `json:"rating" form:"rating"`
	Text           string `json:"text" form:"text"`
}

// CreateReview does not check that the mess exists; messId is a weak reference.
func (rs *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	messID, err := primitive.ObjectIDFromHex(in.MessID)
	if err != nil {
		metrics.RecordReview("invalid")
		return nil, fmt.Errorf("%w: messId %q is not a valid id", models.ErrValidation, in.MessID)
	}

	review := &models.Review{
		MessID:         messID,
		UserIdentifier: in.UserIdentifier,
		Rating:         in.Rating,
		Text:           in.Text,
	}
	review.Sanitize()

	if err := models.Validate.Struct(review); err != nil {
		metrics.RecordReview("invalid")
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	created, err := rs.reviewRepo.Create(ctx, review)
	if errors.Is(err, models.ErrDuplicateReview) {
		metrics.RecordReview("duplicate")
		return nil, err
	}
	if err != nil {
		metrics.RecordReview("error")
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	metrics.RecordReview("created")
	return created, nil
}
