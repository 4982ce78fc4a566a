package memstore

import (
	"context"
	"fmt"

	"github.com/joshua-takyi/findmymess/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessRepo struct {
	*Store[models.Mess, *models.Mess]
}

var _ models.MessRepo = (*MessRepo)(nil)

func NewMessRepo() *MessRepo {
	return &MessRepo{Store: New[models.Mess]()}
}

func (r *MessRepo) FindByArea(ctx context.Context, area string, status models.MessStatus) ([]*models.Mess, error) {
	return r.Find(ctx, models.AreaFilter(area, status))
}

func (r *MessRepo) FindByStatus(ctx context.Context, status models.MessStatus) ([]*models.Mess, error) {
	return r.Find(ctx, models.StatusFilter(status))
}

type ReviewRepo struct {
	*Store[models.Review, *models.Review]
}

var _ models.ReviewRepo = (*ReviewRepo)(nil)

func NewReviewRepo() *ReviewRepo {
	store := New[models.Review]().WithUnique(models.ErrDuplicateReview, "messId", "userIdentifier")
	return &ReviewRepo{Store: store}
}

func (r *ReviewRepo) FindByMessID(ctx context.Context, messID string) ([]*models.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(messID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidID, messID)
	}
	return r.Find(ctx, bson.M{"messId": objectID})
}
