package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReviewRepo interface {
	Repository[Review]
	FindByMessID(ctx context.Context, messID string) ([]*Review, error)
}

type MongoReviewRepo struct {
	*BaseRepo[Review, *Review]
}

var _ ReviewRepo = (*MongoReviewRepo)(nil)

func (mdb *MongodbRepo) ReviewRepo() (*MongoReviewRepo, error) {
	col, err := mdb.GetCollection(ReviewColName)
	if err != nil {
		return nil, err
	}
	return &MongoReviewRepo{BaseRepo: NewBaseRepo[Review](col)}, nil
}

// Create relies on the unique (messId, userIdentifier) index to reject a
// second review from the same user.
func (r *MongoReviewRepo) Create(ctx context.Context, review *Review) (*Review, error) {
	created, err := r.BaseRepo.Create(ctx, review)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateReview
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert review into database: %w", err)
	}
	return created, nil
}

func (r *MongoReviewRepo) FindByMessID(ctx context.Context, messID string) ([]*Review, error) {
	objectID, err := primitive.ObjectIDFromHex(messID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, messID)
	}
	return r.Find(ctx, bson.M{"messId": objectID})
}
