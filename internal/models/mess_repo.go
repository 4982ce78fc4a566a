package models

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessRepo interface {
	Repository[Mess]
	FindByArea(ctx context.Context, area string, status MessStatus) ([]*Mess, error)
	FindByStatus(ctx context.Context, status MessStatus) ([]*Mess, error)
}

// AreaFilter matches area case-insensitively as a literal substring.
func AreaFilter(area string, status MessStatus) bson.M {
	return bson.M{
		"area":   primitive.Regex{Pattern: regexp.QuoteMeta(area), Options: "i"},
		"status": status,
	}
}

func StatusFilter(status MessStatus) bson.M {
	return bson.M{"status": status}
}

type MongoMessRepo struct {
	*BaseRepo[Mess, *Mess]
}

var _ MessRepo = (*MongoMessRepo)(nil)

func (mdb *MongodbRepo) MessRepo() (*MongoMessRepo, error) {
	col, err := mdb.GetCollection(MessColName)
	if err != nil {
		return nil, err
	}
	return &MongoMessRepo{BaseRepo: NewBaseRepo[Mess](col)}, nil
}

func (r *MongoMessRepo) FindByArea(ctx context.Context, area string, status MessStatus) ([]*Mess, error) {
	return r.Find(ctx, AreaFilter(area, status))
}

func (r *MongoMessRepo) FindByStatus(ctx context.Context, status MessStatus) ([]*Mess, error) {
	return r.Find(ctx, StatusFilter(status))
}
