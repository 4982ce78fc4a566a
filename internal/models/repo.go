package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Validate = validator.New()

// Document is implemented by every entity the repositories persist.
type Document interface {
	GetID() primitive.ObjectID
	// BeforeCreate assigns the identifier and write timestamps.
	BeforeCreate(now time.Time)
	// AfterLoad normalizes a record on every read path.
	AfterLoad()
}

// DocumentPtr ties a value type to its pointer implementing Document.
type DocumentPtr[T any] interface {
	*T
	Document
}

// Repository is the CRUD contract shared by every entity type.
// Update and FindByID return nil without an error when no record matches.
type Repository[T any] interface {
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id string, fields bson.M) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
	Find(ctx context.Context, filter bson.M) ([]*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}

// EnsureIndexes creates the area search index and the review uniqueness index.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	messes, err := mdb.GetCollection(MessColName)
	if err != nil {
		return err
	}
	if _, err := messes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "area", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create area index: %w", err)
	}

	reviews, err := mdb.GetCollection(ReviewColName)
	if err != nil {
		return err
	}
	if _, err := reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "messId", Value: 1}, {Key: "userIdentifier", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create review uniqueness index: %w", err)
	}
	return nil
}

// BaseRepo implements Repository over a single MongoDB collection.
type BaseRepo[T any, PT DocumentPtr[T]] struct {
	col *mongo.Collection
}

func NewBaseRepo[T any, PT DocumentPtr[T]](col *mongo.Collection) *BaseRepo[T, PT] {
	return &BaseRepo[T, PT]{col: col}
}

func (r *BaseRepo[T, PT]) Create(ctx context.Context, item *T) (*T, error) {
	PT(item).BeforeCreate(time.Now().UTC())
	if _, err := r.col.InsertOne(ctx, item); err != nil {
		return nil, err
	}
	PT(item).AfterLoad()
	return item, nil
}

func (r *BaseRepo[T, PT]) Update(ctx context.Context, id string, fields bson.M) (*T, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var result T
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error updating document: %w", err)
	}
	PT(&result).AfterLoad()
	return &result, nil
}

func (r *BaseRepo[T, PT]) Delete(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, fmt.Errorf("error deleting document: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *BaseRepo[T, PT]) Find(ctx context.Context, filter bson.M) ([]*T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding documents: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*T{}
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("error decoding document: %w", err)
		}
		PT(&item).AfterLoad()
		items = append(items, &item)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return items, nil
}

func (r *BaseRepo[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var item T
	err = r.col.FindOne(ctx, bson.M{"_id": objectID}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding document by ID: %w", err)
	}
	PT(&item).AfterLoad()
	return &item, nil
}
