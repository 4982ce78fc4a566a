package container

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/findmymess/internal/config"
	"github.com/joshua-takyi/findmymess/internal/connect"
	"github.com/joshua-takyi/findmymess/internal/handlers"
	"github.com/joshua-takyi/findmymess/internal/helpers"
	"github.com/joshua-takyi/findmymess/internal/memstore"
	"github.com/joshua-takyi/findmymess/internal/middleware"
	"github.com/joshua-takyi/findmymess/internal/models"
	"github.com/joshua-takyi/findmymess/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config
	// BlobStore is nil when Cloudinary is not configured.
	BlobStore     helpers.BlobStore
	MongoDBClient *mongo.Client
	Store         handlers.Pinger
	MessService   *services.MessService
	ReviewService *services.ReviewService
	RateLimiter   *middleware.RateLimiter
}

// NewContainer wires repositories for the configured storage driver.
// mongoDBClient is ignored by the memory driver.
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	blobStore helpers.BlobStore,
) (*Container, error) {
	var (
		messRepo   models.MessRepo
		reviewRepo models.ReviewRepo
		store      handlers.Pinger
	)

	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		messRepo = memstore.NewMessRepo()
		reviewRepo = memstore.NewReviewRepo()
	default:
		mdb := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mdb.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		mr, err := mdb.MessRepo()
		if err != nil {
			return nil, fmt.Errorf("failed to open mess collection: %w", err)
		}
		rr, err := mdb.ReviewRepo()
		if err != nil {
			return nil, fmt.Errorf("failed to open review collection: %w", err)
		}
		messRepo, reviewRepo = mr, rr
		store = connect.MongoPinger{Client: mongoDBClient}
	}

	return &Container{
		Logger:        logger,
		Config:        cfg,
		BlobStore:     blobStore,
		MongoDBClient: mongoDBClient,
		Store:         store,
		MessService:   services.NewMessService(messRepo),
		ReviewService: services.NewReviewService(reviewRepo),
		RateLimiter:   middleware.NewRateLimiter(cfg.SubmitRatePerMinute, cfg.SubmitRateBurst, logger),
	}, nil
}
