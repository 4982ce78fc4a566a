package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/joshua-takyi/findmymess/internal/metrics"
	"github.com/joshua-takyi/findmymess/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

type MessService struct {
	messRepo models.MessRepo
}

func NewMessService(messRepo models.MessRepo) *MessService {
	return &MessService{
		messRepo: messRepo,
	}
}

// GetAllMesses lists messes in status, approved ones when status is empty.
func (ms *MessService) GetAllMesses(ctx context.Context, status models.MessStatus) ([]*models.Mess, error) {
	return ms.messRepo.FindByStatus(ctx, models.ListingStatus(status))
}

func (ms *MessService) SearchMessesByArea(ctx context.Context, area string, status models.MessStatus) ([]*models.Mess, error) {
	return ms.messRepo.FindByArea(ctx, strings.TrimSpace(area), models.ListingStatus(status))
}

// GetPendingMesses is for the moderation queue; callers must be admin-gated.
func (ms *MessService) GetPendingMesses(ctx context.Context) ([]*models.Mess, error) {
	return ms.messRepo.FindByStatus(ctx, models.StatusPending)
}

func (ms *MessService) GetMessByID(ctx context.Context, id string) (*models.Mess, error) {
	return ms.messRepo.FindByID(ctx, id)
}

// CreateMess stores a new listing. Admin submissions skip moderation.
func (ms *MessService) CreateMess(ctx context.Context, mess *models.Mess, asAdmin bool) (*models.Mess, error) {
	if mess == nil {
		return nil, fmt.Errorf("%w: mess is nil", models.ErrValidation)
	}
	mess.Status = models.InitialStatus(asAdmin)

	if err := models.Validate.Struct(mess); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	created, err := ms.messRepo.Create(ctx, mess)
	if err != nil {
		return nil, fmt.Errorf("failed to create mess: %w", err)
	}
	metrics.RecordSubmission(string(created.Status))
	return created, nil
}

func (ms *MessService) UpdateMess(ctx context.Context, id string, input *models.MessInput) (*models.Mess, error) {
	if input == nil {
		input = &models.MessInput{}
	}
	if err := input.ValidateUpdate(); err != nil {
		return nil, err
	}
	updated, err := ms.messRepo.Update(ctx, id, input.Fields())
	if err != nil {
		return nil, fmt.Errorf("failed to update mess: %w", err)
	}
	return updated, nil
}

// UpdateMessStatus applies a moderation decision. It returns nil when no mess
// has the given id.
func (ms *MessService) UpdateMessStatus(ctx context.Context, id string, status models.MessStatus) (*models.Mess, error) {
	current, err := ms.messRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load mess: %w", err)
	}
	if current == nil {
		return nil, nil
	}
	if err := models.CanTransition(current.Status, status); err != nil {
		return nil, err
	}

	updated, err := ms.messRepo.Update(ctx, id, bson.M{"status": status})
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	if updated != nil {
		metrics.RecordStatusTransition(string(status))
	}
	return updated, nil
}

func (ms *MessService) DeleteMess(ctx context.Context, id string) (bool, error) {
	deleted, err := ms.messRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete mess: %w", err)
	}
	return deleted, nil
}
