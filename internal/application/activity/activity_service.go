package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/shared"
)

// Record appends one audit row through the given repository. The engines
// call this with a transaction-scoped repository as the last step of a
// successful mutation, so a rollback also discards the activity.
func Record(ctx context.Context, repo activity.Repository, tenantID uuid.UUID, action activity.Action, modelName string, objectRef []string) error {
	act, err := activity.NewActivity(tenantID, action, modelName, objectRef)
	if err != nil {
		return err
	}
	return repo.Append(ctx, act)
}

// ActivityResponse is the outward shape of one feed entry
type ActivityResponse struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	ModelName string    `json:"model_name"`
	ObjectRef []string  `json:"object_ref"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityService reads the per-tenant activity feed
type ActivityService struct {
	activities activity.Repository
}

// NewActivityService creates a new ActivityService
func NewActivityService(activities activity.Repository) *ActivityService {
	return &ActivityService{activities: activities}
}

// List returns the tenant's feed, newest first
func (s *ActivityService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ActivityResponse, int64, error) {
	if filter.PageSize <= 0 {
		filter = shared.NewFilter()
	}
	filter.OrderBy = "created_at"
	filter.OrderDir = "desc"

	rows, err := s.activities.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.activities.CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ActivityResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, ActivityResponse{
			ID:        row.ID,
			Action:    string(row.Action),
			ModelName: row.ModelName,
			ObjectRef: []string(row.ObjectRef),
			CreatedAt: row.CreatedAt,
		})
	}
	return out, total, nil
}
