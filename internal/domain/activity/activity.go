package activity

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stocker/backend/internal/domain/shared"
)

// Action is the verb recorded on an activity row
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// IsValid checks if the action is known
func (a Action) IsValid() bool {
	return a == ActionCreated || a == ActionUpdated || a == ActionDeleted
}

// Activity is one append-only audit record written after a successful
// mutation, in the same transaction as the mutation itself.
type Activity struct {
	shared.BaseEntity
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Action    Action         `gorm:"type:varchar(20);not null"`
	ModelName string         `gorm:"type:varchar(50);not null"`
	ObjectRef pq.StringArray `gorm:"type:text[];not null"`
}

// TableName returns the table name for GORM
func (Activity) TableName() string {
	return "activities"
}

// NewActivity creates an activity record for the acting tenant.
// objectRef carries human-visible references such as item names or
// order reference IDs, in display order.
func NewActivity(tenantID uuid.UUID, action Action, modelName string, objectRef []string) (*Activity, error) {
	if !action.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Invalid activity action")
	}
	if modelName == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Activity model name cannot be empty")
	}
	if len(objectRef) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Activity object reference cannot be empty")
	}

	return &Activity{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Action:     action,
		ModelName:  modelName,
		ObjectRef:  pq.StringArray(objectRef),
	}, nil
}

// Repository appends and reads activity rows. No update or delete:
// the log is append-only.
type Repository interface {
	Append(ctx context.Context, activity *Activity) error
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Activity, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
