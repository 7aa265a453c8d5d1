package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/application/txn"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/domain/trade"
)

// validateLineInputs rejects empty line lists and case-insensitive
// duplicate item names within one submission.
func validateLineInputs(lines []OrderedItemInput) error {
	if len(lines) == 0 {
		return shared.NewDomainError(shared.CodeValidation, "ordered_items cannot be empty")
	}

	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if line.Item == "" {
			return shared.NewDomainError(shared.CodeValidation, "Order line item name is required")
		}
		key := shared.NormalizeName(line.Item)
		if _, dup := seen[key]; dup {
			return shared.NewDomainError(shared.CodeValidation,
				fmt.Sprintf("Item %q appears more than once in ordered_items", line.Item))
		}
		seen[key] = struct{}{}
	}
	return nil
}

func parseDeliveryStatus(raw *string, fallback trade.DeliveryStatus) (trade.DeliveryStatus, error) {
	if raw == nil {
		return fallback, nil
	}
	status := trade.DeliveryStatus(*raw)
	if !status.IsValid() {
		return "", shared.NewDomainError(shared.CodeValidation,
			fmt.Sprintf("Invalid delivery status %q", *raw))
	}
	return status, nil
}

func parsePaymentStatus(raw *string, fallback trade.PaymentStatus) (trade.PaymentStatus, error) {
	if raw == nil {
		return fallback, nil
	}
	status := trade.PaymentStatus(*raw)
	if !status.IsValid() {
		return "", shared.NewDomainError(shared.CodeValidation,
			fmt.Sprintf("Invalid payment status %q", *raw))
	}
	return status, nil
}

func isNotFound(err error) bool {
	domainErr, ok := err.(*shared.DomainError)
	return ok && domainErr.Code == shared.CodeNotFound
}

// lockItems loads the given items FOR UPDATE. The repository returns them
// in ascending ID order, which keeps multi-item transactions deadlock-free.
func lockItems(ctx context.Context, repos txn.TransactionalRepositories, ids []uuid.UUID, tenantID uuid.UUID) (map[uuid.UUID]*inventory.Item, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*inventory.Item{}, nil
	}

	items, err := repos.ItemRepo().FindByIDsForUpdate(ctx, ids, tenantID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*inventory.Item, len(items))
	for idx := range items {
		byID[items[idx].ID] = &items[idx]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Order line item no longer exists")
		}
	}
	return byID, nil
}
