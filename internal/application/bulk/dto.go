package bulk

import (
	"fmt"

	"github.com/google/uuid"
)

// DeleteRequest carries the identifiers of a bulk delete
type DeleteRequest struct {
	IDs []string `json:"ids"`
}

// BlockedRow identifies one row the pre-checks refused to delete
type BlockedRow struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Reason string    `json:"reason,omitempty"`
}

// Result is the outcome of one bulk delete batch. Blocked rows are keyed
// under BlockedKey in the response details (e.g. "linked_clients") so the
// caller can tell which constraint refused them.
type Result struct {
	Message      string       `json:"message"`
	DeletedCount int          `json:"deleted_count"`
	MissingIDs   []string     `json:"missing_ids,omitempty"`
	BlockedKey   string       `json:"-"`
	Blocked      []BlockedRow `json:"-"`
}

// FullyBlocked reports whether nothing could be deleted
func (r *Result) FullyBlocked() bool {
	return r.DeletedCount == 0 && len(r.Blocked) > 0
}

// Partial reports whether some rows were deleted and others blocked
func (r *Result) Partial() bool {
	return r.DeletedCount > 0 && len(r.Blocked) > 0
}

func buildResult(noun, plural string, deleted int, missing []string, blockedKey string, blocked []BlockedRow) *Result {
	label := plural
	if deleted == 1 {
		label = noun
	}

	var message string
	switch {
	case len(blocked) == 0:
		message = fmt.Sprintf("%d %s successfully deleted.", deleted, label)
	case deleted == 0:
		message = fmt.Sprintf("No %s deleted: %d blocked.", plural, len(blocked))
	default:
		message = fmt.Sprintf("%d %s successfully deleted, %d blocked.", deleted, label, len(blocked))
	}

	return &Result{
		Message:      message,
		DeletedCount: deleted,
		MissingIDs:   missing,
		BlockedKey:   blockedKey,
		Blocked:      blocked,
	}
}
