package attendance

import (
	"context"
)

// EventRepository defines data access methods for attendance events.
// All lookups include companyID to prevent cross-company data access.
type EventRepository interface {
	// Create stores a new event and returns it with generated fields populated
	Create(ctx context.Context, event Event) (Event, error)

	// GetByID retrieves an event by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Event, error)

	// ListByUser returns every event of a user, unsorted
	ListByUser(ctx context.Context, userID string, companyID string) ([]Event, error)

	// UpdateReview persists approval status and reviewer fields. It returns
	// ErrAlreadyReviewed when the stored event is no longer pending.
	UpdateReview(ctx context.Context, event Event) error
}
