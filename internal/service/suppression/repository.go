package suppression

import (
	"context"

	"github.com/ignite/ses-ingest/internal/domain"
)

// Repository defines the data access contract for the suppression list.
type Repository interface {
	// Upsert writes a suppression entry keyed by email address. If the
	// address is already suppressed, reason and detail are refreshed.
	Upsert(ctx context.Context, s *domain.Suppression) error

	// Get returns the entry for an address, or ErrNotFound.
	Get(ctx context.Context, email string) (*domain.Suppression, error)

	// List returns suppression entries matching the filter.
	List(ctx context.Context, filter ListFilter) ([]domain.Suppression, int, error)

	// Count returns the total number of suppressed addresses.
	Count(ctx context.Context) (int, error)
}

// SubscriberRepository is the narrow view of the externally-owned
// subscriber store this pipeline needs: delete, and nothing else.
type SubscriberRepository interface {
	// DeleteByEmail removes the subscriber record for an address.
	// Deleting an absent record is a no-op, not an error.
	DeleteByEmail(ctx context.Context, email string) error
}

// AccountSuppressor mirrors an entry into the provider's account-level
// suppression list. Optional: a nil suppressor disables mirroring.
type AccountSuppressor interface {
	Suppress(ctx context.Context, email string, reason domain.SuppressionReason) error
}

// ListFilter controls pagination and filtering for suppression lists.
type ListFilter struct {
	Reason string
	Limit  int
	Offset int
}
