package campaign

import (
	"context"

	"github.com/ignite/ses-ingest/internal/domain"
)

// Repository defines the data access contract for campaigns.
type Repository interface {
	// Get returns a campaign by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Campaign, error)

	// FindByMessageID returns the campaign whose message-id list contains
	// the given provider message id, or ErrNotFound.
	FindByMessageID(ctx context.Context, messageID string) (*domain.Campaign, error)

	// AddRecipients unions the addresses into the named engagement set.
	// Re-adding existing members is a no-op (set semantics).
	AddRecipients(ctx context.Context, id string, set domain.EngagementSet, emails []string) error
}

// Writer is the optional creation contract used by seed tooling and tests;
// the ingestion pipeline itself never creates campaigns.
type Writer interface {
	Create(ctx context.Context, c *domain.Campaign) error
}
