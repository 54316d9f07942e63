package campaign

import (
	"context"
	"fmt"
	"strings"

	"github.com/ignite/ses-ingest/internal/domain"
	"github.com/ignite/ses-ingest/internal/pkg/logger"
)

// Service implements campaign correlation and engagement tracking. All
// methods are safe for concurrent use if the underlying repository is.
type Service struct {
	repo Repository
}

// NewService creates a campaign service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve correlates an event to a campaign. The embedded campaign tag wins
// when it names a campaign that still exists; otherwise the message id is
// searched against every campaign's send batch. A (nil, nil) return means
// the event is not actionable — a benign miss, not an error.
func (s *Service) Resolve(ctx context.Context, campaignTag, messageID string) (*domain.Campaign, error) {
	if campaignTag != "" {
		c, err := s.repo.Get(ctx, campaignTag)
		if err == nil {
			return c, nil
		}
		if err != ErrNotFound {
			return nil, fmt.Errorf("resolve by tag: %w", err)
		}
		// Tagged campaign no longer exists; fall through to the
		// message-id search.
	}

	c, err := s.repo.FindByMessageID(ctx, messageID)
	if err == ErrNotFound {
		logger.Warn("campaign: event not correlated",
			"campaign_tag", campaignTag, "message_id", messageID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve by message id: %w", err)
	}
	return c, nil
}

// Track unions the recipients into one of the campaign's engagement sets.
func (s *Service) Track(ctx context.Context, campaignID string, set domain.EngagementSet, emails []string) error {
	if !set.Valid() {
		return fmt.Errorf("unknown engagement set %q", set)
	}

	normalized := make([]string, 0, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			normalized = append(normalized, e)
		}
	}
	if len(normalized) == 0 {
		return nil
	}

	if err := s.repo.AddRecipients(ctx, campaignID, set, normalized); err != nil {
		return fmt.Errorf("track %s: %w", set, err)
	}
	return nil
}
