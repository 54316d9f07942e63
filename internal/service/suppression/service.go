package suppression

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/ses-ingest/internal/domain"
	"github.com/ignite/ses-ingest/internal/pkg/logger"
)

// Service implements suppression business logic. It is safe for concurrent
// use if the underlying repositories are.
type Service struct {
	repo        Repository
	subscribers SubscriberRepository
	account     AccountSuppressor
}

// NewService creates a suppression service. account may be nil to disable
// provider-level mirroring.
func NewService(repo Repository, subscribers SubscriberRepository, account AccountSuppressor) *Service {
	return &Service{repo: repo, subscribers: subscribers, account: account}
}

// Suppress upserts a suppression entry for the address and deletes any
// subscriber record carrying it. Every step is attempted even if a prior
// run completed some of them: the upsert refreshes the entry and the delete
// is a no-op when the record is already gone.
func (s *Service) Suppress(ctx context.Context, email string, reason domain.SuppressionReason, detail, campaignID string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required")
	}

	entry := &domain.Suppression{
		ID:         uuid.New().String(),
		Email:      email,
		Reason:     reason,
		Detail:     detail,
		CampaignID: campaignID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("upsert suppression: %w", err)
	}

	if err := s.subscribers.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}

	if s.account != nil {
		// Mirror failures are logged, not fatal: the local entry already
		// blocks sends, and redelivery retries the mirror.
		if err := s.account.Suppress(ctx, email, reason); err != nil {
			logger.Error("suppression: account-level mirror failed",
				"email", email, "reason", string(reason), "error", err)
		}
	}

	logger.Info("suppression: address suppressed",
		"email", email, "reason", string(reason), "campaign_id", campaignID)
	return nil
}

// IsSuppressed checks whether an address is on the suppression list.
func (s *Service) IsSuppressed(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.Get(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns suppression entries matching the given filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]domain.Suppression, int, error) {
	return s.repo.List(ctx, filter)
}

// Count returns the total number of suppressed addresses.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
