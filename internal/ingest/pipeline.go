// Package ingest applies the type-specific effects of verified SES events.
// It sits strictly downstream of signature verification: nothing here is
// reachable for an envelope that failed the gate.
package ingest

import (
	"context"
	"fmt"

	"github.com/ignite/ses-ingest/internal/domain"
	"github.com/ignite/ses-ingest/internal/pkg/logger"
	"github.com/ignite/ses-ingest/internal/service/campaign"
	"github.com/ignite/ses-ingest/internal/service/suppression"
	"github.com/ignite/ses-ingest/internal/ses"
)

// Pipeline correlates verified events to campaigns and dispatches one
// idempotent mutation per event kind. Every effect tolerates redelivery:
// set unions skip existing members and suppression re-runs converge.
type Pipeline struct {
	campaigns    *campaign.Service
	suppressions *suppression.Service
}

// New creates an ingestion pipeline.
func New(campaigns *campaign.Service, suppressions *suppression.Service) *Pipeline {
	return &Pipeline{campaigns: campaigns, suppressions: suppressions}
}

// Process normalizes, correlates, and applies a single event. A nil return
// covers both applied effects and benign no-ops (missing message id,
// uncorrelated campaign, unknown kind, transient bounce); errors are
// reserved for store failures, which the caller surfaces as a 500 so the
// provider redelivers.
func (p *Pipeline) Process(ctx context.Context, event *ses.Event) error {
	kind := event.Kind()
	messageID := event.Mail.MessageID

	if messageID == "" {
		logger.Warn("ingest: event has no message id, skipping", "kind", string(kind))
		return nil
	}

	c, err := p.campaigns.Resolve(ctx, event.CampaignTag(), messageID)
	if err != nil {
		return fmt.Errorf("correlate event: %w", err)
	}
	if c == nil {
		// Already logged by the correlator; nothing to apply.
		return nil
	}

	recipients := event.Recipients()

	switch kind {
	case ses.KindDelivery:
		return p.track(ctx, c, domain.SetDelivered, recipients)
	case ses.KindOpen:
		return p.track(ctx, c, domain.SetOpened, recipients)
	case ses.KindClick:
		return p.track(ctx, c, domain.SetClicked, recipients)
	case ses.KindBounce:
		return p.applyBounce(ctx, c, event, recipients)
	case ses.KindComplaint:
		return p.applyComplaint(ctx, c, event, recipients)
	}

	logger.Warn("ingest: unrecognized event kind, skipping",
		"kind", string(kind), "message_id", messageID)
	return nil
}

func (p *Pipeline) track(ctx context.Context, c *domain.Campaign, set domain.EngagementSet, recipients []string) error {
	if err := p.campaigns.Track(ctx, c.ID, set, recipients); err != nil {
		return err
	}
	logger.Debug("ingest: engagement tracked",
		"campaign_id", c.ID, "set", string(set), "count", len(recipients))
	return nil
}

// applyBounce suppresses each recipient of a permanent bounce. Transient
// bounces never suppress: a full mailbox is not a dead address.
func (p *Pipeline) applyBounce(ctx context.Context, c *domain.Campaign, event *ses.Event, recipients []string) error {
	if event.Bounce == nil || event.Bounce.BounceType != ses.BounceTypePermanent {
		bounceType := ""
		if event.Bounce != nil {
			bounceType = event.Bounce.BounceType
		}
		logger.Info("ingest: non-permanent bounce, no suppression",
			"campaign_id", c.ID, "bounce_type", bounceType, "message_id", event.Mail.MessageID)
		return nil
	}

	for _, email := range recipients {
		detail := event.DiagnosticFor(email)
		if err := p.suppressions.Suppress(ctx, email, domain.ReasonHardBounce, detail, c.ID); err != nil {
			// Each recipient is independent; a partial run is recovered
			// by redelivery of the same event.
			return fmt.Errorf("suppress bounced recipient: %w", err)
		}
	}
	return nil
}

func (p *Pipeline) applyComplaint(ctx context.Context, c *domain.Campaign, event *ses.Event, recipients []string) error {
	detail := ""
	if event.Complaint != nil {
		detail = event.Complaint.ComplaintFeedbackType
	}

	for _, email := range recipients {
		if err := p.suppressions.Suppress(ctx, email, domain.ReasonComplaint, detail, c.ID); err != nil {
			return fmt.Errorf("suppress complaining recipient: %w", err)
		}
	}
	return nil
}
