package domain

import "time"

// SuppressionReason enumerates why an email was suppressed. Only hard
// failures reach the suppression list: soft bounces are deliberately
// excluded so a full mailbox never permanently loses a recipient.
type SuppressionReason string

const (
	ReasonHardBounce SuppressionReason = "hard_bounce"
	ReasonComplaint  SuppressionReason = "complaint"
)

// Suppression represents a single entry in the suppression list. Existence
// of an entry means the address must never again be used as a send target
// anywhere in the system.
type Suppression struct {
	ID         string            `json:"id" dynamodbav:"id"`
	Email      string            `json:"email" dynamodbav:"email"`
	Reason     SuppressionReason `json:"reason" dynamodbav:"reason"`
	Detail     string            `json:"detail,omitempty" dynamodbav:"detail,omitempty"`
	CampaignID string            `json:"campaign_id,omitempty" dynamodbav:"campaign_id,omitempty"`
	CreatedAt  time.Time         `json:"created_at" dynamodbav:"created_at"`
}
