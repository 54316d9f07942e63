package domain

import "time"

// EngagementSet names one of the append-only recipient sets tracked per
// campaign. The underlying store models each as a string set, so re-adding
// an existing member is a no-op.
type EngagementSet string

const (
	SetDelivered EngagementSet = "delivered"
	SetOpened    EngagementSet = "opened"
	SetClicked   EngagementSet = "clicked"
)

// Valid reports whether s is one of the known engagement sets.
func (s EngagementSet) Valid() bool {
	return s == SetDelivered || s == SetOpened || s == SetClicked
}

// Campaign represents an outbound send batch whose engagement is tracked by
// the ingestion pipeline. MessageIDs holds every provider message id ever
// associated with the batch; the three recipient sets only grow and never
// contain duplicates.
type Campaign struct {
	ID         string    `json:"id" dynamodbav:"id"`
	Name       string    `json:"name" dynamodbav:"name"`
	MessageIDs []string  `json:"message_ids" dynamodbav:"message_ids,stringset,omitempty"`
	Delivered  []string  `json:"delivered" dynamodbav:"delivered,stringset,omitempty"`
	Opened     []string  `json:"opened" dynamodbav:"opened,stringset,omitempty"`
	Clicked    []string  `json:"clicked" dynamodbav:"clicked,stringset,omitempty"`
	CreatedAt  time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// HasMessageID reports whether the given provider message id belongs to this
// campaign's send batch.
func (c *Campaign) HasMessageID(messageID string) bool {
	for _, id := range c.MessageIDs {
		if id == messageID {
			return true
		}
	}
	return false
}

// Set returns the named engagement set.
func (c *Campaign) Set(s EngagementSet) []string {
	switch s {
	case SetDelivered:
		return c.Delivered
	case SetOpened:
		return c.Opened
	case SetClicked:
		return c.Clicked
	}
	return nil
}
