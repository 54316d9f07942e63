package domain

import "time"

// SubscriberStatus enumerates the states a subscriber can be in.
type SubscriberStatus string

const (
	SubscriberConfirmed    SubscriberStatus = "confirmed"
	SubscriberUnconfirmed  SubscriberStatus = "unconfirmed"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
)

// Subscriber represents a single email recipient. Subscriber records are
// owned by the outbound-send subsystem; this pipeline only ever deletes
// them, as a side effect of suppression.
type Subscriber struct {
	ID           string           `json:"id" dynamodbav:"id"`
	Email        string           `json:"email" dynamodbav:"email"`
	FirstName    string           `json:"first_name,omitempty" dynamodbav:"first_name,omitempty"`
	LastName     string           `json:"last_name,omitempty" dynamodbav:"last_name,omitempty"`
	Status       SubscriberStatus `json:"status" dynamodbav:"status"`
	SubscribedAt time.Time        `json:"subscribed_at" dynamodbav:"subscribed_at"`
}
