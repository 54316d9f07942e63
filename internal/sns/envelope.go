// Package sns implements parsing and cryptographic verification of the
// notification envelopes AWS SNS delivers to HTTP endpoints. Every
// destructive effect in the ingestion pipeline sits behind Verifier, so the
// code here is deliberately conservative: parse failures and verification
// errors resolve to explicit rejections, never panics.
package sns

import (
	"encoding/json"
	"fmt"
)

// Envelope kinds as declared in the Type field of the outer payload.
const (
	TypeNotification             = "Notification"
	TypeSubscriptionConfirmation = "SubscriptionConfirmation"
	TypeUnsubscribeConfirmation  = "UnsubscribeConfirmation"
)

// Envelope is the outer, provider-signed JSON wrapper delivered to the
// webhook. Field names match the SNS wire format exactly.
type Envelope struct {
	Type             string `json:"Type"`
	MessageId        string `json:"MessageId"`
	TopicArn         string `json:"TopicArn"`
	Subject          string `json:"Subject,omitempty"`
	Message          string `json:"Message"`
	Timestamp        string `json:"Timestamp"`
	SignatureVersion string `json:"SignatureVersion"`
	Signature        string `json:"Signature"`
	SigningCertURL   string `json:"SigningCertURL"`
	SubscribeURL     string `json:"SubscribeURL,omitempty"`
	Token            string `json:"Token,omitempty"`
	UnsubscribeURL   string `json:"UnsubscribeURL,omitempty"`
}

// ParseEnvelope decodes the raw webhook body into an Envelope.
func ParseEnvelope(body []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("parse sns envelope: %w", err)
	}
	return &e, nil
}

// IsNotification reports whether the envelope carries an event payload.
func (e *Envelope) IsNotification() bool { return e.Type == TypeNotification }

// IsControl reports whether the envelope is a subscription-lifecycle
// control message rather than a data notification. Control messages carry
// a one-time confirmation URL, not destructive data.
func (e *Envelope) IsControl() bool {
	return e.Type == TypeSubscriptionConfirmation || e.Type == TypeUnsubscribeConfirmation
}
