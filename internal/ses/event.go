// Package ses models the event payloads SES publishes through SNS and the
// small slice of the SES API the pipeline calls back into.
package ses

import (
	"encoding/json"
	"fmt"
)

// EventKind is the tagged discriminant of a parsed event. Parsing always
// yields a definite kind: anything unrecognized maps to KindUnknown rather
// than a partially-typed blob.
type EventKind string

const (
	KindDelivery  EventKind = "Delivery"
	KindOpen      EventKind = "Open"
	KindClick     EventKind = "Click"
	KindBounce    EventKind = "Bounce"
	KindComplaint EventKind = "Complaint"
	KindUnknown   EventKind = "Unknown"
)

// Bounce subtypes as reported by SES.
const (
	BounceTypePermanent = "Permanent"
	BounceTypeTransient = "Transient"
)

// Mail describes the original outbound message an event refers to.
type Mail struct {
	MessageID   string              `json:"messageId"`
	Source      string              `json:"source,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Destination []string            `json:"destination"`
	Tags        map[string][]string `json:"tags,omitempty"`
}

// BouncedRecipient is one entry of a bounce report.
type BouncedRecipient struct {
	EmailAddress   string `json:"emailAddress"`
	Action         string `json:"action,omitempty"`
	Status         string `json:"status,omitempty"`
	DiagnosticCode string `json:"diagnosticCode,omitempty"`
}

// Bounce carries the bounce-specific portion of an event.
type Bounce struct {
	BounceType        string             `json:"bounceType"`
	BounceSubType     string             `json:"bounceSubType,omitempty"`
	BouncedRecipients []BouncedRecipient `json:"bouncedRecipients"`
}

// ComplainedRecipient is one entry of a complaint report.
type ComplainedRecipient struct {
	EmailAddress string `json:"emailAddress"`
}

// Complaint carries the complaint-specific portion of an event.
type Complaint struct {
	ComplaintFeedbackType string                `json:"complaintFeedbackType,omitempty"`
	ComplainedRecipients  []ComplainedRecipient `json:"complainedRecipients,omitempty"`
}

// Click carries the click-specific portion of an event.
type Click struct {
	Link      string `json:"link,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
}

// Open carries the open-specific portion of an event.
type Open struct {
	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// Event is the inner payload JSON-encoded inside a verified notification's
// Message field. SES has published both "eventType" (event publishing) and
// "notificationType" (feedback notifications); both are accepted.
type Event struct {
	EventType        string     `json:"eventType,omitempty"`
	NotificationType string     `json:"notificationType,omitempty"`
	Mail             Mail       `json:"mail"`
	Bounce           *Bounce    `json:"bounce,omitempty"`
	Complaint        *Complaint `json:"complaint,omitempty"`
	Click            *Click     `json:"click,omitempty"`
	Open             *Open      `json:"open,omitempty"`
}

// ParseEvent decodes the inner event payload.
func ParseEvent(message []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(message, &e); err != nil {
		return nil, fmt.Errorf("parse ses event: %w", err)
	}
	return &e, nil
}

// Kind returns the tagged event kind.
func (e *Event) Kind() EventKind {
	t := e.EventType
	if t == "" {
		t = e.NotificationType
	}
	switch t {
	case "Delivery":
		return KindDelivery
	case "Open":
		return KindOpen
	case "Click":
		return KindClick
	case "Bounce":
		return KindBounce
	case "Complaint":
		return KindComplaint
	}
	return KindUnknown
}

// CampaignTag returns the campaign id embedded in the message tags, or ""
// when the send was not tagged.
func (e *Event) CampaignTag() string {
	if vals, ok := e.Mail.Tags["campaign_id"]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Recipients returns the addresses an event applies to. Bounce and
// complaint reports name their own recipients; when those lists are empty
// the mail destination is the authoritative fallback.
func (e *Event) Recipients() []string {
	switch e.Kind() {
	case KindBounce:
		if e.Bounce != nil && len(e.Bounce.BouncedRecipients) > 0 {
			out := make([]string, 0, len(e.Bounce.BouncedRecipients))
			for _, r := range e.Bounce.BouncedRecipients {
				if r.EmailAddress != "" {
					out = append(out, r.EmailAddress)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	case KindComplaint:
		if e.Complaint != nil && len(e.Complaint.ComplainedRecipients) > 0 {
			out := make([]string, 0, len(e.Complaint.ComplainedRecipients))
			for _, r := range e.Complaint.ComplainedRecipients {
				if r.EmailAddress != "" {
					out = append(out, r.EmailAddress)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return e.Mail.Destination
}

// DiagnosticFor returns the diagnostic code reported for a bounced address,
// or "" if none was reported.
func (e *Event) DiagnosticFor(email string) string {
	if e.Bounce == nil {
		return ""
	}
	for _, r := range e.Bounce.BouncedRecipients {
		if r.EmailAddress == email {
			return r.DiagnosticCode
		}
	}
	return ""
}
