package ses

import "testing"

func TestParseEvent_DeliveryWithTags(t *testing.T) {
	raw := []byte(`{
		"eventType": "Delivery",
		"mail": {
			"messageId": "msg-001",
			"destination": ["a@example.com", "b@example.com"],
			"tags": {"campaign_id": ["camp-42"], "ses:source-ip": ["10.0.0.1"]}
		},
		"delivery": {"timestamp": "2024-05-01T00:00:00.000Z"}
	}`)

	e, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if e.Kind() != KindDelivery {
		t.Errorf("Kind = %v, want %v", e.Kind(), KindDelivery)
	}
	if e.CampaignTag() != "camp-42" {
		t.Errorf("CampaignTag = %q, want camp-42", e.CampaignTag())
	}
	if got := e.Recipients(); len(got) != 2 || got[0] != "a@example.com" || got[1] != "b@example.com" {
		t.Errorf("Recipients = %v", got)
	}
}

func TestParseEvent_NotificationTypeAccepted(t *testing.T) {
	// Feedback notifications use "notificationType" instead of "eventType".
	raw := []byte(`{
		"notificationType": "Bounce",
		"mail": {"messageId": "msg-002", "destination": ["c@example.com"]},
		"bounce": {
			"bounceType": "Permanent",
			"bouncedRecipients": [{"emailAddress": "c@example.com", "diagnosticCode": "550 5.1.1 user unknown"}]
		}
	}`)

	e, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if e.Kind() != KindBounce {
		t.Errorf("Kind = %v, want %v", e.Kind(), KindBounce)
	}
	if e.Bounce.BounceType != BounceTypePermanent {
		t.Errorf("BounceType = %q", e.Bounce.BounceType)
	}
	if got := e.DiagnosticFor("c@example.com"); got != "550 5.1.1 user unknown" {
		t.Errorf("DiagnosticFor = %q", got)
	}
	if got := e.DiagnosticFor("other@example.com"); got != "" {
		t.Errorf("DiagnosticFor(miss) = %q, want empty", got)
	}
}

func TestParseEvent_MalformedJSON(t *testing.T) {
	if _, err := ParseEvent([]byte(`{"eventType": `)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestKind_Unrecognized(t *testing.T) {
	e := &Event{EventType: "Send"}
	if e.Kind() != KindUnknown {
		t.Errorf("Kind = %v, want %v", e.Kind(), KindUnknown)
	}
	e = &Event{}
	if e.Kind() != KindUnknown {
		t.Errorf("Kind(empty) = %v, want %v", e.Kind(), KindUnknown)
	}
}

func TestCampaignTag_Missing(t *testing.T) {
	e := &Event{EventType: "Open", Mail: Mail{
		MessageID:   "msg-003",
		Destination: []string{"d@example.com"},
		Tags:        map[string][]string{"ses:configuration-set": {"events"}},
	}}
	if got := e.CampaignTag(); got != "" {
		t.Errorf("CampaignTag = %q, want empty", got)
	}
}

func TestRecipients_BounceListPreferred(t *testing.T) {
	e := &Event{
		EventType: "Bounce",
		Mail:      Mail{Destination: []string{"a@example.com", "b@example.com"}},
		Bounce: &Bounce{
			BounceType:        BounceTypeTransient,
			BouncedRecipients: []BouncedRecipient{{EmailAddress: "b@example.com"}},
		},
	}
	got := e.Recipients()
	if len(got) != 1 || got[0] != "b@example.com" {
		t.Errorf("Recipients = %v, want [b@example.com]", got)
	}
}

func TestRecipients_EmptyBounceListFallsBackToDestination(t *testing.T) {
	e := &Event{
		EventType: "Bounce",
		Mail:      Mail{Destination: []string{"a@example.com"}},
		Bounce:    &Bounce{BounceType: BounceTypePermanent},
	}
	got := e.Recipients()
	if len(got) != 1 || got[0] != "a@example.com" {
		t.Errorf("Recipients = %v, want destination fallback", got)
	}
}

func TestRecipients_ComplaintList(t *testing.T) {
	e := &Event{
		NotificationType: "Complaint",
		Mail:             Mail{Destination: []string{"a@example.com", "b@example.com"}},
		Complaint: &Complaint{
			ComplaintFeedbackType: "abuse",
			ComplainedRecipients:  []ComplainedRecipient{{EmailAddress: "a@example.com"}},
		},
	}
	got := e.Recipients()
	if len(got) != 1 || got[0] != "a@example.com" {
		t.Errorf("Recipients = %v, want [a@example.com]", got)
	}
}

func TestParseEvent_Click(t *testing.T) {
	raw := []byte(`{
		"eventType": "Click",
		"mail": {"messageId": "msg-004", "destination": ["e@example.com"]},
		"click": {"link": "https://example.com/offer", "ipAddress": "192.0.2.1"}
	}`)

	e, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if e.Kind() != KindClick {
		t.Errorf("Kind = %v, want %v", e.Kind(), KindClick)
	}
	if e.Click == nil || e.Click.Link != "https://example.com/offer" {
		t.Errorf("Click = %+v", e.Click)
	}
}
