package sns

import "testing"

func TestSigningString_Notification(t *testing.T) {
	e := &Envelope{
		Type:      TypeNotification,
		MessageId: "mid-1",
		TopicArn:  "arn:aws:sns:us-west-2:123456789012:ses-events",
		Message:   `{"eventType":"Delivery"}`,
		Timestamp: "2024-05-01T00:00:00.000Z",
	}

	want := "Message\n" + e.Message + "\n" +
		"MessageId\nmid-1\n" +
		"Timestamp\n2024-05-01T00:00:00.000Z\n" +
		"TopicArn\narn:aws:sns:us-west-2:123456789012:ses-events\n" +
		"Type\nNotification\n"

	if got := string(SigningString(e)); got != want {
		t.Errorf("signing string mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSigningString_NotificationWithSubject(t *testing.T) {
	e := &Envelope{
		Type:      TypeNotification,
		MessageId: "mid-2",
		TopicArn:  "arn:topic",
		Subject:   "Amazon SES Email Event Notification",
		Message:   "{}",
		Timestamp: "ts",
	}

	want := "Message\n{}\n" +
		"MessageId\nmid-2\n" +
		"Subject\nAmazon SES Email Event Notification\n" +
		"Timestamp\nts\n" +
		"TopicArn\narn:topic\n" +
		"Type\nNotification\n"

	if got := string(SigningString(e)); got != want {
		t.Errorf("signing string mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSigningString_SubscriptionConfirmation(t *testing.T) {
	e := &Envelope{
		Type:         TypeSubscriptionConfirmation,
		MessageId:    "mid-3",
		TopicArn:     "arn:topic",
		Message:      "You have chosen to subscribe...",
		Timestamp:    "ts",
		SubscribeURL: "https://sns.us-west-2.amazonaws.com/?Action=ConfirmSubscription",
		Token:        "tok-123",
	}

	want := "Message\nYou have chosen to subscribe...\n" +
		"MessageId\nmid-3\n" +
		"SubscribeURL\nhttps://sns.us-west-2.amazonaws.com/?Action=ConfirmSubscription\n" +
		"Timestamp\nts\n" +
		"Token\ntok-123\n" +
		"TopicArn\narn:topic\n" +
		"Type\nSubscriptionConfirmation\n"

	if got := string(SigningString(e)); got != want {
		t.Errorf("signing string mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSigningString_UnknownTypeIsEmpty(t *testing.T) {
	e := &Envelope{Type: "SomethingElse", Message: "x", MessageId: "y"}
	if got := SigningString(e); len(got) != 0 {
		t.Errorf("expected empty signing string for unknown type, got %q", got)
	}
}
