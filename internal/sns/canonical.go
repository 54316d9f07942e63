package sns

import "bytes"

// SigningString reconstructs the exact newline-delimited byte string SNS
// signed for this envelope. Field order is fixed and differs between data
// notifications and subscription-lifecycle messages; an unrecognized Type
// yields an empty string, which Verifier treats as automatic rejection.
func SigningString(e *Envelope) []byte {
	var buf bytes.Buffer

	write := func(name, value string) {
		buf.WriteString(name)
		buf.WriteByte('\n')
		buf.WriteString(value)
		buf.WriteByte('\n')
	}

	switch e.Type {
	case TypeNotification:
		write("Message", e.Message)
		write("MessageId", e.MessageId)
		// Subject is only part of the signed string when present.
		if e.Subject != "" {
			write("Subject", e.Subject)
		}
		write("Timestamp", e.Timestamp)
		write("TopicArn", e.TopicArn)
		write("Type", e.Type)

	case TypeSubscriptionConfirmation, TypeUnsubscribeConfirmation:
		write("Message", e.Message)
		write("MessageId", e.MessageId)
		write("SubscribeURL", e.SubscribeURL)
		write("Timestamp", e.Timestamp)
		write("Token", e.Token)
		write("TopicArn", e.TopicArn)
		write("Type", e.Type)

	default:
		return nil
	}

	return buf.Bytes()
}
