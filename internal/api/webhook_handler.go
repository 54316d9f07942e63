package api

import (
	"io"
	"net/http"

	"github.com/ignite/ses-ingest/internal/ingest"
	"github.com/ignite/ses-ingest/internal/pkg/httpretry"
	"github.com/ignite/ses-ingest/internal/pkg/httputil"
	"github.com/ignite/ses-ingest/internal/pkg/logger"
	"github.com/ignite/ses-ingest/internal/ses"
	"github.com/ignite/ses-ingest/internal/sns"
)

// maxBodyBytes bounds the webhook request body. SNS caps messages at 256KB;
// 2MB leaves generous headroom for envelope overhead.
const maxBodyBytes = 2 * 1024 * 1024

// livenessBody is returned for GETs on the webhook path. SNS probes the
// endpoint before delivering; the body content is irrelevant to it.
const livenessBody = "ses-ingest webhook endpoint\n"

// WebhookHandler is the entry point of the ingestion pipeline: it parses
// the SNS envelope, filters by topic, gates on signature verification, and
// hands verified events to the pipeline.
//
// Response contract:
//   - 200 empty: event accepted or benignly ignored (unmatched topic,
//     uncorrelated campaign, control message)
//   - 403 plain text: signature verification failed for a data notification
//     on the trusted topic
//   - 500 plain text: malformed request or store failure (SNS redelivers)
type WebhookHandler struct {
	verifier *sns.Verifier
	pipeline *ingest.Pipeline
	topicARN string

	// confirmer fetches SubscribeURLs for verified subscription
	// confirmations. Nil disables auto-confirmation.
	confirmer httpretry.HTTPDoer
}

// NewWebhookHandler creates the webhook handler. topicARN is the single
// trusted topic; notifications from any other topic are ignored.
func NewWebhookHandler(verifier *sns.Verifier, pipeline *ingest.Pipeline, topicARN string, confirmer httpretry.HTTPDoer) *WebhookHandler {
	return &WebhookHandler{
		verifier:  verifier,
		pipeline:  pipeline,
		topicARN:  topicARN,
		confirmer: confirmer,
	}
}

// HandleGet answers SNS endpoint-confirmation pings.
func (h *WebhookHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	httputil.Text(w, http.StatusOK, livenessBody)
}

// HandlePost processes one SNS delivery.
func (h *WebhookHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		httputil.Text(w, http.StatusInternalServerError, "read error")
		return
	}

	env, err := sns.ParseEnvelope(body)
	if err != nil {
		logger.Error("webhook: malformed envelope", "error", err)
		httputil.Text(w, http.StatusInternalServerError, "malformed notification")
		return
	}

	switch {
	case env.IsControl():
		h.handleControl(w, r, env)
	case env.IsNotification():
		h.handleNotification(w, r, env)
	default:
		logger.Error("webhook: unrecognized envelope type", "type", env.Type)
		httputil.Text(w, http.StatusInternalServerError, "unrecognized notification type")
	}
}

// handleControl processes subscription-lifecycle messages. These carry no
// destructive payload, so a failed verification only warns; the response is
// 200 either way.
func (h *WebhookHandler) handleControl(w http.ResponseWriter, r *http.Request, env *sns.Envelope) {
	verified := h.verifier.Verify(r.Context(), env)
	if !verified {
		logger.Warn("webhook: unverified control message",
			"type", env.Type, "topic", env.TopicArn, "message_id", env.MessageId)
		httputil.Empty(w, http.StatusOK)
		return
	}

	logger.Info("webhook: control message received",
		"type", env.Type, "topic", env.TopicArn)

	if env.Type == sns.TypeSubscriptionConfirmation && h.confirmer != nil && env.SubscribeURL != "" {
		h.confirmSubscription(r, env.SubscribeURL)
	}
	httputil.Empty(w, http.StatusOK)
}

// handleNotification processes a data notification. Verification is
// mandatory here: everything downstream mutates records.
func (h *WebhookHandler) handleNotification(w http.ResponseWriter, r *http.Request, env *sns.Envelope) {
	if env.TopicArn != h.topicARN {
		// Cross-topic events are not ours to process; an empty 200 stops
		// redelivery without leaking why.
		logger.Warn("webhook: notification from unexpected topic", "topic", env.TopicArn)
		httputil.Empty(w, http.StatusOK)
		return
	}

	if !h.verifier.Verify(r.Context(), env) {
		logger.Warn("webhook: signature verification failed",
			"topic", env.TopicArn, "message_id", env.MessageId)
		httputil.Text(w, http.StatusForbidden, "signature verification failed")
		return
	}

	event, err := ses.ParseEvent([]byte(env.Message))
	if err != nil {
		// The envelope was genuinely signed but the payload is not an
		// event we know; 200 so SNS does not redeliver it forever.
		logger.Warn("webhook: unparseable event payload", "error", err)
		httputil.Empty(w, http.StatusOK)
		return
	}

	if err := h.pipeline.Process(r.Context(), event); err != nil {
		logger.Error("webhook: event processing failed",
			"kind", string(event.Kind()), "message_id", event.Mail.MessageID, "error", err)
		httputil.Text(w, http.StatusInternalServerError, "event processing failed")
		return
	}

	httputil.Empty(w, http.StatusOK)
}

func (h *WebhookHandler) confirmSubscription(r *http.Request, subscribeURL string) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, subscribeURL, nil)
	if err != nil {
		return
	}
	resp, err := h.confirmer.Do(req)
	if err != nil {
		logger.Error("webhook: subscription confirmation failed", "error", err)
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	logger.Info("webhook: subscription confirmed", "status", resp.StatusCode)
}
