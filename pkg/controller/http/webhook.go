package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/vertag/vertag/pkg/domain/interfaces"
	"github.com/vertag/vertag/pkg/domain/model"
)

// WebhookHandler is the gateway for forge webhooks: it verifies the HMAC
// signature over the raw body, normalizes the payload into a domain event
// and hands it to the use case.
type WebhookHandler struct {
	secret    string
	webhookUC interfaces.WebhookUseCase
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(secret string, webhookUC interfaces.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{
		secret:    secret,
		webhookUC: webhookUC,
	}
}

// Handle processes webhook requests
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Security boundary: fail closed on a missing or mismatched signature,
	// nothing past this point runs for an unauthenticated payload
	signature := r.Header.Get("X-Hub-Signature-256")
	if !h.verifySignature(body, signature) {
		logger.Warn("invalid webhook signature")
		writeError(w, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	eventType := r.Header.Get("X-GitHub-Event")
	payload, err := github.ParseWebHook(eventType, body)
	if err != nil {
		logger.Error("failed to parse webhook payload", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}

	event := normalizeEvent(r.Header.Get("X-GitHub-Delivery"), payload)
	if event.Kind != model.EventKindUnknown {
		if err := event.Validate(); err != nil {
			logger.Warn("inconsistent webhook payload", "error", err)
			writeError(w, err, http.StatusBadRequest)
			return
		}
	}

	outcome, err := h.webhookUC.ProcessEvent(ctx, event)
	if err != nil {
		logger.Error("failed to process webhook event", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"outcome": string(outcome),
	}); err != nil {
		logger.Error("failed to encode success response", "error", err)
	}
}

// normalizeEvent maps a parsed forge payload onto the domain event shape
func normalizeEvent(deliveryID string, payload any) *model.WebhookEvent {
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}

	event := &model.WebhookEvent{
		ID:         deliveryID,
		Kind:       model.EventKindUnknown,
		ReceivedAt: time.Now(),
	}

	switch e := payload.(type) {
	case *github.PushEvent:
		event.Repository = e.GetRepo().GetFullName()
		event.Ref = e.GetRef()
		event.SHA = e.GetAfter()
		if e.GetDeleted() {
			// Ref deletion pushes have no commit to check
			event.Kind = model.EventKindUnknown
		} else {
			event.Kind = model.KindForRef(e.GetRef())
		}
	case *github.PullRequestEvent:
		event.Kind = model.EventKindPullRequest
		event.Repository = e.GetRepo().GetFullName()
		event.Ref = e.GetPullRequest().GetHead().GetRef()
		event.SHA = e.GetPullRequest().GetHead().GetSHA()
	}

	return event
}

// verifySignature verifies the webhook signature
func (h *WebhookHandler) verifySignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}

	signature = strings.TrimPrefix(signature, "sha256=")

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expectedMAC := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expectedMAC))
}
