package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	controller "github.com/vertag/vertag/pkg/controller/http"
	"github.com/vertag/vertag/pkg/domain/model"
)

// countingUseCase records every event that reaches the use case layer
type countingUseCase struct {
	events  []*model.WebhookEvent
	outcome model.ProcessOutcome
	err     error
}

func (c *countingUseCase) ProcessEvent(_ context.Context, event *model.WebhookEvent) (model.ProcessOutcome, error) {
	c.events = append(c.events, event)
	return c.outcome, c.err
}

// generateSignature generates HMAC-SHA256 signature for testing
func generateSignature(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func tagPushPayload(t *testing.T, repo, ref, after string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"ref":   ref,
		"after": after,
		"repository": map[string]any{
			"full_name": repo,
		},
	})
	gt.NoError(t, err)
	return payload
}

func postWebhook(handler *controller.WebhookHandler, eventType string, payload []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-GitHub-Delivery", "test-delivery")
	req.Header.Set("X-Hub-Signature-256", signature)

	w := httptest.NewRecorder()
	handler.Handle(w, req)
	return w
}

func TestWebhookHandler_SignatureVerification(t *testing.T) {
	secret := "test-secret"

	tests := []struct {
		name           string
		signature      func(payload []byte) string
		wantStatusCode int
		wantInvoked    bool
	}{
		{
			name:           "valid signature",
			signature:      func(p []byte) string { return generateSignature(secret, p) },
			wantStatusCode: http.StatusOK,
			wantInvoked:    true,
		},
		{
			name:           "invalid signature",
			signature:      func([]byte) string { return "sha256=deadbeef" },
			wantStatusCode: http.StatusUnauthorized,
			wantInvoked:    false,
		},
		{
			name:           "signature for different secret",
			signature:      func(p []byte) string { return generateSignature("other-secret", p) },
			wantStatusCode: http.StatusUnauthorized,
			wantInvoked:    false,
		},
		{
			name:           "missing signature",
			signature:      func([]byte) string { return "" },
			wantStatusCode: http.StatusUnauthorized,
			wantInvoked:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &countingUseCase{outcome: model.OutcomeProcessed}
			handler := controller.NewWebhookHandler(secret, uc)

			payload := tagPushPayload(t, "a/b", "refs/tags/v1.2.3", "abc123")
			w := postWebhook(handler, "push", payload, tt.signature(payload))

			gt.Value(t, w.Code).Equal(tt.wantStatusCode)
			if tt.wantInvoked {
				gt.Value(t, len(uc.events)).Equal(1)
			} else {
				// Rejected payloads must never reach the validator chain
				gt.Value(t, len(uc.events)).Equal(0)
			}
		})
	}
}

func TestWebhookHandler_EventNormalization(t *testing.T) {
	secret := "test-secret"

	t.Run("tag push is normalized with ref and SHA", func(t *testing.T) {
		uc := &countingUseCase{outcome: model.OutcomeProcessed}
		handler := controller.NewWebhookHandler(secret, uc)

		payload := tagPushPayload(t, "a/b", "refs/tags/v3.0.0", "head-sha")
		w := postWebhook(handler, "push", payload, generateSignature(secret, payload))

		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, len(uc.events)).Equal(1)

		event := uc.events[0]
		gt.Value(t, event.Kind).Equal(model.EventKindTagPush)
		gt.Value(t, event.Repository).Equal("a/b")
		gt.Value(t, event.Ref).Equal("refs/tags/v3.0.0")
		gt.Value(t, event.SHA).Equal("head-sha")
		gt.Value(t, event.ID).Equal("test-delivery")
		gt.Value(t, event.TagName()).Equal("v3.0.0")
	})

	t.Run("branch push is normalized as branch kind", func(t *testing.T) {
		uc := &countingUseCase{outcome: model.OutcomeIgnored}
		handler := controller.NewWebhookHandler(secret, uc)

		payload := tagPushPayload(t, "a/b", "refs/heads/main", "head-sha")
		w := postWebhook(handler, "push", payload, generateSignature(secret, payload))

		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, uc.events[0].Kind).Equal(model.EventKindBranchPush)
	})

	t.Run("ignored outcome is visible in the response", func(t *testing.T) {
		uc := &countingUseCase{outcome: model.OutcomeIgnored}
		handler := controller.NewWebhookHandler(secret, uc)

		payload := tagPushPayload(t, "a/b", "refs/heads/main", "head-sha")
		w := postWebhook(handler, "push", payload, generateSignature(secret, payload))

		var response map[string]string
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		gt.Value(t, response["status"]).Equal("ok")
		gt.Value(t, response["outcome"]).Equal("ignored")
	})

	t.Run("tag deletion push has no commit to check", func(t *testing.T) {
		uc := &countingUseCase{outcome: model.OutcomeIgnored}
		handler := controller.NewWebhookHandler(secret, uc)

		payload, err := json.Marshal(map[string]any{
			"ref":     "refs/tags/v1.0.0",
			"after":   "0000000000000000000000000000000000000000",
			"deleted": true,
			"repository": map[string]any{
				"full_name": "a/b",
			},
		})
		gt.NoError(t, err)

		w := postWebhook(handler, "push", payload, generateSignature(secret, payload))
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, uc.events[0].Kind).Equal(model.EventKindUnknown)
	})

	t.Run("malformed payload is rejected", func(t *testing.T) {
		uc := &countingUseCase{outcome: model.OutcomeProcessed}
		handler := controller.NewWebhookHandler(secret, uc)

		payload := []byte(`{"ref": `)
		w := postWebhook(handler, "push", payload, generateSignature(secret, payload))

		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.Value(t, len(uc.events)).Equal(0)
	})

	t.Run("push with invalid repository name is rejected", func(t *testing.T) {
		uc := &countingUseCase{outcome: model.OutcomeProcessed}
		handler := controller.NewWebhookHandler(secret, uc)

		payload := tagPushPayload(t, "not-a-full-name", "refs/tags/v1.0.0", "abc")
		w := postWebhook(handler, "push", payload, generateSignature(secret, payload))

		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.Value(t, len(uc.events)).Equal(0)
	})
}

func TestWebhookHandler_ProcessingFailure(t *testing.T) {
	secret := "test-secret"
	uc := &countingUseCase{
		outcome: model.OutcomeProcessed,
		err:     context.DeadlineExceeded,
	}
	handler := controller.NewWebhookHandler(secret, uc)

	payload := tagPushPayload(t, "a/b", "refs/tags/v1.0.0", "abc")
	w := postWebhook(handler, "push", payload, generateSignature(secret, payload))

	gt.Value(t, w.Code).Equal(http.StatusInternalServerError)
}
