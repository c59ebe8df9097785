package async_test

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/vertag/vertag/pkg/utils/async"
)

// recordingHandler captures log messages and signals on each record
type recordingHandler struct {
	mu      sync.Mutex
	records []string
	done    chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{done: make(chan struct{}, 8)}
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	h.records = append(h.records, r.Message)
	h.mu.Unlock()
	select {
	case h.done <- struct{}{}:
	default:
	}
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.records...)
}

func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for async handler")
	}
}

func TestDispatch(t *testing.T) {
	t.Run("executes handler with detached context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		executed := make(chan struct{})

		async.Dispatch(ctx, func(handlerCtx context.Context) error {
			defer close(executed)
			// The handler must outlive the caller's cancellation
			gt.NoError(t, handlerCtx.Err())
			return nil
		})
		cancel()

		waitFor(t, executed)
	})

	t.Run("logs handler errors", func(t *testing.T) {
		handler := newRecordingHandler()
		ctx := ctxlog.With(context.Background(), slog.New(handler))

		async.Dispatch(ctx, func(context.Context) error {
			return goerr.New("handler failed")
		})

		waitFor(t, handler.done)
		messages := strings.Join(handler.messages(), "\n")
		gt.True(t, strings.Contains(messages, "error in async handler"))
	})

	t.Run("recovers from panics", func(t *testing.T) {
		handler := newRecordingHandler()
		ctx := ctxlog.With(context.Background(), slog.New(handler))

		async.Dispatch(ctx, func(context.Context) error {
			panic("boom")
		})

		waitFor(t, handler.done)
		messages := strings.Join(handler.messages(), "\n")
		gt.True(t, strings.Contains(messages, "panic in async handler"))
	})
}
