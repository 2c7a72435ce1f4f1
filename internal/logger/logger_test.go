package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buffer *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buffer.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		lines = append(lines, entry)
	}
	return lines
}

func TestNewWithWriter_Level(t *testing.T) {
	var buffer bytes.Buffer
	log := NewWithWriter(&buffer, "warn")

	log.Info("hidden")
	log.Warn("shown", "key", "value")

	lines := decodeLines(t, &buffer)
	require.Len(t, lines, 1)
	require.Equal(t, "shown", lines[0]["msg"])
	require.Equal(t, "value", lines[0]["key"])
}

func TestRequestIDIsAdded(t *testing.T) {
	var buffer bytes.Buffer
	log := NewWithWriter(&buffer, "info").With("component", "items")

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	log.InfoContext(ctx, "with id")
	log.Info("without id")

	lines := decodeLines(t, &buffer)
	require.Len(t, lines, 2)
	require.Equal(t, "req-42", lines[0]["request_id"])
	require.Equal(t, "items", lines[0]["component"])
	require.NotContains(t, lines[1], "request_id")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel(" DEBUG "))
	require.Equal(t, slog.LevelWarn, parseLevel("warn"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestMiddleware(t *testing.T) {
	var buffer bytes.Buffer
	handler := Middleware(NewWithWriter(&buffer, "info"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))

	lines := decodeLines(t, &buffer)
	require.Len(t, lines, 1)
	require.Equal(t, "request", lines[0]["msg"])
	require.Equal(t, "/items", lines[0]["path"])
	require.Equal(t, float64(http.StatusTeapot), lines[0]["status"])
}

func TestRecovery(t *testing.T) {
	t.Run("panic becomes 500", func(t *testing.T) {
		var buffer bytes.Buffer
		handler := Recovery(NewWithWriter(&buffer, "info"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "internal_error")
		require.Contains(t, buffer.String(), "panic recovered")
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		handler := Recovery(Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}
