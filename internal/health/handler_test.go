package health

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Lelo88/item-manager/internal/httpx"
	"github.com/Lelo88/item-manager/internal/items"
)

type fakeSessions struct {
	pingFn     func(ctx context.Context) error
	pingCalled bool
	lastCtx    context.Context
}

func (sessions *fakeSessions) Ping(ctx context.Context) error {
	sessions.pingCalled = true
	sessions.lastCtx = ctx
	if sessions.pingFn != nil {
		return sessions.pingFn(ctx)
	}
	return nil
}

func TestHandler_Health(t *testing.T) {
	handler := New(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := asMap(t, resp.Data)
	require.Equal(t, "ok", data["status"])
}

func TestHandler_Ready(t *testing.T) {
	t.Run("sessions not configured", func(t *testing.T) {
		handler := New(nil)

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()

		handler.Ready(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		require.Equal(t, "not_ready", resp.Error.Code)
		require.Equal(t, "session store not configured", resp.Error.Message)
	})

	t.Run("ping error", func(t *testing.T) {
		sessions := &fakeSessions{pingFn: func(ctx context.Context) error { return errors.New("closed") }}
		handler := New(sessions)

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()

		handler.Ready(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		require.Equal(t, "not_ready", resp.Error.Code)
		require.Equal(t, "session store is not available", resp.Error.Message)
		require.True(t, sessions.pingCalled)
		deadline, ok := sessions.lastCtx.Deadline()
		require.True(t, ok)
		require.True(t, time.Until(deadline) <= 2*time.Second+100*time.Millisecond)
	})

	t.Run("ready", func(t *testing.T) {
		sessions := &fakeSessions{}
		handler := New(sessions)

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()

		handler.Ready(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		data := asMap(t, resp.Data)
		require.Equal(t, "ready", data["status"])
		require.True(t, sessions.pingCalled)
	})

	t.Run("closed repository", func(t *testing.T) {
		repository, err := items.NewRepository(2, false)
		require.NoError(t, err)
		handler := New(repository)

		rec := httptest.NewRecorder()
		handler.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		repository.Close()

		rec = httptest.NewRecorder()
		handler.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) httpx.Response {
	t.Helper()

	var response httpx.Response
	decoder := json.NewDecoder(bytes.NewReader(recorder.Body.Bytes()))
	decoder.UseNumber()
	require.NoError(t, decoder.Decode(&response))
	return response
}

func asMap(t *testing.T, value any) map[string]any {
	t.Helper()

	out, ok := value.(map[string]any)
	require.True(t, ok, "expected map, got %T", value)
	return out
}
