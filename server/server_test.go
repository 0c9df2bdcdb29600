package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berayon/review-bot/pkg/watcher"
	"github.com/berayon/review-bot/server/mocks"
)

func TestServer_StatusHandler(t *testing.T) {
	status := &mocks.StatusProviderMock{
		StatusFunc: func() []watcher.Stats {
			return []watcher.Stats{
				{AppID: "123", AppName: "My App", Store: "app-store", Regions: []string{"us"}, Delivered: 2},
				{AppID: "com.example", Store: "google-play", Regions: []string{"us", "de"}},
			}
		},
	}
	s := New("127.0.0.1:0", time.Second, status, "test-1.0", false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp struct {
		Status  string          `json:"status"`
		Version string          `json:"version"`
		Apps    []watcher.Stats `json:"apps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test-1.0", resp.Version)
	require.Len(t, resp.Apps, 2)
	assert.Equal(t, "123", resp.Apps[0].AppID)
	assert.Equal(t, 2, resp.Apps[0].Delivered)
	assert.Equal(t, []string{"us", "de"}, resp.Apps[1].Regions)
	assert.Len(t, status.StatusCalls(), 1)
}

func TestServer_Ping(t *testing.T) {
	s := New("127.0.0.1:0", time.Second, &mocks.StatusProviderMock{}, "test", false)

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestServer_RunShutdown(t *testing.T) {
	status := &mocks.StatusProviderMock{StatusFunc: func() []watcher.Stats { return nil }}
	s := New("127.0.0.1:0", time.Second, status, "test", false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond) // let it bind
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err, "graceful shutdown is not an error")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRenderJSON(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	RenderJSON(w, req, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"hello":"world"}`, w.Body.String())
}

func TestRenderError(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	RenderError(w, req, errors.New("boom"), http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())
}
