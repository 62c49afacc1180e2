package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	statsErr   error
	channelErr error
	stats      model.Statistics
	channel    int64
	configured bool
}

func (s *stubSource) Channel(context.Context) (int64, bool, error) {
	return s.channel, s.configured, s.channelErr
}

func (s *stubSource) Statistics(context.Context) (model.Statistics, error) {
	return s.stats, s.statsErr
}

func newTestServer(source StatusSource) *Server {
	s := NewServer(source, nil)
	s.now = func() time.Time { return time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC) }
	return s
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	newTestServer(&stubSource{}).Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestIndexEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	newTestServer(&stubSource{}).Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `href="/status"`)
}

func TestStatusEndpoint(t *testing.T) {
	stats := model.ComputeStatistics([]model.ResultRecord{
		{RoundNumber: 1, Winner: model.WinnerPlayer},
		{RoundNumber: 2, Winner: model.WinnerPlayer},
		{RoundNumber: 3, Winner: model.WinnerBanker},
		{RoundNumber: 4, Winner: model.WinnerPlayer},
	})

	tests := []struct {
		source        *stubSource
		wantChannel   any
		name          string
		wantCode      int
		wantConfigure bool
	}{
		{
			name:          "configured channel",
			source:        &stubSource{stats: stats, channel: -1001234567890, configured: true},
			wantCode:      http.StatusOK,
			wantConfigure: true,
			wantChannel:   float64(-1001234567890),
		},
		{
			name:        "no channel",
			source:      &stubSource{stats: stats},
			wantCode:    http.StatusOK,
			wantChannel: nil,
		},
		{
			name:        "channel lookup failure still reports",
			source:      &stubSource{stats: stats, channelErr: errors.New("locked")},
			wantCode:    http.StatusOK,
			wantChannel: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/status", nil)
			w := httptest.NewRecorder()

			newTestServer(tt.source).Routes().ServeHTTP(w, req)
			require.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, "running", body["status"])
			assert.Equal(t, tt.wantConfigure, body["channel_configured"])
			assert.Equal(t, tt.wantChannel, body["channel_id"])
			assert.Equal(t, "2026-10-14T08:30:00Z", body["timestamp"])

			statsBody, ok := body["stats"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, float64(4), statsBody["total"])
			assert.Equal(t, float64(3), statsBody["player_wins"])
			assert.Equal(t, float64(75), statsBody["player_rate"])
			assert.Equal(t, float64(25), statsBody["banker_rate"])
		})
	}
}

func TestStatusEndpoint_StatisticsUnavailable(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()

	newTestServer(&stubSource{statsErr: errors.New("store down")}).Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "statistics unavailable", body.Error)
}

func TestUnknownRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()

	newTestServer(&stubSource{}).Routes().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newTestServer(&stubSource{}).ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
