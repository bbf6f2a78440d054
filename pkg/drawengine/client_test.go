package drawengine

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridgetunes/draw-console-backend/internal/models"
	"github.com/bridgetunes/draw-console-backend/pkg/remote"
)

type capturedRequest struct {
	method string
	path   string
	apiKey string
	body   []byte
}

func newCaptureServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.apiKey = r.Header.Get("X-API-Key")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		captured.body = body
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func TestScheduleWithDefaultDigits(t *testing.T) {
	server, captured := newCaptureServer(t, http.StatusCreated,
		`{"id":"draw-1","drawDate":"2025-05-05T00:00:00Z","drawType":"DAILY","useDefaultDigits":true,"status":"SCHEDULED"}`)
	client := NewClient(server.URL, "secret-key", time.Second)

	date := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	draw, err := client.Schedule(context.Background(), date, models.DrawTypeDaily, models.DefaultDigits())
	require.NoError(t, err)
	assert.Equal(t, "draw-1", draw.ID)
	assert.Equal(t, models.DrawStatusScheduled, draw.Status)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/schedule", captured.path)
	assert.Equal(t, "secret-key", captured.apiKey)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(captured.body, &payload))
	assert.Equal(t, "2025-05-05", payload["draw_date"])
	assert.Equal(t, "DAILY", payload["draw_type"])
	assert.Equal(t, true, payload["use_default"])
	// Tracking defaults means the digit list stays off the wire entirely
	_, present := payload["eligible_digits"]
	assert.False(t, present)
}

func TestScheduleWithExplicitDigits(t *testing.T) {
	server, captured := newCaptureServer(t, http.StatusCreated,
		`{"id":"draw-2","drawType":"SATURDAY","status":"SCHEDULED"}`)
	client := NewClient(server.URL, "", time.Second)

	date := time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)
	_, err := client.Schedule(context.Background(), date, models.DrawTypeSaturday, models.ExplicitDigits([]int{3, 7}))
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(captured.body, &payload))
	assert.Equal(t, "SATURDAY", payload["draw_type"])
	assert.Equal(t, false, payload["use_default"])
	assert.Equal(t, []interface{}{float64(3), float64(7)}, payload["eligible_digits"])
}

func TestScheduleConflict(t *testing.T) {
	server, _ := newCaptureServer(t, http.StatusConflict, `{"error":"draw already exists for date"}`)
	client := NewClient(server.URL, "", time.Second)

	date := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	_, err := client.Schedule(context.Background(), date, models.DrawTypeDaily, models.DefaultDigits())
	require.Error(t, err)
	assert.True(t, remote.IsConflict(err))
	assert.Equal(t, "drawengine.Schedule", remote.OpOf(err))
}

func TestFindByDateNotFound(t *testing.T) {
	server, captured := newCaptureServer(t, http.StatusNotFound, "")
	client := NewClient(server.URL, "", time.Second)

	date := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	_, err := client.FindByDate(context.Background(), date)
	require.Error(t, err)
	assert.True(t, remote.IsNotFound(err))
	assert.Equal(t, http.MethodGet, captured.method)
	assert.Equal(t, "/date/2025-05-05", captured.path)
}

func TestExecute(t *testing.T) {
	server, captured := newCaptureServer(t, http.StatusOK, `{"message":"Draw execution started"}`)
	client := NewClient(server.URL, "", time.Second)

	ack, err := client.Execute(context.Background(), "draw-9")
	require.NoError(t, err)
	assert.Equal(t, "Draw execution started", ack.Message)
	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/draw-9/execute", captured.path)
}

func TestDefaultDigits(t *testing.T) {
	server, captured := newCaptureServer(t, http.StatusOK, `[0,1]`)
	client := NewClient(server.URL, "", time.Second)

	digits, err := client.DefaultDigits(context.Background(), time.Monday)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, digits)
	assert.Equal(t, "/default-digits/Monday", captured.path)
}

func TestServerErrorIsTransport(t *testing.T) {
	server, _ := newCaptureServer(t, http.StatusInternalServerError, "boom")
	client := NewClient(server.URL, "", time.Second)

	date := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	_, err := client.FindByDate(context.Background(), date)
	require.Error(t, err)
	assert.Equal(t, remote.KindTransport, remote.KindOf(err))
	assert.False(t, remote.IsNotFound(err))
	assert.False(t, remote.IsConflict(err))
}
