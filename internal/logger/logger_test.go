package logger

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestFormatFields(t *testing.T) {
	assert.Equal(t, "", formatFields(nil))
	assert.Equal(t, "{a=1, b=x, c=2.50}", formatFields(Fields{"c": 2.5, "a": 1, "b": "x"}))
	assert.Equal(t, "{n=42}", formatFields(Fields{"n": int64(42)}))
}

func TestLevels(t *testing.T) {
	buf := captureLog(t)

	Info("song saved", Fields{"song_id": "abc"})
	Warn("slow parse", nil)
	Debug("parsed", Fields{"sections": 3})
	Error("write failed", errors.New("disk full"), Fields{"song_id": "abc"})

	out := buf.String()
	assert.Contains(t, out, "[INFO] song saved {song_id=abc}")
	assert.Contains(t, out, "[WARN] slow parse")
	assert.Contains(t, out, "[DEBUG] parsed {sections=3}")
	assert.Contains(t, out, "[ERROR] write failed: disk full {song_id=abc}")
}

func TestLogChordProOperation(t *testing.T) {
	buf := captureLog(t)

	LogChordProOperation(context.Background(), "transpose", 1500*time.Microsecond, Fields{"semitones": 2})

	out := buf.String()
	assert.Contains(t, out, "operation=transpose")
	assert.Contains(t, out, "semitones=2")
	assert.Contains(t, out, "duration_ms=1")
}

func TestWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/songs", nil)
	c.Set("request_id", "req-1")
	c.Set("user_id", "user-1")

	fields := WithContext(c)

	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.Equal(t, "/api/v1/songs", fields["path"])
	assert.Equal(t, "user-1", fields["user_id"])
}

func TestLogAPIRequest(t *testing.T) {
	buf := captureLog(t)

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/chordpro/transpose", nil)
	c.Set("request_id", "req-7")

	LogAPIRequest(c, 12*time.Millisecond, http.StatusOK, Fields{"user_id": "user-1"})

	out := buf.String()
	assert.Contains(t, out, "[INFO] API request completed")
	assert.Contains(t, out, "duration_ms=12")
	assert.Contains(t, out, "method=POST")
	assert.Contains(t, out, "path=/api/v1/chordpro/transpose")
	assert.Contains(t, out, "request_id=req-7")
	assert.Contains(t, out, "status_code=200")
	assert.Contains(t, out, "user_id=user-1")
}

func TestLogAPIRequest_NilFields(t *testing.T) {
	buf := captureLog(t)

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	LogAPIRequest(c, time.Millisecond, http.StatusOK, nil)

	assert.Contains(t, buf.String(), "path=/health")
}

func TestLogToSentry(t *testing.T) {
	var events []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			events = append(events, event)
			return nil
		},
	})
	require.NoError(t, err)

	hub := sentry.CurrentHub()
	previous := hub.Client()
	hub.BindClient(client)
	t.Cleanup(func() { hub.BindClient(previous) })

	LogToSentry(sentry.LevelWarning, "Health check degraded", Fields{
		"component":  "database",
		"request_id": "req-9",
		"attempts":   3,
	})

	require.Len(t, events, 1)
	assert.Equal(t, "Health check degraded", events[0].Message)
	assert.Equal(t, sentry.LevelWarning, events[0].Level)
	assert.Equal(t, "database", events[0].Tags["component"])
	assert.Equal(t, "req-9", events[0].Tags["request_id"])
	assert.NotContains(t, events[0].Tags, "attempts")
}

func TestLogToSentry_WithoutClient(t *testing.T) {
	hub := sentry.CurrentHub()
	previous := hub.Client()
	hub.BindClient(nil)
	t.Cleanup(func() { hub.BindClient(previous) })

	assert.NotPanics(t, func() {
		LogToSentry(sentry.LevelError, "dropped", nil)
	})
}
