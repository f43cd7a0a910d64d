package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"erpinterno/internal/shared/tenant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record), buf.String())
	return record
}

func TestRedactNested(t *testing.T) {
	got := Redact(map[string]any{
		"user":     "ana",
		"Password": "hunter2",
		"profile": map[string]any{
			"cpf":   "12345678900",
			"email": "ana@example.com",
		},
		"cards": []any{
			map[string]any{"creditCardNumber": "4111", "brand": "visa"},
		},
		"apiKey": "k",
	})

	assert.Equal(t, "ana", got["user"])
	assert.Equal(t, RedactedValue, got["Password"])
	assert.Equal(t, RedactedValue, got["apiKey"])
	profile := got["profile"].(map[string]any)
	assert.Equal(t, RedactedValue, profile["cpf"])
	assert.Equal(t, "ana@example.com", profile["email"])
	card := got["cards"].([]any)[0].(map[string]any)
	assert.Equal(t, RedactedValue, card["creditCardNumber"])
	assert.Equal(t, "visa", card["brand"])
}

func TestRedactDoesNotMutateInput(t *testing.T) {
	input := map[string]any{"token": "abc"}
	_ = Redact(input)
	assert.Equal(t, "abc", input["token"])
}

func TestLoggerRedactsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "debug", Output: &buf})

	logger.Info("login", "refreshToken", "r-1", "payload", map[string]any{"secret": "s", "name": "n"})

	record := decodeLine(t, &buf)
	assert.Equal(t, RedactedValue, record["refreshToken"])
	payload := record["payload"].(map[string]any)
	assert.Equal(t, RedactedValue, payload["secret"])
	assert.Equal(t, "n", payload["name"])
	assert.Equal(t, "login", record["msg"])
}

func TestLoggerRedactsTypedMapsAndStructs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf})

	type credentials struct {
		User     string `json:"user"`
		Password string `json:"password"`
		APIKey   string
		Skipped  string `json:"-"`
		internal string
	}
	logger.Info("request received",
		"headers", http.Header{"X-Internal-Key": {"supersecret1"}, "Accept": {"application/json"}},
		"payload", map[string]any{"nested": map[string][]string{"token": {"supersecret2"}}},
		"codes", map[string]int{"pin": 1234, "attempts": 2},
		"login", credentials{User: "ana", Password: "supersecret3", APIKey: "supersecret4", Skipped: "x", internal: "y"},
		"list", []credentials{{User: "bia", Password: "supersecret5"}},
		"ref", &credentials{User: "caio", Password: "supersecret6"},
		"at", time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	)

	line := buf.String()
	for i := 1; i <= 6; i++ {
		assert.NotContains(t, line, fmt.Sprintf("supersecret%d", i))
	}

	record := decodeLine(t, &buf)
	headers := record["headers"].(map[string]any)
	assert.Equal(t, RedactedValue, headers["X-Internal-Key"])
	assert.Equal(t, []any{"application/json"}, headers["Accept"])

	nested := record["payload"].(map[string]any)["nested"].(map[string]any)
	assert.Equal(t, RedactedValue, nested["token"])

	codes := record["codes"].(map[string]any)
	assert.Equal(t, RedactedValue, codes["pin"])
	assert.Equal(t, float64(2), codes["attempts"])

	login := record["login"].(map[string]any)
	assert.Equal(t, "ana", login["user"])
	assert.Equal(t, RedactedValue, login["password"])
	assert.Equal(t, RedactedValue, login["APIKey"])
	assert.NotContains(t, login, "Skipped")
	assert.NotContains(t, login, "internal")

	assert.Equal(t, "caio", record["ref"].(map[string]any)["user"])
	assert.True(t, strings.HasPrefix(record["at"].(string), "2026-03-01T09:00:00"))
}

func TestRedactStopsOnCycles(t *testing.T) {
	type node struct {
		Name string
		Next *node
	}
	loop := &node{Name: "a"}
	loop.Next = loop

	assert.NotPanics(t, func() {
		_ = Redact(map[string]any{"loop": loop})
	})
}

func TestRedactKeepsErrorsReadable(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Output: &buf}).Error("failed", "err", errors.New("boom"))

	record := decodeLine(t, &buf)
	assert.Equal(t, "boom", record["err"])
}

func TestFromContextAddsRequestAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Output: &buf})
	ctx := WithRequest(context.Background(), tenant.RequestContext{
		TenantID:      "tenant-1",
		RequestID:     "req-1",
		CorrelationID: "corr-1",
		UserID:        "user-1",
	})

	FromContext(ctx, base).Info("hello")

	record := decodeLine(t, &buf)
	assert.Equal(t, "tenant-1", record["tenant_id"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, "corr-1", record["correlation_id"])
	assert.Equal(t, "user-1", record["user_id"])
}

func TestFromContextWithoutRequest(t *testing.T) {
	base := slog.Default()
	assert.Same(t, base, FromContext(context.Background(), base))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
