package services

import (
	"context"
	"strings"
	"testing"

	apperrors "github.com/anxforever/portfolio-api/errors"
	"github.com/anxforever/portfolio-api/logger"
	"github.com/anxforever/portfolio-api/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	logger.IsTest = true
}

func newTestContactService() *ContactService {
	return NewContactServiceWithRegistry(nil, prometheus.NewRegistry())
}

func validPayload() map[string]any {
	return map[string]any{
		"name":    "Alice",
		"email":   "a@b.com",
		"message": "Hello, this is a test message.",
	}
}

func TestValidatePayload(t *testing.T) {
	svc := newTestContactService()

	t.Run("valid payload passes", func(t *testing.T) {
		res := svc.ValidatePayload(validPayload())
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("nil payload yields single generic error", func(t *testing.T) {
		res := svc.ValidatePayload(nil)
		assert.False(t, res.Valid)
		assert.Equal(t, []string{apperrors.MsgInvalidPayload}, res.Errors)
	})

	t.Run("two missing fields yield exactly two errors", func(t *testing.T) {
		res := svc.ValidatePayload(map[string]any{"message": "Hello, this is a test message."})
		assert.False(t, res.Valid)
		assert.Equal(t, []string{MsgNameRequired, MsgEmailRequired}, res.Errors)
	})

	t.Run("all missing fields are reported in field order", func(t *testing.T) {
		res := svc.ValidatePayload(map[string]any{})
		assert.Equal(t, []string{MsgNameRequired, MsgEmailRequired, MsgMessageRequired}, res.Errors)
	})

	t.Run("non-string fields count as missing", func(t *testing.T) {
		p := validPayload()
		p["name"] = 42
		res := svc.ValidatePayload(p)
		assert.Equal(t, []string{MsgNameRequired}, res.Errors)
	})

	t.Run("whitespace-only fields count as missing", func(t *testing.T) {
		p := validPayload()
		p["email"] = "   "
		res := svc.ValidatePayload(p)
		assert.Equal(t, []string{MsgEmailRequired}, res.Errors)
	})
}

func TestValidatePayloadBoundaries(t *testing.T) {
	svc := newTestContactService()

	set := func(key, value string) map[string]any {
		p := validPayload()
		p[key] = value
		return p
	}

	t.Run("name length", func(t *testing.T) {
		assert.False(t, svc.ValidatePayload(set("name", "A")).Valid)
		assert.True(t, svc.ValidatePayload(set("name", "Al")).Valid)
		assert.True(t, svc.ValidatePayload(set("name", strings.Repeat("a", 100))).Valid)
		res := svc.ValidatePayload(set("name", strings.Repeat("a", 101)))
		assert.Equal(t, []string{MsgNameTooLong}, res.Errors)
	})

	t.Run("message length", func(t *testing.T) {
		assert.False(t, svc.ValidatePayload(set("message", strings.Repeat("m", 9))).Valid)
		assert.True(t, svc.ValidatePayload(set("message", strings.Repeat("m", 10))).Valid)
		assert.True(t, svc.ValidatePayload(set("message", strings.Repeat("m", 5000))).Valid)
		res := svc.ValidatePayload(set("message", strings.Repeat("m", 5001)))
		assert.Equal(t, []string{MsgMessageTooLong}, res.Errors)
	})

	t.Run("length is measured after trimming", func(t *testing.T) {
		// One real character padded with whitespace is still too short.
		assert.False(t, svc.ValidatePayload(set("name", "  A  ")).Valid)
	})

	t.Run("email shape", func(t *testing.T) {
		assert.True(t, svc.ValidatePayload(set("email", "a@b.com")).Valid)
		for _, bad := range []string{"plainaddress", "missing@tld", "two words@b.com", "@b.com", "a@.com"} {
			res := svc.ValidatePayload(set("email", bad))
			assert.False(t, res.Valid, "expected %q to be rejected", bad)
			assert.Contains(t, res.Errors, MsgEmailInvalid)
		}
	})
}

func TestHoneypotTripped(t *testing.T) {
	assert.False(t, HoneypotTripped(validPayload()))

	p := validPayload()
	p["website"] = ""
	assert.False(t, HoneypotTripped(p))

	p["website"] = "   "
	assert.False(t, HoneypotTripped(p))

	p["website"] = "https://spam.example"
	assert.True(t, HoneypotTripped(p))

	p["website"] = 1
	assert.True(t, HoneypotTripped(p))
}

func TestSubmitEmitsOneRedactedLogLine(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := logger.SwapLogger(zap.New(core))
	defer restore()

	svc := newTestContactService()
	svc.Submit(context.Background(), types.ContactRequest{
		Name:    "Alice",
		Email:   "a@b.com",
		Message: "Hello, this is a test message.",
	}, "1.2.3.4")

	entries := logs.FilterMessage("Contact submission received").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "1.2.3.4", fields["client_ip"])
	assert.Equal(t, "A***e", fields["name"])
	assert.Equal(t, "a***@b.com", fields["email"])
	assert.Equal(t, int64(30), fields["message_length"])

	// Raw values must never appear anywhere in the entry.
	for _, v := range fields {
		if s, ok := v.(string); ok {
			assert.NotEqual(t, "Alice", s)
			assert.NotContains(t, s, "Hello, this is a test message.")
		}
	}
}
