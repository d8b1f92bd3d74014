package errors

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatuses(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ValidationFailed([]string{"x"}).GetHTTPStatus())
	assert.Equal(t, http.StatusBadRequest, MalformedRequest(nil).GetHTTPStatus())
	assert.Equal(t, http.StatusForbidden, OriginNotAllowed().GetHTTPStatus())
	assert.Equal(t, http.StatusTooManyRequests, RateLimitExceeded(time.Minute).GetHTTPStatus())
	assert.Equal(t, http.StatusBadRequest, SilentRejection().GetHTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, InternalServerError(nil).GetHTTPStatus())
}

func TestErrorList(t *testing.T) {
	ve := ValidationFailed([]string{"first", "second"})
	assert.Equal(t, []string{"first", "second"}, ve.ErrorList())

	// Errors without a collected list fall back to their single message.
	assert.Equal(t, []string{MsgOriginForbidden}, OriginNotAllowed().ErrorList())
	assert.Equal(t, []string{MsgRateLimited}, RateLimitExceeded(time.Minute).ErrorList())
}

func TestRetryAfterCarried(t *testing.T) {
	e := RateLimitExceeded(60 * time.Second)
	assert.Equal(t, 60*time.Second, e.RetryAfter)
}

func TestSilentRejectionNeverNamesHoneypot(t *testing.T) {
	e := SilentRejection()
	assert.NotContains(t, e.Message, "website")
	assert.NotContains(t, e.Message, "honeypot")
}

func TestUnwrap(t *testing.T) {
	raw := errors.New("boom")
	e := InternalServerError(raw)
	assert.ErrorIs(t, e, raw)
	// The raw detail must never leak into the user-facing message.
	assert.NotContains(t, e.Message, "boom")
}
