// Package client provides a small API client for the contact endpoint that
// mirrors the frontend form controller: it tracks submission state, keeps a
// single submission in flight, and maps the structured response to
// displayable error messages.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/anxforever/portfolio-api/types"
)

// State is the form controller state.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// MsgNetworkError is shown for transport-level failures, distinct from
// server-reported validation errors.
const MsgNetworkError = "Network error. Please check your connection and try again."

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission has not finished.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// RejectionError carries a server-side rejection: the HTTP status and the
// ordered error messages from the response body.
type RejectionError struct {
	StatusCode int
	Messages   []string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("submission rejected (HTTP %d): %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// Form holds the user-editable field values.
type Form struct {
	Name    string
	Email   string
	Message string
}

// ContactClient submits contact forms and tracks the controller state
// machine: idle -> submitting -> success or error, with error -> submitting
// on retry and success -> idle via Reset.
type ContactClient struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.Mutex
	state  State
	errs   []string
	result string
}

// NewContactClient creates a client for the given base URL. A nil
// httpClient gets a default with a sane timeout.
func NewContactClient(baseURL string, httpClient *http.Client) *ContactClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &ContactClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		state:      StateIdle,
	}
}

// State returns the current controller state.
func (c *ContactClient) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Errors returns the messages to display after a failed submission.
func (c *ContactClient) Errors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.errs...)
}

// Message returns the server's success message after a successful
// submission.
func (c *ContactClient) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Reset returns the controller to idle so another message can be submitted.
func (c *ContactClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	c.errs = nil
	c.result = ""
}

// Submit sends the form. Only one submission may be in flight; concurrent
// calls get ErrSubmissionInFlight. Transport failures surface as a generic
// network-error state, server rejections as a RejectionError carrying the
// response's message list.
func (c *ContactClient) Submit(ctx context.Context, form Form) error {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	c.state = StateSubmitting
	c.errs = nil
	c.result = ""
	c.mu.Unlock()

	body, err := json.Marshal(types.ContactRequest{
		Name:    form.Name,
		Email:   form.Email,
		Message: form.Message,
	})
	if err != nil {
		c.fail([]string{MsgNetworkError})
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/contact", bytes.NewReader(body))
	if err != nil {
		c.fail([]string{MsgNetworkError})
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.fail([]string{MsgNetworkError})
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	var out types.ContactResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.fail([]string{MsgNetworkError})
		return err
	}

	if !out.Success {
		msgs := out.Errors
		if len(msgs) == 0 {
			msgs = []string{MsgNetworkError}
		}
		c.fail(msgs)
		return &RejectionError{StatusCode: resp.StatusCode, Messages: msgs}
	}

	c.mu.Lock()
	c.state = StateSuccess
	c.result = out.Message
	c.mu.Unlock()
	return nil
}

func (c *ContactClient) fail(msgs []string) {
	c.mu.Lock()
	c.state = StateError
	c.errs = msgs
	c.mu.Unlock()
}
