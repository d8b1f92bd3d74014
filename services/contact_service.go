package services

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/anxforever/portfolio-api/errors"
	"github.com/anxforever/portfolio-api/logger"
	"github.com/anxforever/portfolio-api/types"
	"github.com/prometheus/client_golang/prometheus"
)

// Permissive on purpose: one non-space local part, one non-space domain with
// a dot. Full RFC 5322 parsing buys nothing for a contact form.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validation messages, in field order. The frontend renders these verbatim.
const (
	MsgNameRequired    = "Please provide your name"
	MsgNameTooShort    = "Name must be at least 2 characters"
	MsgNameTooLong     = "Name must not exceed 100 characters"
	MsgEmailRequired   = "Please provide your email address"
	MsgEmailInvalid    = "Please provide a valid email address"
	MsgMessageRequired = "Please provide a message"
	MsgMessageTooShort = "Message must be at least 10 characters"
	MsgMessageTooLong  = "Message must not exceed 5000 characters"

	MsgSubmissionAccepted = "Message sent successfully! We'll get back to you soon."
)

// ValidationResult is the outcome of content validation. Errors preserves
// field order and collects every violated constraint, not just the first.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

type ContactMetrics struct {
	received prometheus.Counter
	accepted prometheus.Counter
	rejected *prometheus.CounterVec
}

// Rejection reasons recorded on the contact_rejections_total counter.
const (
	RejectionMalformed  = "malformed"
	RejectionValidation = "validation"
	RejectionHoneypot   = "honeypot"
)

// ContactService validates contact submissions and emits the redacted
// submission record. Forwarding by email is optional; a nil EmailService
// disables it.
type ContactService struct {
	email   *EmailService
	metrics *ContactMetrics
}

func NewContactService(email *EmailService) *ContactService {
	return NewContactServiceWithRegistry(email, prometheus.DefaultRegisterer)
}

func NewContactServiceWithRegistry(email *EmailService, reg prometheus.Registerer) *ContactService {
	metrics := &ContactMetrics{
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_contact_submissions_received_total",
			Help: "Total number of contact submissions reaching the handler",
		}),
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_contact_submissions_accepted_total",
			Help: "Total number of contact submissions accepted",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_contact_rejections_total",
			Help: "Total number of rejected contact submissions by reason",
		}, []string{"reason"}),
	}

	reg.MustRegister(metrics.received)
	reg.MustRegister(metrics.accepted)
	reg.MustRegister(metrics.rejected)

	return &ContactService{
		email:   email,
		metrics: metrics,
	}
}

// RecordReceived counts a submission reaching the handler.
func (s *ContactService) RecordReceived() {
	s.metrics.received.Inc()
}

// RecordRejection counts a rejected submission by reason.
func (s *ContactService) RecordRejection(reason string) {
	s.metrics.rejected.WithLabelValues(reason).Inc()
}

// HoneypotTripped reports whether the hidden website field carries a value.
// Automated form fillers populate every field they find; humans never see
// this one.
func HoneypotTripped(payload map[string]any) bool {
	v, ok := payload["website"]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		// A non-string value in a field no human can see is automated
		// traffic too.
		return v != nil
	}
	return strings.TrimSpace(s) != ""
}

// ValidatePayload enforces the contact request field constraints over an
// untyped payload. A nil payload yields a single generic error; otherwise
// each field is checked independently and every violation is collected.
// Lengths are measured in runes after trimming.
func (s *ContactService) ValidatePayload(payload map[string]any) ValidationResult {
	if payload == nil {
		return ValidationResult{Valid: false, Errors: []string{apperrors.MsgInvalidPayload}}
	}

	var errs []string

	if name, ok := stringField(payload, "name"); !ok || name == "" {
		errs = append(errs, MsgNameRequired)
	} else if utf8.RuneCountInString(name) < types.NameMinLength {
		errs = append(errs, MsgNameTooShort)
	} else if utf8.RuneCountInString(name) > types.NameMaxLength {
		errs = append(errs, MsgNameTooLong)
	}

	if email, ok := stringField(payload, "email"); !ok || email == "" {
		errs = append(errs, MsgEmailRequired)
	} else if !emailPattern.MatchString(email) {
		errs = append(errs, MsgEmailInvalid)
	}

	if message, ok := stringField(payload, "message"); !ok || message == "" {
		errs = append(errs, MsgMessageRequired)
	} else if utf8.RuneCountInString(message) < types.MessageMinLength {
		errs = append(errs, MsgMessageTooShort)
	} else if utf8.RuneCountInString(message) > types.MessageMaxLength {
		errs = append(errs, MsgMessageTooLong)
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// stringField extracts a trimmed string field from the payload. The second
// return is false when the field is absent or not a string.
func stringField(payload map[string]any, key string) (string, bool) {
	v, ok := payload[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// Submit records an accepted submission. The only durable outcome is one
// redacted log line; raw name, email, and message content never reach the
// logs. When forwarding is configured the submission is also handed to the
// email service best-effort: a send failure is logged but never surfaces to
// the caller, the success contract already holds.
func (s *ContactService) Submit(ctx context.Context, req types.ContactRequest, clientIP string) {
	log := logger.GetLogger()

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)

	log.Infow("Contact submission received",
		"client_ip", clientIP,
		"name", logger.MaskName(name),
		"email", logger.MaskEmail(email),
		"message_length", utf8.RuneCountInString(message),
	)
	s.metrics.accepted.Inc()

	if s.email != nil {
		if err := s.email.ForwardSubmission(ctx, req); err != nil {
			log.Errorw("Failed to forward contact submission", "error", err)
		}
	}
}
