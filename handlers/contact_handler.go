package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/anxforever/portfolio-api/errors"
	"github.com/anxforever/portfolio-api/middleware"
	"github.com/anxforever/portfolio-api/services"
	"github.com/anxforever/portfolio-api/types"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles contact form submission endpoints.
type ContactHandler struct {
	contactService *services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// SubmitContact godoc
// @Summary      Submit a contact form message
// @Description  Validates and records a contact form submission
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      types.ContactRequest  true  "Submission payload"
// @Success      200   {object}  types.ContactResponse
// @Failure      400   {object}  types.ContactResponse
// @Failure      403   {object}  types.ContactResponse
// @Failure      429   {object}  types.ContactResponse
// @Failure      500   {object}  types.ContactResponse
// @Router       /api/contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	h.contactService.RecordReceived()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		_ = c.Error(apperrors.InternalServerError(err))
		return
	}

	// Decode in two steps to keep malformed JSON distinct from
	// parseable-but-invalid content.
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		h.contactService.RecordRejection(services.RejectionMalformed)
		_ = c.Error(apperrors.MalformedRequest(err))
		return
	}

	// JSON null, scalars, and arrays all fail the object assertion and fall
	// through to the validator's generic rejection.
	obj, _ := payload.(map[string]any)

	if services.HoneypotTripped(obj) {
		h.contactService.RecordRejection(services.RejectionHoneypot)
		_ = c.Error(apperrors.SilentRejection())
		return
	}

	if result := h.contactService.ValidatePayload(obj); !result.Valid {
		h.contactService.RecordRejection(services.RejectionValidation)
		_ = c.Error(apperrors.ValidationFailed(result.Errors))
		return
	}

	var req types.ContactRequest
	if err := json.Unmarshal(body, &req); err != nil {
		_ = c.Error(apperrors.InternalServerError(err))
		return
	}

	h.contactService.Submit(c.Request.Context(), req, clientIPFromContext(c))

	c.JSON(http.StatusOK, types.ContactResponse{
		Success: true,
		Message: services.MsgSubmissionAccepted,
	})
}

// MethodNotAllowed answers unsupported methods on the contact endpoint.
func (h *ContactHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, types.MethodNotAllowedResponse{
		Error: "This endpoint only supports POST requests",
	})
}

// clientIPFromContext prefers the identity the rate limiter counted so the
// submission log and the quota agree on who the client was.
func clientIPFromContext(c *gin.Context) string {
	if ip := c.GetString(middleware.ClientIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
