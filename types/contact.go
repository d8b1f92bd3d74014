package types

// Field constraints enforced by the content validator. Lengths are measured
// in runes after trimming surrounding whitespace.
const (
	NameMinLength    = 2
	NameMaxLength    = 100
	MessageMinLength = 10
	MessageMaxLength = 5000
)

// ContactRequest is the wire payload of a contact form submission. Website is
// a honeypot: the frontend hides it from humans via styling, so any value in
// it marks the request as automated traffic.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Website string `json:"website,omitempty"`
}

// ContactResponse is the structured response of the contact endpoint. Message
// is set on success, Errors on failure; the two are mutually exclusive.
type ContactResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// MethodNotAllowedResponse is returned for unsupported HTTP methods on the
// contact endpoint.
type MethodNotAllowedResponse struct {
	Error string `json:"error"`
}
