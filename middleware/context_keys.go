package middleware

const (
	// RequestIDKey is the gin context key holding the request ID.
	RequestIDKey = "request_id"
	// ClientIPKey is the gin context key holding the resolved client IP,
	// set by the rate limit middleware so the handler logs the same
	// identity the limiter counted.
	ClientIPKey = "client_ip"
)
