package common

// Durable storage keys of the session store.
const (
	UserStorageKey  = "user"
	TokenStorageKey = "token"
)

// RequestIDHeaderName is set on every outbound REST call.
const RequestIDHeaderName = "X-Request-ID"
