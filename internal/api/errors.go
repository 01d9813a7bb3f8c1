package api

import "errors"

// Kind classifies a failed API call for store-level policy decisions.
type Kind int

const (
	// KindNetwork covers transport failures: DNS, refused connections, timeouts.
	KindNetwork Kind = iota
	// KindServer covers non-2xx responses and malformed payloads.
	KindServer
	// KindAuth covers 401/403 responses, which may invalidate a session.
	KindAuth
)

// Error is the normalized failure returned by every client call. Message is
// always safe to surface to the user; the raw transport error, if any, is
// wrapped underneath.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsAuth reports whether the error is an authentication-class failure.
func IsAuth(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuth
}

// Message extracts the normalized message from an API error, falling back to
// the supplied default for anything else.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
