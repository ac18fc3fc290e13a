package flowise

import (
	"errors"
	"fmt"
)

// Kind classifies a failed remote call.
type Kind string

const (
	// KindStatus marks a non-2xx HTTP response.
	KindStatus Kind = "status"
	// KindNetwork marks a transport-level failure.
	KindNetwork Kind = "network"
	// KindTimeout marks a call that expired before a response arrived.
	KindTimeout Kind = "timeout"
	// KindDecode marks a malformed response payload.
	KindDecode Kind = "decode"
)

// Error describes a failed Flowise API call. StatusCode is only populated for
// KindStatus errors; Message carries the remote error payload when one was
// returned.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("flowise: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("flowise: %s: %s", e.Kind, e.Message)
}

// IsTimeout reports whether err represents an expired remote call.
func IsTimeout(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindTimeout
}
