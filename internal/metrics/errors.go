package metrics

import (
	"errors"
	"fmt"
)

// ErrNoData reports that the vendor returned a well-formed response with no
// entries for the requested date. Callers treat it as an absent record, not
// a failure.
var ErrNoData = errors.New("no data for date")

// AuthError reports a rejected token. The client layer performs exactly one
// refresh-and-retry on it during connection; after that it is fatal.
type AuthError struct {
	Vendor string
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authorization rejected: %v", e.Vendor, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TransportError reports a network, HTTP or decode failure talking to a
// vendor API.
type TransportError struct {
	Vendor string
	Op     string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Vendor, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
