package errors

import "fmt"

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrMalformedEvent      = fmt.Errorf("malformed event")
	ErrUnknownChannel      = fmt.Errorf("unknown channel name")
	ErrAuthorizationDenied = fmt.Errorf("authorization denied")
	ErrTransportFailure    = fmt.Errorf("transport publish failed")
	ErrProfileNotFound     = fmt.Errorf("profile not found")
	ErrInvalidToken        = fmt.Errorf("invalid or expired token")
)
