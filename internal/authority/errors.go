package authority

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is wrapped when the authority answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status from authority")
	// ErrUnsuccessful is returned when the envelope reports success=false without a message.
	ErrUnsuccessful = errors.New("authority reported failure")
	// ErrMissingToken is returned when a successful login carries no token.
	ErrMissingToken = errors.New("login response carried no token")
	// ErrMissingData is returned when a successful response carries no payload.
	ErrMissingData = errors.New("response carried no data")
)

// LoginError carries the authority's message for a rejected login. The
// message is shown to the user verbatim.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login rejected: %s", e.Message)
}
