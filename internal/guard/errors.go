package guard

import "errors"

// Reasons a mount ends Unauthenticated. Every one of them leads to the same
// redirect to the login page; only ErrNoSession skips clearing the store.
var (
	ErrNoSession           = errors.New("no session token stored")
	ErrSessionRejected     = errors.New("session rejected by authority")
	ErrSessionUnverifiable = errors.New("session could not be verified")
	ErrDataFetchFailed     = errors.New("protected data fetch failed")
)
