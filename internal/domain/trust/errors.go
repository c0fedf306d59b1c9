package trust

import "errors"

// Sentinel kinds for verification failures.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotLoggedIn  = errors.New("customer not logged in")
)
