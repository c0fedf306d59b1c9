package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vintry/tastingd/internal/adapters/shopify"
	"github.com/vintry/tastingd/internal/domain/trust"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// NewKind tags a sentinel with the failing operation.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags a sentinel with the failing operation and its cause.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %v", op, kind, err)
}

// statusFor maps error kinds to response codes: auth failures 401,
// validation failures 400, everything else (remote included) 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, trust.ErrUnauthorized), errors.Is(err, trust.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, shopify.ErrRemote):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
