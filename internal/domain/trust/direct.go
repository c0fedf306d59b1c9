package trust

import (
	"context"
	"fmt"
	"strings"
)

// EmailSource resolves a customer's on-file email. Implemented by the
// Shopify client; kept narrow so tests can stub it.
type EmailSource interface {
	CustomerEmail(ctx context.Context, customerID string) (string, error)
}

// DirectVerifier validates requests sent straight from the storefront:
// the declared Origin must be allow-listed and the claimed customer id
// must resolve to the supplied email.
type DirectVerifier struct {
	origins map[string]struct{}
	emails  EmailSource
}

// NewDirectVerifier creates a verifier for the given origin allow-list.
func NewDirectVerifier(allowedOrigins []string, emails EmailSource) *DirectVerifier {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		if o != "" {
			origins[o] = struct{}{}
		}
	}
	return &DirectVerifier{origins: origins, emails: emails}
}

// CheckOrigin rejects origins outside the allow-list. It runs before any
// payload parsing or remote call.
func (v *DirectVerifier) CheckOrigin(origin string) error {
	if _, ok := v.origins[strings.TrimSpace(origin)]; !ok {
		return fmt.Errorf("origin not allowed: %w", ErrUnauthorized)
	}
	return nil
}

// VerifyIdentity confirms the claimed customer id owns the supplied email.
// The on-file email is compared case-insensitively; a customer without an
// email on file always fails. Remote failures pass through unwrapped so the
// handler maps them to a remote error, not an auth error.
func (v *DirectVerifier) VerifyIdentity(ctx context.Context, customerID, customerEmail string) error {
	onFile, err := v.emails.CustomerEmail(ctx, customerID)
	if err != nil {
		return err
	}
	if onFile == "" || !strings.EqualFold(onFile, customerEmail) {
		return fmt.Errorf("customer verification failed: %w", ErrUnauthorized)
	}
	return nil
}
