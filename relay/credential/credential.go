// Package credential decides which access token authorizes a request to the code host.
package credential

import (
	"strings"

	"github.com/Laisky/errors/v2"
)

// ErrUnauthenticated is returned when neither a service-wide token nor a bearer header is available.
var ErrUnauthenticated = errors.New("no authentication provided")

// Resolver picks the credential for outbound code-host calls.
//
// A configured StaticToken always wins, even over a caller-supplied header. It is meant
// for single-operator deployments.
type Resolver struct {
	StaticToken string
}

// Resolve returns the credential for a request carrying the given Authorization header value.
// The returned token is never empty when err is nil. No format validation is done here; the
// first code-host call decides whether the token is any good.
func (r Resolver) Resolve(authorization string) (string, error) {
	if token := strings.TrimSpace(r.StaticToken); token != "" {
		return token, nil
	}

	if token, ok := BearerToken(authorization); ok {
		return token, nil
	}

	return "", ErrUnauthenticated
}

// BearerToken extracts the token of an `Authorization: Bearer <token>` header value.
// The scheme is matched case-insensitively.
func BearerToken(authorization string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorization), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
