package githost

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Laisky/errors/v2"
	"github.com/google/go-github/v72/github"
)

// HostAPIError is any non-2xx answer from the code host. Status and Body are the upstream
// values, untouched.
type HostAPIError struct {
	Status int
	Body   string
}

func (e *HostAPIError) Error() string {
	return fmt.Sprintf("github api error: status %d: %s", e.Status, e.Body)
}

// Unauthorized reports whether the code host rejected the credential.
func (e *HostAPIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// AsHostAPIError unwraps err into a *HostAPIError when it carries one.
func AsHostAPIError(err error) (*HostAPIError, bool) {
	var hostErr *HostAPIError
	if errors.As(err, &hostErr) {
		return hostErr, true
	}
	return nil, false
}

// wrapError normalizes a go-github failure. Upstream answers become *HostAPIError, transport
// failures are wrapped with op.
func wrapError(resp *github.Response, err error, op string) error {
	if err == nil {
		return nil
	}
	if resp == nil || resp.Response == nil {
		return errors.Wrap(err, op)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return errors.Wrap(err, op)
	}

	return &HostAPIError{
		Status: resp.StatusCode,
		Body:   responseBody(resp.Response, err),
	}
}

// responseBody reads the upstream error body. go-github re-populates it after decoding the
// error, the decoded message is the fallback when it is gone.
func responseBody(resp *http.Response, err error) string {
	if resp.Body != nil {
		if data, readErr := io.ReadAll(resp.Body); readErr == nil && len(data) > 0 {
			return string(data)
		}
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Message != "" {
		return ghErr.Message
	}
	return http.StatusText(resp.StatusCode)
}
