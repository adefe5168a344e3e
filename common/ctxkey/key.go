package ctxkey

const (
	// RequestId is a per-request unique identifier, also echoed as a response header.
	// Set in: middleware.RequestId.
	// Read in: middleware.AbortWithError to tag error messages.
	RequestId = "X-Testgen-Request-Id"

	// Credential is the bearer token resolved for outbound GitHub calls.
	// Set in: middleware.Credential, never empty once set.
	// Read in: controllers that talk to the code host.
	Credential = "credential"

	// OAuthState is the session key holding the state parameter of an in-flight OAuth consent.
	// Set in: controller.GitHubAuth. Read and cleared in: controller.GitHubCallback.
	OAuthState = "oauth_state"
)
