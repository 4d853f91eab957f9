package constants

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "pool_session"

	// SessionKeyUserID is the session key holding the authenticated user's ID.
	// The session never carries anything beyond this opaque ID.
	SessionKeyUserID = "user_id"

	// SessionKeyOAuthState holds the state nonce between the OAuth redirect
	// and the provider callback.
	SessionKeyOAuthState = "oauth_state"

	// ContextKeyPrincipal is the gin context key for the resolved user.
	ContextKeyPrincipal = "principal"

	// ContextKeyOrganizationID is the gin context key for the organization ID
	// the request has been authorized against.
	ContextKeyOrganizationID = "organization_id"

	// MinPasswordLength is the minimum accepted password length at signup.
	MinPasswordLength = 8

	// SlugMaxAttempts bounds the organization slug collision retry loop.
	SlugMaxAttempts = 5
)
