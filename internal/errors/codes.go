package errors

// Error code constants returned in response bodies.
// Format: CATEGORY_SPECIFIC_DETAIL; clients map these to their own copy.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // bearer token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or tampered token
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email
	AuthResetTokenInvalid  = "AUTH_RESET_TOKEN_INVALID" // bad/expired/reused reset token

	// Validation (VALIDATION_)
	ValidationInvalidInput     = "VALIDATION_INVALID_INPUT"
	ValidationRequired         = "VALIDATION_REQUIRED"
	ValidationPasswordMismatch = "VALIDATION_PASSWORD_MISMATCH"

	// Internal (INTERNAL_)
	InternalServerError = "INTERNAL_SERVER_ERROR"
)
