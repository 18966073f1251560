// Package errors holds the stable error codes surfaced through the API.
package errors

// General
const (
	ErrInternalServer = "ERR_INTERNAL_SERVER"
	ErrInvalidParam   = "ERR_INVALID_PARAM"
	ErrValidation     = "ERR_VALIDATION"
)

// Account
const (
	ErrInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrInvalidToken       = "ERR_INVALID_TOKEN"
	ErrUserNotFound       = "ERR_USER_NOT_FOUND"
	ErrUserDisabled       = "ERR_USER_DISABLED"
	ErrEmailTaken         = "ERR_EMAIL_TAKEN"
)

// Files and shares
const (
	ErrNotFound      = "ERR_NOT_FOUND"
	ErrQuotaExceeded = "ERR_QUOTA_EXCEEDED"
	ErrLinkExpired   = "ERR_LINK_EXPIRED"
)
