package errors

import "errors"

// Transport errors indicate the request did not produce a usable response.
var (
	// ErrTransport indicates the HTTP request failed before a response was received.
	ErrTransport = errors.New("request failed")

	// ErrDecode indicates the response body was not valid JSON.
	ErrDecode = errors.New("malformed response body")

	// ErrInvalidAddress indicates the request address is empty or not an absolute URL.
	ErrInvalidAddress = errors.New("invalid request address")
)

// API errors indicate the server answered but did not complete the action.
var (
	// ErrServerError indicates the server kept failing with an internal error.
	ErrServerError = errors.New("server error")

	// ErrValidation indicates the server rejected the request parameters.
	ErrValidation = errors.New("request rejected by server")

	// ErrSecretExpired indicates the secret has expired, been deleted or already been read.
	ErrSecretExpired = errors.New("secret expired or already read")

	// ErrInvalidPassphrase indicates the passphrase did not decrypt the secret.
	ErrInvalidPassphrase = errors.New("invalid passphrase")

	// ErrUnexpectedStatus indicates the response carried a status this client does not know.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Input errors indicate values rejected locally before any request is sent.
var (
	// ErrEmptySecret indicates no secret was provided.
	ErrEmptySecret = errors.New("missing a secret to encrypt")

	// ErrSecretTooLong indicates the secret exceeds the maximum length.
	ErrSecretTooLong = errors.New("secret is too long")

	// ErrMissingPassphrase indicates no passphrase was provided.
	ErrMissingPassphrase = errors.New("missing a passphrase")

	// ErrWeakPassphrase indicates the passphrase does not meet the strength rules.
	ErrWeakPassphrase = errors.New("passphrase too weak")

	// ErrInvalidDays indicates the expiration is outside the accepted range.
	ErrInvalidDays = errors.New("invalid number of days")

	// ErrInvalidTries indicates the number of tries is outside the accepted range.
	ErrInvalidTries = errors.New("invalid number of tries")

	// ErrMissingSlug indicates no secret link or slug was provided.
	ErrMissingSlug = errors.New("missing a secret link")
)

// Local state errors indicate issues with files managed by the client.
var (
	// ErrNoHistory indicates no history file exists yet.
	ErrNoHistory = errors.New("no history found")

	// ErrConfigExists indicates a config file is already present.
	ErrConfigExists = errors.New("configuration already exists")

	// ErrInvalidConfig indicates the configuration is malformed or holds bad values.
	ErrInvalidConfig = errors.New("configuration is invalid")
)
