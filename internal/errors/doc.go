// Package errors provides typed error values for the shhh client.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Transport errors: the request never produced a usable response
//     (ErrTransport, ErrDecode, ErrInvalidAddress)
//   - API errors: the server answered but refused the action
//     (ErrServerError, ErrValidation, ErrSecretExpired, ErrInvalidPassphrase)
//   - Input errors: rejected locally before any request is sent
//     (ErrWeakPassphrase, ErrSecretTooLong, ErrInvalidDays, ...)
//   - Local state errors: config and history files (ErrNoHistory, ErrConfigExists)
//
// # Usage
//
// Return errors from internal packages:
//
//	if slug == "" {
//	    return nil, errors.ErrMissingSlug
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Read(ctx, opts)
//	if errors.Is(err, kerrors.ErrSecretExpired) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading secret %s: %w", slug, errors.ErrInvalidPassphrase)
package errors
