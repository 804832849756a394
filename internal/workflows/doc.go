// Package workflows provides high-level orchestration for shhh commands.
//
// Workflows coordinate configs, the API client, the history log and the
// clipboard to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns
// like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Loading configuration and applying overrides
//   - Validating input before anything is sent
//   - Calling the API with the configured retry policy
//   - Recording created links in the history log
//
// # Available Workflows
//
//   - Create: Stores a new secret and returns its share link
//   - Read: Reveals a secret from its link or slug
//   - History: Lists previously created links
//   - InitConfig: Writes the user configuration file
//   - ShowConfig: Loads the effective configuration
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package:
//
//	result, err := workflows.Read(ctx, opts)
//	if errors.Is(err, kerrors.ErrSecretExpired) {
//	    // Show user-friendly expiry message
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Cancelling it aborts the in-flight request and any pending retry.
package workflows
