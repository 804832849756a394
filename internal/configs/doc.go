// Package configs manages the shhh client configuration.
//
// Configuration is stored in TOML format at $XDG_CONFIG_HOME/shhh/config.toml
// (os.UserConfigDir). A missing file is not an error: defaults are used.
//
// # Sections
//
// The [server] section describes how to reach the API:
//   - url: base address of the shhh server
//   - retries, backoff_ms: retry budget for HTTP 500 answers
//   - timeout_seconds: upper bound for one action including its retries
//   - detached_retries: fire-and-forget retries instead of chained ones
//
// The [secrets] section holds defaults for new secrets:
//   - days, tries, max_length, haveibeenpwned
//
// # Environment Overrides
//
// SHHH_HOST replaces server.url and SHHH_RETRIES replaces server.retries.
// Command-line flags win over both.
//
// # Settings
//
// UserShhhSettings holds the paths of the config file and the data
// directory (history log). Tests swap it for temporary directories.
package configs
