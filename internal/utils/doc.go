// Package utils provides shared helpers for the shhh client.
//
// # String Utilities
//
//   - SlugFromLink: extracts a secret slug from a /secret/<slug> or /r/<slug> link
//   - NormalizeNewlines: rewrites CRLF and CR line breaks as LF
//
// # I/O Utilities
//
//   - ReadStdin: returns piped standard input without its final line break
//
// # Terminal Utilities
//
//   - ReadPassphrase: prompts on stdin without echoing input
//   - ReadPassphraseFromTTY: prompts on the controlling terminal when stdin is piped
//   - IsTerminal: checks if stdin is a terminal
package utils
