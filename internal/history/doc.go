// Package history records the secrets created from this machine.
//
// Entries are appended to a JSON Lines file under the user data directory
// ($XDG_DATA_HOME/shhh/history.jsonl). Only the share link and its metadata
// are stored, never the secret or the passphrase.
//
// Recording is best effort: a failure to write the log never fails the
// create operation that triggered it.
//
// # Example Entry
//
//	{"id":"…","ts":"2026-10-19T10:00:00.000000Z","link":"https://host/secret/abc","expires_on":"2026-10-22 at 10:00 UTC","days":3,"tries":5}
package history
