// Package api is a typed client for the shhh HTTP API.
//
// Two endpoints are supported:
//
//	POST /api/c   create a secret  {secret, passphrase, days, tries, haveibeenpwned}
//	GET  /api/r   read a secret    ?slug=...&passphrase=...
//
// Both answer with a {"response": {...}} envelope whose status field says
// what happened. Requests go through the requester package, so HTTP 500
// answers are retried with exponential backoff.
//
// Inputs are validated locally with the same rules the server applies, so
// obviously bad requests never leave the machine.
package api
