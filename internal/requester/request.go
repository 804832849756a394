package requester

import (
	"net/http"
	"time"
)

const (
	// DefaultRetries is the number of resubmissions allowed after the first attempt.
	DefaultRetries = 10

	// DefaultBackoff is the wait before the first resubmission.
	DefaultBackoff = 250 * time.Millisecond
)

// Config is the configuration bag of a request. It is not interpreted beyond
// building the HTTP request.
type Config struct {
	// Method is the HTTP verb. Empty means GET.
	Method string

	// Headers are sent as-is on every attempt.
	Headers map[string]string

	// Body is the serialized payload, replayed on every attempt.
	Body []byte

	// Cache is a cache directive such as "no-store", sent as Cache-Control.
	Cache string
}

// Request pairs a target address with its configuration.
type Request struct {
	Address string
	Config  Config
}

// Policy is the retry budget for one attempt.
type Policy struct {
	RetriesRemaining int
	Backoff          time.Duration
}

// DefaultPolicy returns the policy used when the caller has no preference.
func DefaultPolicy() Policy {
	return Policy{RetriesRemaining: DefaultRetries, Backoff: DefaultBackoff}
}

// Next returns the policy for the following attempt.
func (p Policy) Next() Policy {
	return Policy{RetriesRemaining: p.RetriesRemaining - 1, Backoff: p.Backoff * 2}
}

// CanRetry reports whether a response with the given status should be resubmitted.
func (p Policy) CanRetry(status int) bool {
	return status == http.StatusInternalServerError && p.RetriesRemaining > 0
}

func (p Policy) normalize() Policy {
	if p.RetriesRemaining < 0 {
		p.RetriesRemaining = 0
	}
	if p.Backoff <= 0 {
		p.Backoff = DefaultBackoff
	}
	return p
}
