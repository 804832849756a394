package requester

import (
	"encoding/json"
	"fmt"
)

// OutcomeKind tells how a request resolved.
type OutcomeKind int

const (
	OutcomeUnknown OutcomeKind = iota

	// OutcomeSuccess means a response arrived and its body decoded as JSON.
	OutcomeSuccess

	// OutcomeRetryable means the server answered 500 and a detached retry was
	// scheduled. Data still holds the decoded body of this attempt.
	OutcomeRetryable

	// OutcomeTerminal means no value was produced. Err says why.
	OutcomeTerminal
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetryable:
		return "retryable"
	case OutcomeTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Outcome is the result of a request and all of its chained retries.
type Outcome struct {
	Kind OutcomeKind

	// Status is the HTTP status of the last response, 0 if none arrived.
	Status int

	// Data is the decoded JSON body. Nil for terminal outcomes.
	Data json.RawMessage

	// Attempts counts the requests sent to produce this outcome.
	Attempts int

	// Exhausted is set when the server still answered 500 after the last retry.
	Exhausted bool

	Err error
}

// OK reports whether the outcome carries a decoded body.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess || o.Kind == OutcomeRetryable
}

// Decode unmarshals the response body into v.
func (o Outcome) Decode(v any) error {
	if !o.OK() {
		if o.Err != nil {
			return o.Err
		}
		return fmt.Errorf("no response body: outcome is %s", o.Kind)
	}
	return json.Unmarshal(o.Data, v)
}
