package api

import (
	"encoding/json"
	"fmt"

	kerrors "github.com/smallwat3r/shhh/internal/errors"
	"github.com/smallwat3r/shhh/internal/requester"
)

// Status is the response status reported by the API.
type Status string

const (
	StatusCreated Status = "created"
	StatusSuccess Status = "success"
	StatusExpired Status = "expired"
	StatusInvalid Status = "invalid"
	StatusError   Status = "error"
)

// CreateParams are the fields of a create request.
type CreateParams struct {
	Secret         string `json:"secret"`
	Passphrase     string `json:"passphrase"`
	Days           int    `json:"days"`
	Tries          int    `json:"tries"`
	HaveIBeenPwned bool   `json:"haveibeenpwned"`
}

// CreateResponse is the body of a create answer.
type CreateResponse struct {
	Status    Status  `json:"status"`
	Link      string  `json:"link,omitempty"`
	ExpiresOn string  `json:"expires_on,omitempty"`
	Details   Details `json:"details,omitempty"`
}

// ReadResponse is the body of a read answer.
type ReadResponse struct {
	Status  Status  `json:"status"`
	Msg     string  `json:"msg,omitempty"`
	Details Details `json:"details,omitempty"`
}

type envelope[T any] struct {
	Response T `json:"response"`
}

// Details is the explanation attached to a response. The API sends either a
// plain message or an object of per-field validation messages.
type Details struct {
	Text   string
	Fields requester.FieldErrors
}

func (d *Details) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		d.Text = text
		return nil
	}

	var fields requester.FieldErrors
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("details: expected string or object: %w", err)
	}
	d.Fields = fields
	return nil
}

func (d Details) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// String renders the details as a single line.
func (d Details) String() string {
	if len(d.Fields) > 0 {
		return requester.Flatten(d.Fields)
	}
	return d.Text
}

// Err maps the response status to a sentinel error. A created secret yields nil.
func (r *CreateResponse) Err() error {
	switch r.Status {
	case StatusCreated:
		return nil
	case StatusError:
		return detailedError(kerrors.ErrValidation, r.Details.String())
	default:
		return fmt.Errorf("%w: %q", kerrors.ErrUnexpectedStatus, r.Status)
	}
}

// Err maps the response status to a sentinel error. A revealed secret yields nil.
func (r *ReadResponse) Err() error {
	switch r.Status {
	case StatusSuccess:
		return nil
	case StatusExpired:
		return detailedError(kerrors.ErrSecretExpired, r.message())
	case StatusInvalid:
		return detailedError(kerrors.ErrInvalidPassphrase, r.message())
	case StatusError:
		return detailedError(kerrors.ErrValidation, r.message())
	default:
		return fmt.Errorf("%w: %q", kerrors.ErrUnexpectedStatus, r.Status)
	}
}

func (r *ReadResponse) message() string {
	if r.Msg != "" {
		return r.Msg
	}
	return r.Details.String()
}

func detailedError(sentinel error, detail string) error {
	if detail == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}
