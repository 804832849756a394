package workflows

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/smallwat3r/shhh/internal/api"
	"github.com/smallwat3r/shhh/internal/history"
	"github.com/smallwat3r/shhh/internal/requester"
	"github.com/smallwat3r/shhh/internal/utils"
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// CreateOptions configures the create workflow.
type CreateOptions struct {
	// Secret is the text to share.
	Secret string

	// Passphrase is required to read the secret back.
	Passphrase string

	// Days the secret stays available. 0 uses the configured default.
	Days int

	// Tries is the number of wrong passphrases allowed. 0 uses the configured default.
	Tries int

	// HaveIBeenPwned asks the server to reject leaked passphrases.
	HaveIBeenPwned bool

	// Copy writes the share link to the system clipboard.
	Copy bool

	// Server overrides the configured server URL.
	Server string

	// Logger receives request diagnostics. Defaults to a quiet logger.
	Logger requester.Logger

	// Client sends the HTTP requests. Defaults to http.DefaultClient.
	Client requester.Doer
}

// CreateResult contains the outcome of a create operation.
type CreateResult struct {
	// Link is the share link of the new secret.
	Link string

	// ExpiresOn is the expiry as formatted by the server.
	ExpiresOn string

	// Days and Tries are the values actually sent.
	Days  int
	Tries int

	// Attempts is the number of requests sent, retries included.
	Attempts int

	// Copied is true when the link was written to the clipboard.
	Copied bool

	// CopyErr is set when the clipboard could not be written.
	CopyErr error

	// HistoryErr is set when the link could not be recorded locally.
	HistoryErr error
}

// Create validates the input, stores the secret on the server and records
// the link in the history log.
//
// Returns ErrEmptySecret, ErrSecretTooLong, ErrMissingPassphrase,
// ErrWeakPassphrase, ErrInvalidDays or ErrInvalidTries for bad input.
// Returns ErrValidation if the server rejects the request.
// Returns ErrTransport, ErrDecode or ErrServerError if the server could not be reached.
func Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	s, err := newSession(opts.Server, opts.Logger, opts.Client)
	if err != nil {
		return nil, err
	}

	params := api.CreateParams{
		Secret:         utils.NormalizeNewlines(opts.Secret),
		Passphrase:     opts.Passphrase,
		Days:           opts.Days,
		Tries:          opts.Tries,
		HaveIBeenPwned: opts.HaveIBeenPwned || s.config.Secrets.HaveIBeenPwned,
	}
	if params.Days == 0 {
		params.Days = s.config.Secrets.Days
	}
	if params.Tries == 0 {
		params.Tries = s.config.Secrets.Tries
	}

	if err := api.ValidateCreate(params, s.config.Secrets.MaxLength); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	defer s.requester.Wait()

	resp, out, err := s.client.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating secret: %w", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	result := &CreateResult{
		Link:      resp.Link,
		ExpiresOn: resp.ExpiresOn,
		Days:      params.Days,
		Tries:     params.Tries,
		Attempts:  out.Attempts,
	}

	result.HistoryErr = history.Record(history.Entry{
		Server:    s.config.Server.URL,
		Link:      resp.Link,
		ExpiresOn: resp.ExpiresOn,
		Days:      params.Days,
		Tries:     params.Tries,
	})

	if opts.Copy {
		if err := writeClipboard(resp.Link); err != nil {
			result.CopyErr = err
		} else {
			result.Copied = true
		}
	}

	return result, nil
}
