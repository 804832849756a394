package workflows

import (
	"context"
	"fmt"
	"html"

	"github.com/smallwat3r/shhh/internal/api"
	"github.com/smallwat3r/shhh/internal/requester"
	"github.com/smallwat3r/shhh/internal/utils"
)

// ReadOptions configures the read workflow.
type ReadOptions struct {
	// Link is a share link or a bare slug.
	Link string

	// Passphrase decrypts the secret.
	Passphrase string

	// Server overrides the configured server URL.
	Server string

	// Logger receives request diagnostics. Defaults to a quiet logger.
	Logger requester.Logger

	// Client sends the HTTP requests. Defaults to http.DefaultClient.
	Client requester.Doer
}

// ReadResult contains the outcome of a read operation.
type ReadResult struct {
	// Slug identifies the secret that was read.
	Slug string

	// Secret is the revealed text. The server deletes it after this read.
	Secret string

	// Attempts is the number of requests sent, retries included.
	Attempts int
}

// Read reveals the secret behind a link or slug.
//
// Returns ErrMissingSlug or ErrMissingPassphrase for bad input.
// Returns ErrSecretExpired if the secret is gone.
// Returns ErrInvalidPassphrase if the passphrase is wrong; the error text
// carries the server's remaining-tries message.
// Returns ErrTransport, ErrDecode or ErrServerError if the server could not be reached.
func Read(ctx context.Context, opts ReadOptions) (*ReadResult, error) {
	slug := utils.SlugFromLink(opts.Link)
	if err := api.ValidateRead(slug, opts.Passphrase); err != nil {
		return nil, err
	}

	s, err := newSession(opts.Server, opts.Logger, opts.Client)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	defer s.requester.Wait()

	resp, out, err := s.client.Read(ctx, slug, opts.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("reading secret: %w", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	return &ReadResult{
		Slug:     slug,
		Secret:   html.UnescapeString(resp.Msg),
		Attempts: out.Attempts,
	}, nil
}
