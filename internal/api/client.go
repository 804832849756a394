package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	kerrors "github.com/smallwat3r/shhh/internal/errors"
	"github.com/smallwat3r/shhh/internal/requester"
)

const (
	createPath = "/api/c"
	readPath   = "/api/r"
)

// Client talks to one shhh server.
type Client struct {
	baseURL   string
	requester *requester.Requester
	policy    requester.Policy
}

// NewClient returns a client for the server at baseURL. Every call starts
// from a fresh copy of policy.
func NewClient(baseURL string, r *requester.Requester, policy requester.Policy) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		requester: r,
		policy:    policy,
	}
}

// Create stores a new secret. The returned response carries the share link on
// success; use its Err method to check the API status.
func (c *Client) Create(ctx context.Context, params CreateParams) (*CreateResponse, requester.Outcome, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, requester.Outcome{}, fmt.Errorf("encoding create request: %w", err)
	}

	out := c.requester.Send(ctx, requester.Request{
		Address: c.baseURL + createPath,
		Config: requester.Config{
			Method:  http.MethodPost,
			Headers: c.headers(true),
			Body:    body,
			Cache:   "no-store",
		},
	}, c.policy)

	var env envelope[CreateResponse]
	if err := decodeOutcome(out, &env); err != nil {
		return nil, out, err
	}
	if out.Exhausted {
		return nil, out, exhaustedError(out, env.Response.Details.String())
	}
	if env.Response.Status == "" {
		return nil, out, missingStatus(out)
	}
	return &env.Response, out, nil
}

// Read reveals the secret behind slug. The server deletes it once read.
func (c *Client) Read(ctx context.Context, slug, passphrase string) (*ReadResponse, requester.Outcome, error) {
	query := url.Values{}
	query.Set("slug", slug)
	query.Set("passphrase", passphrase)

	out := c.requester.Send(ctx, requester.Request{
		Address: c.baseURL + readPath + "?" + query.Encode(),
		Config: requester.Config{
			Method:  http.MethodGet,
			Headers: c.headers(false),
			Cache:   "no-store",
		},
	}, c.policy)

	var env envelope[ReadResponse]
	if err := decodeOutcome(out, &env); err != nil {
		return nil, out, err
	}
	if out.Exhausted {
		return nil, out, exhaustedError(out, env.Response.message())
	}
	if env.Response.Status == "" {
		return nil, out, missingStatus(out)
	}
	return &env.Response, out, nil
}

func (c *Client) headers(withBody bool) map[string]string {
	h := map[string]string{
		"Accept":       "application/json",
		"X-Request-ID": uuid.NewString(),
	}
	if withBody {
		h["Content-Type"] = "application/json"
	}
	return h
}

func decodeOutcome[T any](out requester.Outcome, env *envelope[T]) error {
	if !out.OK() {
		return out.Err
	}
	if err := out.Decode(env); err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrDecode, err)
	}
	return nil
}

// exhaustedError reports a server that kept answering 500 until no retries
// were left. The status in its body, usually "error", does not describe the request.
func exhaustedError(out requester.Outcome, detail string) error {
	err := fmt.Errorf("%w: status %d after %d attempts", kerrors.ErrServerError, out.Status, out.Attempts)
	if detail != "" {
		err = fmt.Errorf("%w: %s", err, detail)
	}
	return err
}

// missingStatus explains a response without a status. A 5xx answer is
// reported as ErrServerError.
func missingStatus(out requester.Outcome) error {
	if out.Status >= http.StatusInternalServerError {
		return exhaustedError(out, "")
	}
	return fmt.Errorf("%w: response has no status (HTTP %d)", kerrors.ErrUnexpectedStatus, out.Status)
}
