package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	kerrors "github.com/smallwat3r/shhh/internal/errors"
	logger "github.com/smallwat3r/shhh/internal/logging"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Logger is the diagnostic channel transport and decode failures are reported to.
type Logger interface {
	Debugf(msg string, args ...any)
	Warnf(msg string, args ...any)
	Errorf(msg string, args ...any)
}

// Option configures a Requester.
type Option func(*Requester)

// WithClient sets the HTTP client used for every attempt.
func WithClient(d Doer) Option {
	return func(r *Requester) {
		r.client = d
	}
}

// WithSleeper replaces the backoff wait. Tests use it to record delays.
func WithSleeper(s Sleeper) Option {
	return func(r *Requester) {
		r.sleep = s
	}
}

// WithLogger sets the diagnostic channel.
func WithLogger(l Logger) Option {
	return func(r *Requester) {
		r.log = l
	}
}

// WithDetachedRetries makes retries fire-and-forget: the caller gets the
// first attempt's body and the retry chain runs in the background.
func WithDetachedRetries() Option {
	return func(r *Requester) {
		r.detached = true
	}
}

// Requester sends requests and resubmits them on HTTP 500.
type Requester struct {
	client   Doer
	sleep    Sleeper
	log      Logger
	detached bool

	pending sync.WaitGroup
}

// New returns a Requester with the given options applied.
func New(opts ...Option) *Requester {
	r := &Requester{
		client: http.DefaultClient,
		sleep:  sleepContext,
		log:    logger.Logger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do sends the request described by address and cfg, retrying up to
// retriesRemaining times with a backoff that starts at backoff and doubles.
func (r *Requester) Do(ctx context.Context, address string, cfg Config, retriesRemaining int, backoff time.Duration) Outcome {
	return r.Send(ctx, Request{Address: address, Config: cfg}, Policy{
		RetriesRemaining: retriesRemaining,
		Backoff:          backoff,
	})
}

// Send is Do with the request and policy already assembled.
func (r *Requester) Send(ctx context.Context, req Request, policy Policy) Outcome {
	if err := validateAddress(req.Address); err != nil {
		r.log.Errorf("Refusing to send request: %v", err)
		return Outcome{Kind: OutcomeTerminal, Err: err}
	}
	return r.attempt(ctx, req, policy.normalize(), 1)
}

// Wait blocks until every detached retry chain has finished.
func (r *Requester) Wait() {
	r.pending.Wait()
}

func (r *Requester) attempt(ctx context.Context, req Request, policy Policy, n int) Outcome {
	r.log.Debugf("Attempt %d: %s %s (retries left: %d)", n, method(req.Config), req.Address, policy.RetriesRemaining)

	resp, err := r.roundTrip(ctx, req)
	if err != nil {
		r.log.Errorf("Request to %s failed: %v", req.Address, err)
		return Outcome{
			Kind:     OutcomeTerminal,
			Attempts: n,
			Err:      fmt.Errorf("%w: %w", kerrors.ErrTransport, err),
		}
	}

	retry := policy.CanRetry(resp.StatusCode)

	if retry && !r.detached {
		drain(resp)
		r.log.Warnf("Server answered %d, retrying in %s", resp.StatusCode, policy.Backoff)
		if err := r.sleep(ctx, policy.Backoff); err != nil {
			return Outcome{Kind: OutcomeTerminal, Status: resp.StatusCode, Attempts: n, Err: err}
		}
		return r.attempt(ctx, req, policy.Next(), n+1)
	}

	if retry {
		r.schedule(ctx, req, policy, n)
	}

	data, err := decode(resp)
	if err != nil {
		r.log.Errorf("Decoding response from %s failed: %v", req.Address, err)
		return Outcome{Kind: OutcomeTerminal, Status: resp.StatusCode, Attempts: n, Err: err}
	}

	out := Outcome{
		Kind:     OutcomeSuccess,
		Status:   resp.StatusCode,
		Data:     data,
		Attempts: n,
	}
	if retry {
		out.Kind = OutcomeRetryable
	} else if resp.StatusCode == http.StatusInternalServerError {
		out.Exhausted = true
	}
	return out
}

// schedule runs the next attempt in the background after the policy backoff.
func (r *Requester) schedule(ctx context.Context, req Request, policy Policy, n int) {
	r.log.Warnf("Server answered %d, retrying in %s", http.StatusInternalServerError, policy.Backoff)
	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		if err := r.sleep(ctx, policy.Backoff); err != nil {
			r.log.Debugf("Dropping scheduled retry: %v", err)
			return
		}
		r.attempt(ctx, req, policy.Next(), n+1)
	}()
}

func (r *Requester) roundTrip(ctx context.Context, req Request) (*http.Response, error) {
	var body io.Reader
	if req.Config.Body != nil {
		body = bytes.NewReader(req.Config.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method(req.Config), req.Address, body)
	if err != nil {
		return nil, err
	}
	for k, v := range req.Config.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.Config.Cache != "" && httpReq.Header.Get("Cache-Control") == "" {
		httpReq.Header.Set("Cache-Control", req.Config.Cache)
	}

	return r.client.Do(httpReq)
}

func decode(resp *http.Response) (json.RawMessage, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrDecode, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: status %d, %d bytes", kerrors.ErrDecode, resp.StatusCode, len(data))
	}
	return json.RawMessage(data), nil
}

// drain discards a bounded amount of the body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.CopyN(io.Discard, resp.Body, 4096)
	resp.Body.Close()
}

func method(cfg Config) string {
	if cfg.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(cfg.Method)
}

func validateAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("%w: empty address", kerrors.ErrInvalidAddress)
	}
	u, err := url.Parse(address)
	if err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrInvalidAddress, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute URL", kerrors.ErrInvalidAddress, address)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
