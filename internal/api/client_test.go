package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	kerrors "github.com/smallwat3r/shhh/internal/errors"
	"github.com/smallwat3r/shhh/internal/requester"
)

type silentLogger struct{}

func (silentLogger) Debugf(string, ...any) {}
func (silentLogger) Warnf(string, ...any)  {}
func (silentLogger) Errorf(string, ...any) {}

func noSleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r := requester.New(requester.WithSleeper(noSleep), requester.WithLogger(silentLogger{}))
	return NewClient(srv.URL+"/", r, requester.Policy{RetriesRemaining: 3, Backoff: time.Millisecond})
}

func TestCreateSendsParametersAndDecodesLink(t *testing.T) {
	var got CreateParams
	var method, contentType, cacheControl, requestID string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/c" {
			t.Errorf("Expected path /api/c, got %s", r.URL.Path)
		}
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		cacheControl = r.Header.Get("Cache-Control")
		requestID = r.Header.Get("X-Request-ID")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		_, _ = io.WriteString(w, `{"response":{"status":"created","details":"Secret successfully created.","link":"https://shhh.example.com/r/abc123","expires_on":"2026-10-22 at 10:00 UTC"}}`)
	})

	params := CreateParams{Secret: "db password", Passphrase: "Hunter2Hunter", Days: 3, Tries: 5, HaveIBeenPwned: true}
	resp, out, err := client.Create(context.Background(), params)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if got != params {
		t.Errorf("Server received %+v, want %+v", got, params)
	}
	if method != http.MethodPost {
		t.Errorf("Expected POST, got %s", method)
	}
	if contentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", contentType)
	}
	if cacheControl != "no-store" {
		t.Errorf("Expected no-store, got %q", cacheControl)
	}
	if len(requestID) != 36 {
		t.Errorf("Expected a UUID request ID, got %q", requestID)
	}
	if resp.Err() != nil {
		t.Errorf("Expected no error for created status, got %v", resp.Err())
	}
	if resp.Link != "https://shhh.example.com/r/abc123" {
		t.Errorf("Unexpected link %q", resp.Link)
	}
	if resp.ExpiresOn != "2026-10-22 at 10:00 UTC" {
		t.Errorf("Unexpected expiry %q", resp.ExpiresOn)
	}
	if out.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", out.Attempts)
	}
}

func TestCreateValidationErrorWithFieldMessages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"response":{"status":"error","details":{"passphrase":["Passphrase too weak."],"days":["The maximum number of days to keep the secret alive is 7."]}}}`)
	})

	resp, _, err := client.Create(context.Background(), CreateParams{Secret: "s", Passphrase: "p", Days: 9, Tries: 5})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	respErr := resp.Err()
	if !errors.Is(respErr, kerrors.ErrValidation) {
		t.Fatalf("Expected ErrValidation, got %v", respErr)
	}
	want := "Passphrase too weak / The maximum number of days to keep the secret alive is 7 "
	if resp.Details.String() != want {
		t.Errorf("Details = %q, want %q", resp.Details.String(), want)
	}
	if !strings.Contains(respErr.Error(), "Passphrase too weak") {
		t.Errorf("Expected details in error message, got %q", respErr.Error())
	}
}

func TestCreateRetriesServerErrors(t *testing.T) {
	var hits int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"response":{"status":"error","details":"An unexpected error has occurred, please try again."}}`)
			return
		}
		_, _ = io.WriteString(w, `{"response":{"status":"created","link":"https://x/r/s","expires_on":"soon"}}`)
	})

	resp, out, err := client.Create(context.Background(), CreateParams{Secret: "s", Passphrase: "Aa345678", Days: 1, Tries: 3})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.Status != StatusCreated {
		t.Errorf("Expected created after retry, got %q", resp.Status)
	}
	if out.Attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", out.Attempts)
	}
}

func TestReadStatuses(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		wantMsg string
	}{
		{"success", `{"response":{"status":"success","msg":"the secret"}}`, nil, "the secret"},
		{"expired", `{"response":{"status":"expired","msg":"Sorry, we can't find a secret, it has expired, been deleted or has already been read."}}`, kerrors.ErrSecretExpired, ""},
		{"invalid", `{"response":{"status":"invalid","msg":"Sorry, the passphrase is not valid. Number of tries remaining: 2"}}`, kerrors.ErrInvalidPassphrase, ""},
		{"error", `{"response":{"status":"error","details":{"slug":["Missing a secret link."]}}}`, kerrors.ErrValidation, ""},
		{"unknown", `{"response":{"status":"teapot"}}`, kerrors.ErrUnexpectedStatus, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			})

			resp, _, err := client.Read(context.Background(), "abc123", "Hunter2Hunter")
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}

			respErr := resp.Err()
			if tt.wantErr == nil && respErr != nil {
				t.Fatalf("Expected no error, got %v", respErr)
			}
			if tt.wantErr != nil && !errors.Is(respErr, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, respErr)
			}
			if tt.wantMsg != "" && resp.Msg != tt.wantMsg {
				t.Errorf("Expected msg %q, got %q", tt.wantMsg, resp.Msg)
			}
		})
	}
}

func TestReadSendsQueryParameters(t *testing.T) {
	var slug, passphrase, method string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/r" {
			t.Errorf("Expected path /api/r, got %s", r.URL.Path)
		}
		method = r.Method
		slug = r.URL.Query().Get("slug")
		passphrase = r.URL.Query().Get("passphrase")
		_, _ = io.WriteString(w, `{"response":{"status":"success","msg":"ok"}}`)
	})

	if _, _, err := client.Read(context.Background(), "abc 123", "P&ss=w0rd"); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if method != http.MethodGet {
		t.Errorf("Expected GET, got %s", method)
	}
	if slug != "abc 123" || passphrase != "P&ss=w0rd" {
		t.Errorf("Query not encoded correctly: slug=%q passphrase=%q", slug, passphrase)
	}
}

func TestPersistentServerErrorWithoutStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{}`)
	})

	_, out, err := client.Read(context.Background(), "abc", "Hunter2Hunter")
	if !errors.Is(err, kerrors.ErrServerError) {
		t.Fatalf("Expected ErrServerError, got %v", err)
	}
	if out.Attempts != 4 {
		t.Errorf("Expected 4 attempts, got %d", out.Attempts)
	}
}

func TestPersistentServerErrorWithStatusBody(t *testing.T) {
	const body = `{"response":{"status":"error","details":"An unexpected error has occurred, please try again."}}`

	tests := []struct {
		name string
		call func(c *Client) (requester.Outcome, error)
	}{
		{"read", func(c *Client) (requester.Outcome, error) {
			_, out, err := c.Read(context.Background(), "abc", "Hunter2Hunter")
			return out, err
		}},
		{"create", func(c *Client) (requester.Outcome, error) {
			_, out, err := c.Create(context.Background(), CreateParams{Secret: "s", Passphrase: "Hunter2Hunter", Days: 1, Tries: 3})
			return out, err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, body)
			})

			out, err := tt.call(client)
			if !errors.Is(err, kerrors.ErrServerError) {
				t.Fatalf("Expected ErrServerError, got %v", err)
			}
			if errors.Is(err, kerrors.ErrValidation) {
				t.Errorf("A server failure must not be reported as a validation error: %v", err)
			}
			if !strings.Contains(err.Error(), "An unexpected error has occurred") {
				t.Errorf("Expected server details in error, got %q", err.Error())
			}
			if !out.Exhausted || out.Attempts != 4 {
				t.Errorf("Expected an exhausted outcome after 4 attempts, got exhausted=%t attempts=%d", out.Exhausted, out.Attempts)
			}
		})
	}
}

func TestMalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>maintenance</html>`)
	})

	_, _, err := client.Read(context.Background(), "abc", "Hunter2Hunter")
	if !errors.Is(err, kerrors.ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", err)
	}
}

func TestDetailsMarshalsAsText(t *testing.T) {
	d := Details{Fields: requester.FieldErrors{{Field: "a", Messages: []string{"X."}}}}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"X "` {
		t.Errorf("Expected flattened text, got %s", data)
	}
}
