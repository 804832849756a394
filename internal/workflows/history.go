package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	kerrors "github.com/smallwat3r/shhh/internal/errors"
	"github.com/smallwat3r/shhh/internal/history"
)

// HistoryOptions configures the history workflow.
type HistoryOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Active keeps only entries whose expiry is still in the future.
	Active bool

	// Now is the reference time for Active. Defaults to time.Now.
	Now time.Time
}

// HistoryResult contains the outcome of a history operation.
type HistoryResult struct {
	// Entries are the filtered history entries.
	Entries []history.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// History reads and filters the local history log.
//
// Returns ErrNoHistory if no secret was ever created from this machine.
func History(ctx context.Context, opts HistoryOptions) (*HistoryResult, error) {
	entries, err := history.ReadEntries()
	if errors.Is(err, os.ErrNotExist) {
		return nil, kerrors.ErrNoHistory
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	result := &HistoryResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	filtered := entries
	if opts.Active {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		filtered = filterActive(filtered, now)
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

// ExpiresAt estimates when an entry expires from its creation time and days.
// The zero time is returned when either is unknown.
func ExpiresAt(e history.Entry) time.Time {
	created := e.Time()
	if created.IsZero() || e.Days <= 0 {
		return time.Time{}
	}
	return created.Add(time.Duration(e.Days) * 24 * time.Hour)
}

// FormatDateTime formats an entry timestamp for display.
func FormatDateTime(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func filterActive(entries []history.Entry, now time.Time) []history.Entry {
	var result []history.Entry
	for _, e := range entries {
		expires := ExpiresAt(e)
		if expires.IsZero() || expires.After(now) {
			result = append(result, e)
		}
	}
	return result
}
