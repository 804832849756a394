package history

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/smallwat3r/shhh/internal/configs"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Entry represents one created secret.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"` // RFC3339 with microseconds, UTC.
	Server    string `json:"server,omitempty"`
	Link      string `json:"link"`
	ExpiresOn string `json:"expires_on,omitempty"`
	Days      int    `json:"days,omitempty"`
	Tries     int    `json:"tries,omitempty"`
}

// Time parses the entry timestamp. The zero time is returned for malformed values.
func (e Entry) Time() time.Time {
	t, err := time.Parse(timestampLayout, e.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Record appends an entry to the history log, filling in the ID and
// timestamp when they are missing.
func Record(entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(timestampLayout)
	}

	logPath := configs.HistoryPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening history log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding history entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing history entry: %w", err)
	}
	return nil
}

// ReadEntries reads all entries from the history log.
// Returns os.ErrNotExist (wrapped) if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(configs.HistoryPath())
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into history entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
