package requester

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// separator joins the first message of each field.
const separator = " / "

// FieldError holds the validation messages the API returned for one field.
type FieldError struct {
	Field    string
	Messages []string
}

// FieldErrors maps field names to messages, in the order the API sent them.
type FieldErrors []FieldError

// UnmarshalJSON decodes a JSON object of field -> messages, keeping key order.
// A field whose value is a single string is treated as a one-message list.
func (f *FieldErrors) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("field errors: expected object, got %v", tok)
	}

	var out FieldErrors
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		field, ok := tok.(string)
		if !ok {
			return fmt.Errorf("field errors: expected field name, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("field errors: %s: %w", field, err)
		}

		var messages []string
		if err := json.Unmarshal(raw, &messages); err != nil {
			var single string
			if err := json.Unmarshal(raw, &single); err != nil {
				return fmt.Errorf("field errors: %s: expected string or list of strings", field)
			}
			messages = []string{single}
		}
		out = append(out, FieldError{Field: field, Messages: messages})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*f = out
	return nil
}

// Flatten renders field errors as one line. The last character of each
// field's first message (normally a period) is replaced by the separator,
// and the last two characters of the whole string are dropped.
func Flatten(fieldErrors FieldErrors) string {
	var b strings.Builder
	for _, fe := range fieldErrors {
		if len(fe.Messages) == 0 {
			continue
		}
		b.WriteString(replaceLastChar(fe.Messages[0]))
	}

	return dropLastRunes(b.String(), 2)
}

// dropLastRunes removes the final n characters of s.
func dropLastRunes(s string, n int) string {
	for ; n > 0; n-- {
		if s == "" {
			return ""
		}
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}

// replaceLastChar swaps the final character for the separator. Messages
// ending in a line break are kept as they are.
func replaceLastChar(msg string) string {
	r, size := utf8.DecodeLastRuneInString(msg)
	if size == 0 || r == '\n' || r == '\r' {
		return msg
	}
	return msg[:len(msg)-size] + separator
}
