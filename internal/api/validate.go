package api

import (
	"fmt"
	"strings"
	"unicode/utf8"

	kerrors "github.com/smallwat3r/shhh/internal/errors"
)

const (
	MinDays  = 1
	MaxDays  = 7
	MinTries = 3
	MaxTries = 10

	minPassphraseLength = 8
)

// ValidateCreate applies the server's create rules locally. maxLength is the
// longest secret, in characters, the server accepts.
func ValidateCreate(p CreateParams, maxLength int) error {
	if strings.TrimSpace(p.Secret) == "" {
		return kerrors.ErrEmptySecret
	}
	if n := utf8.RuneCountInString(p.Secret); n > maxLength {
		return fmt.Errorf("%w: the secret needs to have less than %d characters, got %d", kerrors.ErrSecretTooLong, maxLength, n)
	}
	if p.Passphrase == "" {
		return kerrors.ErrMissingPassphrase
	}
	if !IsStrongPassphrase(p.Passphrase) {
		return fmt.Errorf("%w: minimum 8 characters, including 1 number and 1 uppercase", kerrors.ErrWeakPassphrase)
	}
	if p.Days < MinDays {
		return fmt.Errorf("%w: the minimum number of days to keep the secret alive is %d", kerrors.ErrInvalidDays, MinDays)
	}
	if p.Days > MaxDays {
		return fmt.Errorf("%w: the maximum number of days to keep the secret alive is %d", kerrors.ErrInvalidDays, MaxDays)
	}
	if p.Tries < MinTries {
		return fmt.Errorf("%w: the minimum number of tries to decrypt the secret is %d", kerrors.ErrInvalidTries, MinTries)
	}
	if p.Tries > MaxTries {
		return fmt.Errorf("%w: the maximum number of tries to decrypt the secret is %d", kerrors.ErrInvalidTries, MaxTries)
	}
	return nil
}

// ValidateRead checks a read request has both a slug and a passphrase.
func ValidateRead(slug, passphrase string) error {
	if strings.TrimSpace(slug) == "" {
		return kerrors.ErrMissingSlug
	}
	if passphrase == "" {
		return kerrors.ErrMissingPassphrase
	}
	return nil
}

// IsStrongPassphrase reports whether the passphrase has at least 8 characters
// with one ASCII uppercase letter, one ASCII lowercase letter and one ASCII
// digit, the classes the server checks.
func IsStrongPassphrase(passphrase string) bool {
	if utf8.RuneCountInString(passphrase) < minPassphraseLength {
		return false
	}

	var upper, lower, digit bool
	for _, r := range passphrase {
		switch {
		case 'A' <= r && r <= 'Z':
			upper = true
		case 'a' <= r && r <= 'z':
			lower = true
		case '0' <= r && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}
