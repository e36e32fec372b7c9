package store

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var ErrInvalidIdentity = errors.New("invalid identity")

const (
	minUsernameLen = 2
	maxUsernameLen = 16
)

// NormalizeIdentity canonicalizes a player identity to its undashed
// lowercase 32-hex form, accepting dashed and undashed input.
func NormalizeIdentity(raw string) (string, error) {
	id := strings.ToLower(strings.ReplaceAll(raw, "-", ""))
	if len(id) != 32 {
		return "", ErrInvalidIdentity
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalidIdentity
	}
	return id, nil
}

// ValidUsername bounds the claimed username length in runes.
func ValidUsername(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= minUsernameLen && n <= maxUsernameLen
}
