package scanner

import (
	"regexp"
	"strings"

	"github.com/go-faster/errors"
)

// MaxIdentifierLength is the longest identifier accepted from callers.
const MaxIdentifierLength = 64

var identifierRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// NormalizeIdentifier trims surrounding whitespace and checks that the
// identifier is safe to substitute into a provider URL. The engine itself
// substitutes verbatim, so callers accepting untrusted input use this first.
//
// Accepted identifiers are 1 to MaxIdentifierLength characters of ASCII
// letters, digits, '.', '_' and '-', and are not made of dots only.
func NormalizeIdentifier(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", errors.New("identifier is empty")
	}
	if len(id) > MaxIdentifierLength {
		return "", errors.Errorf("identifier is longer than %d characters", MaxIdentifierLength)
	}
	if !identifierRe.MatchString(id) {
		return "", errors.Errorf("identifier %q contains characters other than letters, digits, '.', '_' and '-'", id)
	}
	if strings.Trim(id, ".") == "" {
		return "", errors.Errorf("identifier %q is not a valid handle", id)
	}

	return id, nil
}
