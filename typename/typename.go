// Package typename parses binding type names.
//
// A type name is one or more segments joined by "/" or "\" (for example
// "acme/translations" or "Acme\Translations"). Each segment starts with a
// letter or underscore and continues with letters, digits, "_", "-" or ".".
package typename

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Name is a parsed binding type name.
type Name struct {
	// Namespace is everything before the last separator; empty for single-segment names.
	Namespace string
	// Short is the last segment.
	Short string
	raw   string
}

func (n Name) String() string {
	return n.raw
}

var nameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*(?:[/\\][A-Za-z_][A-Za-z0-9_.\-]*)*$`)

// Parse parses a type name. Names are case-sensitive and not normalized.
func Parse(s string) (Name, error) {
	if strings.TrimSpace(s) == "" {
		return Name{}, errors.New("type name: empty")
	}
	if !nameRe.MatchString(s) {
		return Name{}, fmt.Errorf("type name: invalid %q", s)
	}
	at := strings.LastIndexAny(s, `/\`)
	if at < 0 {
		return Name{Short: s, raw: s}, nil
	}
	return Name{Namespace: s[:at], Short: s[at+1:], raw: s}, nil
}

// Validate returns an error if s is not a syntactically valid type name.
func Validate(s string) error {
	_, err := Parse(s)
	return err
}

// IsValid reports whether s is a syntactically valid type name.
func IsValid(s string) bool {
	return Validate(s) == nil
}
