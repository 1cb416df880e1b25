package records

import (
	"strings"

	"github.com/agentstation/tryouts/pkg/errors"
)

// ErrNonNumericID is returned by ParsePlayerID for anything but ASCII digits.
var ErrNonNumericID = errors.New("player id is not a number")

// PlayerID is a validated numeric player id. The original text is kept, so
// "034" stays "034" in reports while ordering is numeric.
type PlayerID string

// ParsePlayerID validates s as a non-empty run of ASCII digits.
func ParsePlayerID(s string) (PlayerID, error) {
	if s == "" {
		return "", ErrNonNumericID
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", ErrNonNumericID
		}
	}
	return PlayerID(s), nil
}

// String returns the id as written.
func (id PlayerID) String() string {
	return string(id)
}

// Compare orders ids numerically, falling back to the raw text so that
// "34" and "034" have a stable order. Ids of any length are supported.
func (id PlayerID) Compare(other PlayerID) int {
	a := strings.TrimLeft(string(id), "0")
	b := strings.TrimLeft(string(other), "0")
	switch {
	case len(a) != len(b):
		if len(a) < len(b) {
			return -1
		}
		return 1
	case a != b:
		return strings.Compare(a, b)
	default:
		return strings.Compare(string(id), string(other))
	}
}
