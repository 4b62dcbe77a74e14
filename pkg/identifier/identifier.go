package identifier

import (
	"math/rand"
	"regexp"
)

const (
	// PrefixPatient and PrefixDoctor are the persisted identifier prefixes.
	PrefixPatient = "PAT"
	PrefixDoctor  = "DOC"

	charset    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLen  = 8
	// MaxAttempts bounds regeneration when the store reports a collision.
	MaxAttempts = 5
)

var pattern = regexp.MustCompile(`^(PAT|DOC)-[A-Z0-9]{8}$`)

// New returns an identifier like PAT-A1B2C3D4. Uniqueness is enforced by the
// store, not here; callers retry on a uniqueness violation.
func New(prefix string) string {
	buf := make([]byte, suffixLen)
	for i := range buf {
		buf[i] = charset[rand.Intn(len(charset))]
	}
	return prefix + "-" + string(buf)
}

// Valid reports whether s is a well-formed patient or doctor identifier.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
