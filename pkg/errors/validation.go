package errors

import (
	"regexp"
)

// maxID bounds level and design identifiers accepted by the CLI.
const maxID int64 = 1 << 31

// ValidateID checks a level or design identifier before it is sent upstream.
func ValidateID(id int) error {
	if id <= 0 {
		return New(ErrCodeInvalidID, "id must be a positive integer, got %d", id)
	}
	if int64(id) >= maxID {
		return New(ErrCodeInvalidID, "id %d out of range", id)
	}
	return nil
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidatePrefix ensures a type-identifier prefix still yields valid C
// identifiers once joined with a type name (e.g. "FCSIM_" + "STAT_RECT").
// An empty prefix is valid.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if !identRe.MatchString(prefix) {
		return New(ErrCodeInvalidPrefix, "prefix %q is not a valid C identifier", prefix)
	}
	return nil
}
