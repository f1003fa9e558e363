package lobby

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	codeBytes       = 3
	maxCodeAttempts = 16
)

// NewCode returns a random six character session code.
func NewCode() (string, error) {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// NormalizeCode makes user-typed codes comparable.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether a normalized code has the generated shape: six
// uppercase hex digits.
func ValidCode(code string) bool {
	if len(code) != 2*codeBytes {
		return false
	}
	for _, r := range code {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			return false
		}
	}
	return true
}

func checkCode(code string) error {
	if code != "" && !ValidCode(code) {
		return fmt.Errorf("%w: malformed game code %q", ErrInvalidAction, code)
	}
	return nil
}
