package greenapi

import (
	"regexp"
	"strings"
)

const (
	countryCode = "972"
	chatSuffix  = "@c.us"
)

var nonDigits = regexp.MustCompile(`\D+`)

// ChatID normalizes a raw phone number into the canonical Green API chat id.
// Handles Israeli numbers that start with the local trunk prefix 0 by
// converting them to 972 format, e.g. "052-123-4567" -> "972521234567@c.us".
//
// Best effort: any input produces a chat id, and the function is idempotent.
func ChatID(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")

	if strings.HasPrefix(digits, "0") {
		digits = countryCode + digits[1:]
	}
	if !strings.HasPrefix(digits, countryCode) {
		digits = countryCode + digits
	}

	return digits + chatSuffix
}
