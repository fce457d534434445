package hunt

import "strings"

// NormalizeRegistrationID trims surrounding whitespace and uppercases id.
func NormalizeRegistrationID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// ValidateRegistrationID reports whether id, once trimmed, has at least
// eight characters with '4' and '9' at positions 7 and 8.
func ValidateRegistrationID(id string) bool {
	r := []rune(strings.TrimSpace(id))
	return len(r) >= 8 && r[6] == '4' && r[7] == '9'
}
