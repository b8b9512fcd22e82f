// Package phone canonicalizes phone numbers into a +<countrycode><digits>
// form for outbound messaging and audit keys.
package phone

import "strings"

// DefaultCountryCode is the domestic calling code assumed for national
// numbers supplied without one.
const DefaultCountryCode = "55"

// Normalize converts raw into canonical international form, or "" for
// blank input. The heuristic is lossy: a bare digit string that is neither
// 10-11 digits long nor prefixed with the country code is assumed to
// already carry its own calling code. That ambiguity cannot be resolved
// without knowing the caller's intent, so it is accepted as a limitation.
func Normalize(raw, countryCode string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "+") {
		return "+" + digitsOnly(trimmed[1:])
	}
	digits := digitsOnly(trimmed)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, countryCode) {
		return "+" + digits
	}
	// 10-11 digits: national subscriber number without calling code.
	if len(digits) == 10 || len(digits) == 11 {
		return "+" + countryCode + digits
	}
	return "+" + digits
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
