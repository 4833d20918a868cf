package utils

import "strings"

// Country prefix assumed for local numbers. The site serves a German
// audience, so bare local numbers are treated as German ones.
const (
	countryPrefix = "49"
	trunkPrefix   = "0"
)

// NormalizePhone reduces user input to the canonical store key:
// digits only, country prefix enforced, leading "+".
//
//	"0157 1234567"   -> "+491571234567"
//	"+49 157 123456" -> "+49157123456"
//	"157 1234567"    -> "+491571234567"
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(digits, countryPrefix):
		// already has the country prefix
	case strings.HasPrefix(digits, trunkPrefix):
		digits = countryPrefix + digits[len(trunkPrefix):]
	default:
		digits = countryPrefix + digits
	}
	return "+" + digits
}
