package normalizer

import "regexp"

// Account identifiers are stripped from descriptions before hashing or
// persistence. The replacements are fixed placeholders, so applying Sanitize
// twice yields the same output as applying it once.
var (
	ibanPattern      = regexp.MustCompile(`\bRO\d{2}[A-Z]{4}\d{16}\b`)
	maskedCardPat    = regexp.MustCompile(`\*{4}\d{4}`)
	referenceCodePat = regexp.MustCompile(`\bREF:\s*[A-Z0-9-]+\b`)
)

// Sanitize redacts IBANs, masked card numbers and reference codes from a
// transaction description.
func Sanitize(description string) string {
	s := ibanPattern.ReplaceAllString(description, "[IBAN]")
	s = maskedCardPat.ReplaceAllString(s, "[CARD]")
	s = referenceCodePat.ReplaceAllString(s, "REF:[REDACTED]")
	return s
}
