package identifier

import (
	"regexp"
	"strings"
)

// MinNumericMatchDigits guards the numeric-prefix rule against short numbers.
const MinNumericMatchDigits = 4

// trailing revision/suffix tokens: -1, -12, -A, _REV, -REV2, -FINAL, -SUPP, -PM, -ENT ...
var referenceSuffix = regexp.MustCompile(`(?i)[-_ /.](?:\d{1,2}|REV\d*|FINAL|SUPP\d*|SUPPLEMENT|[A-Z]{1,4})$`)

var placeholderReferences = map[string]struct{}{
	"N/A":     {},
	"NA":      {},
	"TBD":     {},
	"UNKNOWN": {},
	"NONE":    {},
	"PENDING": {},
	"TEST":    {},
	"0000":    {},
}

// Reference carries the three comparison forms of a reference number.
type Reference struct {
	Raw        string
	Normalized string
	Numeric    string
}

// NormalizeReference trims raw and derives the suffix-stripped and digits-only forms.
func NormalizeReference(raw string) Reference {
	raw = strings.TrimSpace(raw)
	return Reference{
		Raw:        raw,
		Normalized: stripSuffixes(strings.ToUpper(raw)),
		Numeric:    digitsOnly(raw),
	}
}

func stripSuffixes(s string) string {
	for {
		loc := referenceSuffix.FindStringIndex(s)
		if loc == nil {
			return s
		}
		rest := strings.TrimSpace(s[:loc[0]])
		if rest == "" || !HasDigit(rest) {
			return s
		}
		s = rest
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasDigit reports whether s contains at least one ASCII digit.
func HasDigit(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0
}

// IsGarbageReference reports whether a stored reference is a placeholder or
// non-informative artifact that a better value may replace.
func IsGarbageReference(ref string) bool {
	ref = strings.TrimSpace(ref)
	if len(ref) < 4 || !HasDigit(ref) {
		return true
	}
	_, placeholder := placeholderReferences[strings.ToUpper(ref)]
	return placeholder
}
