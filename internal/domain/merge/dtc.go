package merge

import (
	"regexp"
	"strings"
)

// One system letter (powertrain, body, chassis, network) and four hex digits.
var dtcPattern = regexp.MustCompile(`^[PBCU][0-9A-F]{4}$`)

// ValidDTC reports whether code is a well-formed trouble code.
func ValidDTC(code string) bool {
	return dtcPattern.MatchString(strings.ToUpper(strings.TrimSpace(code)))
}

// ValidDTCs uppercases, drops malformed codes and duplicates, keeping order.
// It returns nil when nothing survives.
func ValidDTCs(codes []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if !dtcPattern.MatchString(c) {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
