package identifier

import "strings"

// Tier ranks a locator hit. Lower values win.
type Tier int

const (
	TierNone Tier = iota
	TierVIN
	TierExactReference
	TierNormalizedReference
	TierNumericPrefix
)

func (t Tier) String() string {
	switch t {
	case TierVIN:
		return "vin"
	case TierExactReference:
		return "exact_reference"
	case TierNormalizedReference:
		return "normalized_reference"
	case TierNumericPrefix:
		return "numeric_prefix"
	default:
		return "none"
	}
}

// referenceTiers is the evaluation order of the reference rules.
var referenceTiers = []Tier{TierExactReference, TierNormalizedReference, TierNumericPrefix}

// MatchReference reports the strongest reference rule under which stored
// matches incoming, or TierNone.
func MatchReference(stored string, incoming Reference) Tier {
	for _, t := range referenceTiers {
		if matchesTier(stored, incoming, t) {
			return t
		}
	}
	return TierNone
}

func matchesTier(stored string, incoming Reference, t Tier) bool {
	if incoming.Raw == "" {
		return false
	}
	switch t {
	case TierExactReference:
		return strings.EqualFold(strings.TrimSpace(stored), incoming.Raw)
	case TierNormalizedReference:
		return incoming.Normalized != "" && NormalizeReference(stored).Normalized == incoming.Normalized
	case TierNumericPrefix:
		if len(incoming.Numeric) < MinNumericMatchDigits {
			return false
		}
		s := NormalizeReference(stored)
		return s.Numeric == incoming.Numeric || strings.HasPrefix(strings.ToUpper(s.Raw), incoming.Numeric)
	}
	return false
}

// BestReferenceMatch walks the rules in precedence order and returns the index
// of the first candidate that satisfies the first rule with any hit. Candidates
// should be ordered oldest first so ties resolve deterministically.
func BestReferenceMatch(candidates []string, incoming string) (int, Tier) {
	ref := NormalizeReference(incoming)
	if ref.Raw == "" {
		return -1, TierNone
	}
	for _, t := range referenceTiers {
		for i, c := range candidates {
			if matchesTier(c, ref, t) {
				return i, t
			}
		}
	}
	return -1, TierNone
}
