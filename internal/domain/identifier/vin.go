// Package identifier canonicalises vehicle identification numbers and shop
// reference numbers, and ranks how well a stored reference matches an incoming one.
package identifier

import "strings"

const VINLength = 17

// vinRegionPrefixes is the accepted set of first characters (manufacturer region).
const vinRegionPrefixes = "123456789JKLMNRSTUVWXYZ"

// falsePositiveVINPrefixes are 17-character values upstream estimate systems
// emit in the VIN column that are really estimate/claim/reference series.
var falsePositiveVINPrefixes = []string{"EST", "RO", "PO", "INV", "CLM", "WO", "REF", "0000"}

// VIN is a normalised VIN plus its authority flag.
type VIN struct {
	Value string
	Valid bool
}

// NormalizeVIN uppercases and trims.
func NormalizeVIN(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// InspectVIN normalises raw and evaluates validity. Invalid values are kept so
// they can be stored as non-authoritative.
func InspectVIN(raw string) VIN {
	v := NormalizeVIN(raw)
	return VIN{Value: v, Valid: ValidVIN(v)}
}

// ValidVIN reports whether an already-normalised VIN is authoritative.
func ValidVIN(vin string) bool {
	if len(vin) != VINLength {
		return false
	}
	for i := 0; i < len(vin); i++ {
		c := vin[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z' && c != 'I' && c != 'O' && c != 'Q':
		default:
			return false
		}
	}
	if !strings.ContainsRune(vinRegionPrefixes, rune(vin[0])) {
		return false
	}
	if c := vin[8]; !(c >= '0' && c <= '9') && c != 'X' {
		return false
	}
	for _, p := range falsePositiveVINPrefixes {
		if strings.HasPrefix(vin, p) {
			return false
		}
	}
	return true
}

// LookupVIN returns the VIN usable for an exact-match lookup, or "" when the
// value does not have VIN length.
func LookupVIN(raw string) string {
	v := NormalizeVIN(raw)
	if len(v) != VINLength {
		return ""
	}
	return v
}
