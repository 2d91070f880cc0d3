package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidVIN(t *testing.T) {
	cases := []struct {
		name string
		vin  string
		want bool
	}{
		{"well formed", "1HGCM82633A004352", true},
		{"check digit X", "JH4KA765XMC000000", true},
		{"too short", "1HGCM82633A00435", false},
		{"forbidden letter", "1HGCM82633A00I352", false},
		{"bad region", "AHGCM82633A004352", false},
		{"position nine not digit", "1HGCM826B3A004352", false},
		{"estimate series", "EST12345678901234", false},
		{"reference series", "REF12345678901234", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidVIN(tc.vin))
		})
	}
}

func TestInspectVIN_KeepsInvalidValue(t *testing.T) {
	v := InspectVIN("  ref12345678901234 ")
	assert.Equal(t, "REF12345678901234", v.Value)
	assert.False(t, v.Valid)
}

func TestLookupVIN(t *testing.T) {
	assert.Equal(t, "1HGCM82633A004352", LookupVIN(" 1hgcm82633a004352"))
	assert.Empty(t, LookupVIN("ABC123"))
}

func TestNormalizeReference(t *testing.T) {
	cases := []struct {
		raw        string
		normalized string
		numeric    string
	}{
		{"11999-PM", "11999", "11999"},
		{"3080-ENT", "3080", "3080"},
		{" 4521-1 ", "4521", "45211"},
		{"RO 7788_REV", "RO 7788", "7788"},
		{"5512-FINAL", "5512", "5512"},
		{"ABC-DE", "ABC-DE", ""},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			ref := NormalizeReference(tc.raw)
			assert.Equal(t, tc.normalized, ref.Normalized)
			assert.Equal(t, tc.numeric, ref.Numeric)
		})
	}
}

func TestBestReferenceMatch(t *testing.T) {
	t.Run("normalized suffix", func(t *testing.T) {
		idx, tier := BestReferenceMatch([]string{"11999-PM"}, "11999")
		assert.Equal(t, 0, idx)
		assert.Equal(t, TierNormalizedReference, tier)
	})

	t.Run("incoming carries suffix", func(t *testing.T) {
		idx, tier := BestReferenceMatch([]string{"3080"}, "3080-ENT")
		assert.Equal(t, 0, idx)
		assert.Equal(t, TierNormalizedReference, tier)
	})

	t.Run("exact beats earlier normalized hit", func(t *testing.T) {
		idx, tier := BestReferenceMatch([]string{"11999-PM", "11999"}, "11999")
		assert.Equal(t, 1, idx)
		assert.Equal(t, TierExactReference, tier)
	})

	t.Run("exact is case insensitive", func(t *testing.T) {
		idx, tier := BestReferenceMatch([]string{"ro-4410"}, "RO-4410")
		assert.Equal(t, 0, idx)
		assert.Equal(t, TierExactReference, tier)
	})

	t.Run("numeric prefix", func(t *testing.T) {
		idx, tier := BestReferenceMatch([]string{"RO 4455A"}, "4455")
		assert.Equal(t, 0, idx)
		assert.Equal(t, TierNumericPrefix, tier)
	})

	t.Run("short numbers do not fuzzy match", func(t *testing.T) {
		idx, tier := BestReferenceMatch([]string{"A123B"}, "123")
		assert.Equal(t, -1, idx)
		assert.Equal(t, TierNone, tier)
	})

	t.Run("empty incoming", func(t *testing.T) {
		idx, tier := BestReferenceMatch([]string{"11999"}, "  ")
		assert.Equal(t, -1, idx)
		assert.Equal(t, TierNone, tier)
	})
}

func TestMatchReference(t *testing.T) {
	assert.Equal(t, TierExactReference, MatchReference("11999-PM", NormalizeReference("11999-pm")))
	assert.Equal(t, TierNone, MatchReference("22222", NormalizeReference("11999")))
	assert.Equal(t, "normalized_reference", TierNormalizedReference.String())
}

func TestIsGarbageReference(t *testing.T) {
	for _, ref := range []string{"", "N/A", "tbd", "12", "ABCDE", "0000"} {
		assert.True(t, IsGarbageReference(ref), ref)
	}
	for _, ref := range []string{"11999", "RO-4410", "3080-ENT"} {
		assert.False(t, IsGarbageReference(ref), ref)
	}
}
