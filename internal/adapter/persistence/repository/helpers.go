package repository

import (
	"os"
	"sort"
	"time"

	"adas_workorders/internal/domain/identifier"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// referenceCandidate is the projection every store scans for reference matching.
type referenceCandidate struct {
	ID        string
	Reference string
	CreatedAt time.Time
}

// pickByReference applies the tiered reference rules over candidates. Within a
// tier the oldest record wins so repeated lookups are deterministic.
func pickByReference(candidates []referenceCandidate, ref string) (string, identifier.Tier) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
		}
		return candidates[i].ID < candidates[j].ID
	})
	refs := make([]string, len(candidates))
	for i, c := range candidates {
		refs[i] = c.Reference
	}
	idx, tier := identifier.BestReferenceMatch(refs, ref)
	if idx < 0 {
		return "", identifier.TierNone
	}
	return candidates[idx].ID, tier
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}
