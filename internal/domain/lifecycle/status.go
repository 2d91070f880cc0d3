// Package lifecycle owns the work-order status ordering, the legacy label
// migration table and the forward-only transition rules.
package lifecycle

import (
	"strings"

	"adas_workorders/internal/domain/entities"
)

var priorities = map[entities.Status]int{
	entities.StatusNew:           1,
	entities.StatusNoCalRequired: 2,
	entities.StatusReady:         3,
	entities.StatusRescheduled:   4,
	entities.StatusScheduled:     5,
	entities.StatusInProgress:    6,
	entities.StatusCancelled:     7,
	entities.StatusCompleted:     8,
}

// Priority returns the rank of s. Unknown values rank as new.
func Priority(s entities.Status) int {
	if p, ok := priorities[s]; ok {
		return p
	}
	return priorities[entities.StatusNew]
}

// Known reports whether s is a canonical status.
func Known(s entities.Status) bool {
	_, ok := priorities[s]
	return ok
}

// Terminal reports whether s closes the job. Technician workflow fields are
// not stamped on terminal records.
func Terminal(s entities.Status) bool {
	return s == entities.StatusCancelled || s == entities.StatusCompleted
}

// legacyLabels maps every label seen across both schema generations (and the
// canonical values themselves) onto the current taxonomy. Keys are folded by fold().
var legacyLabels = map[string]entities.Status{
	"new":                     entities.StatusNew,
	"pending":                 entities.StatusNew,
	"submitted":               entities.StatusNew,
	"open":                    entities.StatusNew,
	"received":                entities.StatusNew,
	"awaiting report":         entities.StatusNew,
	"awaiting cal report":     entities.StatusNew,
	"ready":                   entities.StatusReady,
	"ready to schedule":       entities.StatusReady,
	"ready for scheduling":    entities.StatusReady,
	"report received":         entities.StatusReady,
	"cal report received":     entities.StatusReady,
	"revv received":           entities.StatusReady,
	"awaiting schedule":       entities.StatusReady,
	"no cal required":         entities.StatusNoCalRequired,
	"no cal":                  entities.StatusNoCalRequired,
	"nocal":                   entities.StatusNoCalRequired,
	"no calibration required": entities.StatusNoCalRequired,
	"no calibration needed":   entities.StatusNoCalRequired,
	"not required":            entities.StatusNoCalRequired,
	"rescheduled":             entities.StatusRescheduled,
	"reschedule":              entities.StatusRescheduled,
	"reschedule requested":    entities.StatusRescheduled,
	"scheduled":               entities.StatusScheduled,
	"booked":                  entities.StatusScheduled,
	"assigned":                entities.StatusScheduled,
	"confirmed":               entities.StatusScheduled,
	"in progress":             entities.StatusInProgress,
	"inprogress":              entities.StatusInProgress,
	"on site":                 entities.StatusInProgress,
	"onsite":                  entities.StatusInProgress,
	"arrived":                 entities.StatusInProgress,
	"started":                 entities.StatusInProgress,
	"working":                 entities.StatusInProgress,
	"cancelled":               entities.StatusCancelled,
	"canceled":                entities.StatusCancelled,
	"void":                    entities.StatusCancelled,
	"voided":                  entities.StatusCancelled,
	"completed":               entities.StatusCompleted,
	"complete":                entities.StatusCompleted,
	"done":                    entities.StatusCompleted,
	"closed":                  entities.StatusCompleted,
	"finished":                entities.StatusCompleted,
	"invoiced":                entities.StatusCompleted,
}

// Normalize migrates any historical status label to a canonical status.
// Unrecognised or empty text becomes new.
func Normalize(raw string) entities.Status {
	if s, ok := legacyLabels[fold(raw)]; ok {
		return s
	}
	return entities.StatusNew
}

func fold(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.NewReplacer("_", " ", "-", " ", "/", " ").Replace(raw)
	return strings.Join(strings.Fields(raw), " ")
}
