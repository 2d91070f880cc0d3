// Package audit formats and appends the two audit surfaces of a work order:
// the short-notes preview and the append-only flow history.
package audit

import (
	"strings"
	"time"
	"unicode/utf8"
)

// EventCode is the fixed token that classifies a flow-history entry.
type EventCode string

const (
	EventCreated     EventCode = "CREATED"
	EventUpdated     EventCode = "UPDATED"
	EventStatus      EventCode = "STATUS"
	EventScheduled   EventCode = "SCHEDULED"
	EventRescheduled EventCode = "RESCHEDULED"
	EventCancelled   EventCode = "CANCELLED"
	EventNote        EventCode = "NOTE"
	EventArrived     EventCode = "ARRIVED"
	EventCompleted   EventCode = "COMPLETED"
	EventDTC         EventCode = "DTC"
	EventReport      EventCode = "REPORT"
	EventAutoReady   EventCode = "AUTO_READY"
	EventOverride    EventCode = "OVERRIDE"
	EventReassigned  EventCode = "REASSIGNED"
)

// TimestampLayout is the layout of the leading timestamp of every entry.
const TimestampLayout = time.RFC3339

// MaxShortNoteRunes bounds the short-notes preview.
const MaxShortNoteRunes = 500

// Entry renders "<timestamp> <EVENT_CODE> <free text>" on a single line.
func Entry(at time.Time, code EventCode, text string) string {
	text = strings.Join(strings.Fields(text), " ")
	line := at.UTC().Format(TimestampLayout) + " " + string(code)
	if text != "" {
		line += " " + text
	}
	return line
}

// Entries splits a stored history into its lines.
func Entries(history string) []string {
	if strings.TrimSpace(history) == "" {
		return nil
	}
	var out []string
	for _, l := range strings.Split(history, "\n") {
		if l = strings.TrimRight(l, "\r"); strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// Append adds entries to the end of history. Lines already present in history
// (or earlier in the same call) are skipped, so replaying an update does not
// duplicate its entries. Existing content is never rewritten.
func Append(history string, entries ...string) (string, []string) {
	seen := make(map[string]struct{})
	for _, l := range Entries(history) {
		seen[l] = struct{}{}
	}
	var appended []string
	for _, e := range entries {
		e = strings.TrimSpace(strings.ReplaceAll(e, "\n", " "))
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		appended = append(appended, e)
	}
	if len(appended) == 0 {
		return history, nil
	}
	out := strings.TrimRight(history, "\n")
	if out != "" {
		out += "\n"
	}
	return out + strings.Join(appended, "\n"), appended
}

// Recorded reports whether history already holds entry with the same event
// code and text, whatever its timestamp.
func Recorded(history, entry string) bool {
	want := withoutTimestamp(strings.TrimSpace(entry))
	if want == "" {
		return false
	}
	for _, l := range Entries(history) {
		if withoutTimestamp(l) == want {
			return true
		}
	}
	return false
}

func withoutTimestamp(line string) string {
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return line[i+1:]
	}
	return ""
}

// Preview bounds a note to the short-notes limit.
func Preview(note string) string {
	note = strings.TrimSpace(note)
	if utf8.RuneCountInString(note) <= MaxShortNoteRunes {
		return note
	}
	runes := []rune(note)
	return strings.TrimSpace(string(runes[:MaxShortNoteRunes-1])) + "…"
}
