package lifecycle

import "adas_workorders/internal/domain/entities"

// Kind classifies what happened to the status during a merge.
type Kind string

const (
	KindUnchanged Kind = "unchanged"
	KindAdvanced  Kind = "advanced"
	KindHeld      Kind = "held"
	KindAutoReady Kind = "auto_ready"
	KindOverride  Kind = "override"
)

// Decision is the outcome of one status evaluation.
type Decision struct {
	From      entities.Status `json:"from"`
	To        entities.Status `json:"to"`
	Requested entities.Status `json:"requested,omitempty"`
	Kind      Kind            `json:"kind"`
}

// Changed reports whether the status moved.
func (d Decision) Changed() bool { return d.From != d.To }

// Advance applies the passive-merge rule: the incoming status wins only when
// its priority is at least the current one. When the calibration report went
// from absent to present in the same merge, a record still waiting on the
// report (new, no_cal_required, ready) is forced to ready, or no_cal_required
// with the flag. Scheduled and later records are left alone. A higher-priority
// incoming status in the same patch still beats the forced value.
func Advance(current, incoming entities.Status, reportArrived, noCal bool) Decision {
	if !Known(current) {
		current = entities.StatusNew
	}
	d := Decision{From: current, To: current, Requested: incoming, Kind: KindUnchanged}

	if reportArrived && AwaitingReport(current) {
		d.To = entities.StatusReady
		if noCal {
			d.To = entities.StatusNoCalRequired
		}
		d.Kind = KindAutoReady
	}

	if incoming == "" || !Known(incoming) {
		return d
	}
	switch {
	case Priority(incoming) > Priority(d.To):
		d.To = incoming
		d.Kind = KindAdvanced
		if !d.Changed() {
			d.Kind = KindUnchanged
		}
	case Priority(incoming) < Priority(d.To) && d.Kind != KindAutoReady:
		d.Kind = KindHeld
	}
	return d
}

// Override sets target regardless of priority. Unknown targets are rejected by
// the caller before reaching here; an empty target keeps the current status.
func Override(current, target entities.Status) Decision {
	if target == "" {
		return Decision{From: current, To: current, Kind: KindUnchanged}
	}
	return Decision{From: current, To: target, Requested: target, Kind: KindOverride}
}

// AwaitingReport reports whether s is one of the pre-scheduling states the
// calibration-report trigger may rewrite.
func AwaitingReport(s entities.Status) bool {
	return Priority(s) <= Priority(entities.StatusReady)
}
