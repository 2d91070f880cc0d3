package entities

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a work order.
//
// Domain notes:
//   - Values are canonical; legacy labels are migrated at the ingestion boundary
//     (see lifecycle.Normalize) and never reach the merge engine.
//   - Ordering lives in lifecycle.Priority.

type Status string

const (
	StatusNew           Status = "new"
	StatusNoCalRequired Status = "no_cal_required"
	StatusReady         Status = "ready"
	StatusRescheduled   Status = "rescheduled"
	StatusScheduled     Status = "scheduled"
	StatusInProgress    Status = "in_progress"
	StatusCancelled     Status = "cancelled"
	StatusCompleted     Status = "completed"
)

// AllStatuses lists every canonical status in priority order.
var AllStatuses = []Status{
	StatusNew,
	StatusNoCalRequired,
	StatusReady,
	StatusRescheduled,
	StatusScheduled,
	StatusInProgress,
	StatusCancelled,
	StatusCompleted,
}

// Terminal reports whether s ends the normal workflow.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Documents holds the links (URL or sentinel token) attached to a job.
type Documents struct {
	Estimate          string `json:"estimate,omitempty"`
	PreScan           string `json:"pre_scan,omitempty"`
	CalibrationReport string `json:"calibration_report,omitempty"`
	PostScan          string `json:"post_scan,omitempty"`
	Invoice           string `json:"invoice,omitempty"`
}

// Invoice groups the billing fields copied from the shop invoice.
type Invoice struct {
	Number string `json:"number,omitempty"`
	Amount string `json:"amount,omitempty"`
	Date   string `json:"date,omitempty"`
}

// WorkOrder is the canonical record for one physical repair/calibration job.
//
// Storage model:
//   - PK: id (uuid)
//   - lookups: vin (only when VINValid), reference_number (tiered match)
//   - Version increments on every full write; writers compare-and-swap on it.
//
// Audit surfaces:
//   - ShortNotes is a bounded preview replaced on change.
//   - FlowHistory is newline-joined and append-only.

type WorkOrder struct {
	ID        string    `json:"id"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ShopName           string `json:"shop_name"`
	ReferenceNumber    string `json:"reference_number"`
	VIN                string `json:"vin"`
	VINValid           bool   `json:"vin_valid"`
	VehicleDescription string `json:"vehicle_description"`

	Status        Status `json:"status"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
	ScheduledTime string `json:"scheduled_time,omitempty"`
	Technician    string `json:"technician,omitempty"`

	RequiredCalibrations  string `json:"required_calibrations,omitempty"`
	CompletedCalibrations string `json:"completed_calibrations,omitempty"`
	DTCs                  DTCSet `json:"dtcs"`

	Documents             Documents `json:"documents"`
	SupplementalDocuments string    `json:"supplemental_documents,omitempty"`
	Invoice               Invoice   `json:"invoice"`

	ShortNotes  string `json:"short_notes,omitempty"`
	FlowHistory string `json:"flow_history,omitempty"`

	JobStartedAt *time.Time `json:"job_started_at,omitempty"`
	JobEndedAt   *time.Time `json:"job_ended_at,omitempty"`

	NotificationFlags []string `json:"notification_flags,omitempty"`
}

// Exists reports whether the value was loaded from a store.
// Repositories return the zero value when nothing matches.
func (w WorkOrder) Exists() bool {
	return strings.TrimSpace(w.ID) != ""
}

// Clone returns a deep copy so merges never alias the caller's slices or pointers.
func (w WorkOrder) Clone() WorkOrder {
	out := w
	out.DTCs = w.DTCs.Clone()
	if w.JobStartedAt != nil {
		t := *w.JobStartedAt
		out.JobStartedAt = &t
	}
	if w.JobEndedAt != nil {
		t := *w.JobEndedAt
		out.JobEndedAt = &t
	}
	if w.NotificationFlags != nil {
		out.NotificationFlags = append([]string(nil), w.NotificationFlags...)
	}
	return out
}
