// Package merge computes the next version of a work order from the current
// record and an inbound patch. Every function here is pure and total: any
// patch yields a record, malformed values are dropped or kept as
// non-authoritative, never rejected.
package merge

import (
	"strings"

	"adas_workorders/internal/domain/audit"
	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/domain/identifier"
	"adas_workorders/internal/domain/lifecycle"
)

// Outcome is the result of one merge.
type Outcome struct {
	WorkOrder     entities.WorkOrder
	Status        lifecycle.Decision
	ReportArrived bool
	Appended      []string
	Changed       []string
}

// Merge applies patch to existing under the passive precedence rules.
func Merge(existing entities.WorkOrder, p entities.Patch) Outcome {
	return apply(existing, p, false)
}

// MergeOverride is Merge with the patch status applied through the
// administrative override path, bypassing the priority check.
func MergeOverride(existing entities.WorkOrder, p entities.Patch) Outcome {
	return apply(existing, p, true)
}

// Create builds a fresh record for id by merging p into an empty one.
func Create(id string, p entities.Patch) Outcome {
	base := entities.WorkOrder{
		ID:        id,
		CreatedAt: p.At.UTC(),
		UpdatedAt: p.At.UTC(),
		Status:    entities.StatusNew,
	}
	return apply(base, p, false)
}

func apply(existing entities.WorkOrder, p entities.Patch, override bool) Outcome {
	next := existing.Clone()
	var changed []string
	track := func(field string, before, after string) {
		if before != after {
			changed = append(changed, field)
		}
	}

	next.ShopName = firstWriteWins(existing.ShopName, p.ShopName)
	track("shop_name", existing.ShopName, next.ShopName)

	next.VehicleDescription = firstWriteWins(existing.VehicleDescription, p.VehicleDescription)
	track("vehicle_description", existing.VehicleDescription, next.VehicleDescription)

	next.VIN, next.VINValid = mergeVIN(existing.VIN, p.VIN, p.AuthoritativeVIN)
	track("vin", existing.VIN, next.VIN)

	next.ReferenceNumber = mergeReference(existing.ReferenceNumber, p)
	track("reference_number", existing.ReferenceNumber, next.ReferenceNumber)

	next.ScheduledDate = coalesce(p.ScheduledDate, existing.ScheduledDate)
	track("scheduled_date", existing.ScheduledDate, next.ScheduledDate)
	next.ScheduledTime = coalesce(p.ScheduledTime, existing.ScheduledTime)
	track("scheduled_time", existing.ScheduledTime, next.ScheduledTime)
	next.Technician = coalesce(p.Technician, existing.Technician)
	track("technician", existing.Technician, next.Technician)

	next.RequiredCalibrations = coalesce(p.RequiredCalibrations, existing.RequiredCalibrations)
	track("required_calibrations", existing.RequiredCalibrations, next.RequiredCalibrations)
	next.CompletedCalibrations = coalesce(p.CompletedCalibrations, existing.CompletedCalibrations)
	track("completed_calibrations", existing.CompletedCalibrations, next.CompletedCalibrations)

	if p.HasDTCUpdate() {
		next.DTCs = existing.DTCs.WithPhase(entities.ParseScanPhase(string(p.DTCPhase)), ValidDTCs(p.DTCCodes))
		track("dtcs", existing.DTCs.String(), next.DTCs.String())
	}

	next.Documents = mergeDocuments(existing.Documents, p.Documents)
	track("documents", documentsKey(existing.Documents), documentsKey(next.Documents))
	next.SupplementalDocuments = coalesce(p.SupplementalDocuments, existing.SupplementalDocuments)
	track("supplemental_documents", existing.SupplementalDocuments, next.SupplementalDocuments)

	next.Invoice = entities.Invoice{
		Number: coalesce(p.Invoice.Number, existing.Invoice.Number),
		Amount: coalesce(p.Invoice.Amount, existing.Invoice.Amount),
		Date:   coalesce(p.Invoice.Date, existing.Invoice.Date),
	}
	track("invoice", existing.Invoice.Number+existing.Invoice.Amount+existing.Invoice.Date,
		next.Invoice.Number+next.Invoice.Amount+next.Invoice.Date)

	if note := audit.Preview(p.Note); note != "" && note != existing.ShortNotes {
		next.ShortNotes = note
		changed = append(changed, "short_notes")
	}

	before := len(next.NotificationFlags)
	next.NotificationFlags = unionFlags(next.NotificationFlags, p.NotificationFlags)
	if len(next.NotificationFlags) != before {
		changed = append(changed, "notification_flags")
	}

	reportArrived := strings.TrimSpace(existing.Documents.CalibrationReport) == "" &&
		strings.TrimSpace(next.Documents.CalibrationReport) != ""

	var decision lifecycle.Decision
	if override {
		decision = lifecycle.Override(existing.Status, p.Status)
	} else {
		decision = lifecycle.Advance(existing.Status, p.Status, reportArrived, p.NoCalibrationRequired)
	}
	next.Status = decision.To
	if decision.Changed() {
		changed = append(changed, "status")
	}

	// a held request on a closed job records its entry but not its timestamps
	if !lifecycle.Terminal(existing.Status) || decision.Changed() {
		if next.JobStartedAt == nil && p.JobStartedAt != nil {
			t := p.JobStartedAt.UTC()
			next.JobStartedAt = &t
			changed = append(changed, "job_started_at")
		}
		if next.JobEndedAt == nil && p.JobEndedAt != nil {
			t := p.JobEndedAt.UTC()
			next.JobEndedAt = &t
			changed = append(changed, "job_ended_at")
		}
	}

	entries := append([]string(nil), p.FlowEntries...)
	if decision.Kind == lifecycle.KindAutoReady && decision.Changed() {
		entries = append(entries, audit.Entry(p.At, audit.EventAutoReady,
			"calibration report received; status "+string(decision.From)+" -> "+string(decision.To)))
	}
	var appended []string
	next.FlowHistory, appended = audit.Append(existing.FlowHistory, entries...)

	if !p.At.IsZero() && p.At.After(existing.UpdatedAt) {
		next.UpdatedAt = p.At.UTC()
	}

	return Outcome{
		WorkOrder:     next,
		Status:        decision,
		ReportArrived: reportArrived,
		Appended:      appended,
		Changed:       changed,
	}
}

func firstWriteWins(existing, incoming string) string {
	if strings.TrimSpace(existing) != "" {
		return existing
	}
	return strings.TrimSpace(incoming)
}

func coalesce(incoming, existing string) string {
	if v := strings.TrimSpace(incoming); v != "" {
		return v
	}
	return existing
}

func mergeVIN(existing, incoming string, authoritative bool) (string, bool) {
	cur := identifier.NormalizeVIN(existing)
	curValid := identifier.ValidVIN(cur)
	in := identifier.InspectVIN(incoming)
	if in.Value == "" {
		return existing, curValid
	}
	switch {
	case cur == "":
		return in.Value, in.Valid
	case in.Valid && !curValid:
		return in.Value, true
	case in.Valid && curValid && authoritative:
		return in.Value, true
	}
	return existing, curValid
}

func mergeReference(existing string, p entities.Patch) string {
	candidate := strings.TrimSpace(p.AuthoritativeReference)
	if candidate == "" {
		candidate = strings.TrimSpace(p.ReferenceNumber)
	}
	if candidate == "" {
		return existing
	}
	switch {
	case strings.TrimSpace(existing) == "":
		return candidate
	case p.CorrectReference:
		return candidate
	case identifier.IsGarbageReference(existing) && identifier.HasDigit(candidate):
		return candidate
	case strings.TrimSpace(p.AuthoritativeReference) != "" && len(candidate) > len(strings.TrimSpace(existing)) &&
		identifier.MatchReference(existing, identifier.NormalizeReference(candidate)) != identifier.TierNone:
		// fuller variant of the same job number, e.g. 3080 -> 3080-ENT
		return candidate
	}
	return existing
}

func mergeDocuments(existing, incoming entities.Documents) entities.Documents {
	return entities.Documents{
		Estimate:          coalesce(incoming.Estimate, existing.Estimate),
		PreScan:           coalesce(incoming.PreScan, existing.PreScan),
		CalibrationReport: coalesce(incoming.CalibrationReport, existing.CalibrationReport),
		PostScan:          coalesce(incoming.PostScan, existing.PostScan),
		Invoice:           coalesce(incoming.Invoice, existing.Invoice),
	}
}

func documentsKey(d entities.Documents) string {
	return strings.Join([]string{d.Estimate, d.PreScan, d.CalibrationReport, d.PostScan, d.Invoice}, "\x00")
}

func unionFlags(existing, incoming []string) []string {
	out := existing
	seen := make(map[string]struct{}, len(existing))
	for _, f := range existing {
		seen[f] = struct{}{}
	}
	for _, f := range incoming {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
