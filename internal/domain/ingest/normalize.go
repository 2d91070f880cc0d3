// Package ingest is the single ingestion boundary: it folds the many
// historical spellings of an inbound payload into one typed entities.Patch.
package ingest

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/domain/lifecycle"
)

// timeLayouts are the timestamp formats producers have been seen sending.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
}

// Normalize converts a flat key/value payload into a Patch. Unknown keys are
// dropped and returned sorted so callers can log them; values that cannot be
// interpreted are treated as absent.
func Normalize(fields map[string]any) (entities.Patch, []string) {
	var p entities.Patch
	var dropped []string
	// Alias keys are applied before canonical keys so an explicit canonical
	// key wins regardless of map iteration order.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ci, _ := Canonical(keys[i])
		cj, _ := Canonical(keys[j])
		ei, ej := ci == keys[i], cj == keys[j]
		if ei != ej {
			return !ei
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		canonical, ok := Canonical(k)
		if !ok {
			dropped = append(dropped, k)
			continue
		}
		assign(&p, canonical, fields[k])
	}
	sort.Strings(dropped)
	return p, dropped
}

func assign(p *entities.Patch, field string, v any) {
	if v == nil {
		return
	}
	s := Stringify(v)
	switch field {
	case FieldShopName:
		setIf(&p.ShopName, s)
	case FieldReferenceNumber:
		setIf(&p.ReferenceNumber, s)
	case FieldAuthoritativeReference:
		setIf(&p.AuthoritativeReference, s)
	case FieldVIN:
		setIf(&p.VIN, s)
	case FieldVehicleDescription:
		setIf(&p.VehicleDescription, s)
	case FieldStatus:
		if s != "" {
			p.Status = lifecycle.Normalize(s)
		}
	case FieldScheduledDate:
		setIf(&p.ScheduledDate, s)
	case FieldScheduledTime:
		setIf(&p.ScheduledTime, s)
	case FieldTechnician:
		setIf(&p.Technician, s)
	case FieldRequiredCalibrations:
		setIf(&p.RequiredCalibrations, s)
	case FieldCompletedCalibrations:
		setIf(&p.CompletedCalibrations, s)
	case FieldCalibrationText:
		setIf(&p.CalibrationText, s)
	case FieldDTCCodes:
		p.DTCCodes = List(v)
		if p.DTCCodes == nil {
			p.DTCCodes = []string{}
		}
	case FieldDTCPhase:
		if s != "" {
			p.DTCPhase = entities.ParseScanPhase(s)
		}
	case FieldEstimateDocument:
		setIf(&p.Documents.Estimate, s)
	case FieldPreScanDocument:
		setIf(&p.Documents.PreScan, s)
	case FieldCalibrationReport:
		setIf(&p.Documents.CalibrationReport, s)
	case FieldPostScanDocument:
		setIf(&p.Documents.PostScan, s)
	case FieldInvoiceDocument:
		setIf(&p.Documents.Invoice, s)
	case FieldSupplementalDocuments:
		setIf(&p.SupplementalDocuments, strings.Join(List(v), ", "))
	case FieldInvoiceNumber:
		setIf(&p.Invoice.Number, s)
	case FieldInvoiceAmount:
		setIf(&p.Invoice.Amount, s)
	case FieldInvoiceDate:
		setIf(&p.Invoice.Date, s)
	case FieldNote:
		setIf(&p.Note, s)
	case FieldJobStartedAt:
		if t, ok := ParseTime(s); ok {
			p.JobStartedAt = &t
		}
	case FieldJobEndedAt:
		if t, ok := ParseTime(s); ok {
			p.JobEndedAt = &t
		}
	case FieldNotificationFlags:
		p.NotificationFlags = append(p.NotificationFlags, List(v)...)
	case FieldAuthoritativeVIN:
		p.AuthoritativeVIN = Bool(v)
	case FieldCorrectReference:
		p.CorrectReference = Bool(v)
	case FieldNoCalRequired:
		p.NoCalibrationRequired = Bool(v)
	case FieldEventTime:
		if t, ok := ParseTime(s); ok {
			p.At = t
		}
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Stringify renders scalars and lists as trimmed text.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case []string:
		return strings.Join(List(t), ", ")
	case []any:
		return strings.Join(List(t), ", ")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// List accepts a JSON array or a comma/semicolon/newline separated string.
func List(v any) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		raw = t
	case []any:
		for _, e := range t {
			raw = append(raw, Stringify(e))
		}
	default:
		raw = strings.FieldsFunc(Stringify(v), func(r rune) bool {
			return r == ',' || r == ';' || r == '\n'
		})
	}
	var out []string
	for _, e := range raw {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Bool reads loose truthy values ("yes", "1", "on", true).
func Bool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	switch strings.ToLower(Stringify(v)) {
	case "1", "true", "yes", "y", "on", "x":
		return true
	}
	return false
}

// ParseTime tries each known timestamp layout.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
