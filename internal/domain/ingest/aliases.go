package ingest

import "strings"

// Canonical field names understood by the ingestion boundary.
const (
	FieldShopName               = "shop_name"
	FieldReferenceNumber        = "reference_number"
	FieldAuthoritativeReference = "authoritative_reference"
	FieldVIN                    = "vin"
	FieldVehicleDescription     = "vehicle_description"
	FieldStatus                 = "status"
	FieldScheduledDate          = "scheduled_date"
	FieldScheduledTime          = "scheduled_time"
	FieldTechnician             = "technician"
	FieldRequiredCalibrations   = "required_calibrations"
	FieldCompletedCalibrations  = "completed_calibrations"
	FieldCalibrationText        = "calibration_text"
	FieldDTCCodes               = "dtc_codes"
	FieldDTCPhase               = "dtc_phase"
	FieldEstimateDocument       = "estimate_document"
	FieldPreScanDocument        = "pre_scan_document"
	FieldCalibrationReport      = "calibration_report"
	FieldPostScanDocument       = "post_scan_document"
	FieldInvoiceDocument        = "invoice_document"
	FieldSupplementalDocuments  = "supplemental_documents"
	FieldInvoiceNumber          = "invoice_number"
	FieldInvoiceAmount          = "invoice_amount"
	FieldInvoiceDate            = "invoice_date"
	FieldNote                   = "note"
	FieldJobStartedAt           = "job_started_at"
	FieldJobEndedAt             = "job_ended_at"
	FieldNotificationFlags      = "notification_flags"
	FieldAuthoritativeVIN       = "authoritative_vin"
	FieldCorrectReference       = "correct_reference"
	FieldNoCalRequired          = "no_cal_required"
	FieldEventTime              = "event_time"
)

// aliases lists every historical spelling per canonical field. Keys are
// compared after foldKey, so camelCase, snake_case, kebab-case and spaced
// variants of the same word sequence collapse to one entry.
var aliases = map[string][]string{
	FieldShopName:               {"shop", "shopName", "shop_name", "body_shop", "customer", "shopname"},
	FieldReferenceNumber:        {"ro", "po", "roNumber", "ro_number", "poNumber", "po_number", "roPo", "ro_po", "RO/PO", "referenceNumber", "reference_number", "reference", "ref", "repair_order"},
	FieldAuthoritativeReference: {"fullReference", "full_reference", "fullRo", "full_ro", "authoritativeReference", "authoritative_reference", "ro_full"},
	FieldVIN:                    {"vin", "VIN", "vehicleVin", "vehicle_vin", "vin_number"},
	FieldVehicleDescription:     {"vehicle", "vehicleDescription", "vehicle_description", "ymm", "year_make_model", "vehicle_info"},
	FieldStatus:                 {"status", "jobStatus", "job_status", "state"},
	FieldScheduledDate:          {"scheduledDate", "scheduled_date", "date", "appointment_date", "schedule_date"},
	FieldScheduledTime:          {"scheduledTime", "scheduled_time", "time", "appointment_time", "schedule_time"},
	FieldTechnician:             {"technician", "tech", "techName", "tech_name", "assignedTech", "assigned_tech", "technician_assigned"},
	FieldRequiredCalibrations:   {"requiredCalibrations", "required_calibrations", "calibrations_required", "calibrations", "cals_required"},
	FieldCompletedCalibrations:  {"completedCalibrations", "completed_calibrations", "calibrations_completed", "cals_completed"},
	FieldCalibrationText:        {"calibrationText", "calibration_text", "scrub", "scrubText", "scrub_text", "report_text"},
	FieldDTCCodes:               {"dtcs", "dtcCodes", "dtc_codes", "codes", "trouble_codes"},
	FieldDTCPhase:               {"dtcPhase", "dtc_phase", "scanPhase", "scan_phase", "scan_type", "phase"},
	FieldEstimateDocument:       {"estimate", "estimatePdf", "estimate_pdf", "estimate_url", "estimateUrl"},
	FieldPreScanDocument:        {"preScan", "prescan", "preScanPdf", "pre_scan_pdf", "prescan_pdf", "pre_scan_url"},
	FieldCalibrationReport:      {"calibrationReport", "calibration_report", "calReport", "cal_report", "cal_report_url", "revvReportPdf", "revv_report_pdf", "report_url"},
	FieldPostScanDocument:       {"postScan", "postscan", "postScanPdf", "post_scan_pdf", "postscan_pdf", "post_scan_url"},
	FieldInvoiceDocument:        {"invoicePdf", "invoice_pdf", "invoice_url", "invoiceUrl", "invoice_document"},
	FieldSupplementalDocuments:  {"supplemental", "supplementalDocs", "supplemental_docs", "supplemental_documents", "additional_docs", "extra_docs"},
	FieldInvoiceNumber:          {"invoiceNumber", "invoice_number", "invoice_no", "invoice_num"},
	FieldInvoiceAmount:          {"invoiceAmount", "invoice_amount", "amount", "invoice_total"},
	FieldInvoiceDate:            {"invoiceDate", "invoice_date"},
	FieldNote:                   {"note", "notes", "shortNotes", "short_notes", "comment", "message"},
	FieldJobStartedAt:           {"jobStart", "job_start", "jobStartedAt", "job_started_at", "arrival_time", "arrived_at"},
	FieldJobEndedAt:             {"jobEnd", "job_end", "jobEndedAt", "job_ended_at", "completion_time", "completed_at"},
	FieldNotificationFlags:      {"notificationFlags", "notification_flags", "notified"},
	FieldAuthoritativeVIN:       {"authoritativeVin", "authoritative_vin", "vinAuthoritative", "vin_authoritative", "vin_correction"},
	FieldCorrectReference:       {"correctReference", "correct_reference", "roCorrection", "ro_correction", "reference_correction"},
	FieldNoCalRequired:          {"noCalRequired", "no_cal_required", "noCal", "no_cal", "no_calibration_required"},
	FieldEventTime:              {"eventTime", "event_time", "timestamp", "occurred_at"},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	idx := make(map[string]string)
	for canonical, names := range aliases {
		idx[foldKey(canonical)] = canonical
		for _, n := range names {
			idx[foldKey(n)] = canonical
		}
	}
	return idx
}

// foldKey lowercases and drops separators, so "roNumber", "ro_number",
// "RO Number" and "ro-number" all fold to "ronumber".
func foldKey(k string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(k)) {
		switch r {
		case '_', '-', ' ', '/', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Canonical resolves an inbound key to its canonical field name.
func Canonical(key string) (string, bool) {
	c, ok := aliasIndex[foldKey(key)]
	return c, ok
}
