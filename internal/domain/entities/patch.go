package entities

import "time"

// Patch is the strongly typed form of an inbound update, produced once at the
// ingestion boundary. Empty strings mean "not supplied".
type Patch struct {
	// At stamps the flow-history entries contributed by this patch. Replaying a
	// patch with the same At yields the same entries.
	At time.Time

	ShopName               string
	ReferenceNumber        string
	AuthoritativeReference string
	VIN                    string
	VehicleDescription     string

	Status Status

	ScheduledDate string
	ScheduledTime string
	Technician    string

	RequiredCalibrations  string
	CompletedCalibrations string
	CalibrationText       string

	DTCCodes []string
	DTCPhase ScanPhase

	Documents             Documents
	SupplementalDocuments string
	Invoice               Invoice

	Note        string
	FlowEntries []string

	JobStartedAt *time.Time
	JobEndedAt   *time.Time

	NotificationFlags []string

	// AuthoritativeVIN allows a valid VIN to replace another valid VIN.
	AuthoritativeVIN bool
	// CorrectReference allows the reference number to be replaced even when the
	// stored one is not garbage.
	CorrectReference bool
	// NoCalibrationRequired turns the calibration-report auto-advance into
	// no_cal_required instead of ready.
	NoCalibrationRequired bool
}

// HasDTCUpdate reports whether the patch targets a DTC phase.
func (p Patch) HasDTCUpdate() bool {
	return p.DTCCodes != nil
}
