package entities

import "strings"

// Shop maps a shop name to the service region it belongs to.
type Shop struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Technician covers one or more regions, listed comma-separated.
type Technician struct {
	Name    string `json:"name"`
	Regions string `json:"regions"`
	Active  bool   `json:"active"`
}

// Covers reports whether the technician serves region (case-insensitive).
func (t Technician) Covers(region string) bool {
	region = strings.TrimSpace(region)
	if region == "" {
		return false
	}
	for _, r := range strings.Split(t.Regions, ",") {
		if strings.EqualFold(strings.TrimSpace(r), region) {
			return true
		}
	}
	return false
}

// CalibrationItem is one calibration extracted from a scrub/calibration report.
type CalibrationItem struct {
	Name       string   `json:"name"`
	Type       string   `json:"type,omitempty"`
	Confidence string   `json:"confidence"`
	Sources    []string `json:"sources,omitempty"`
}
