// Package scrub extracts calibration items from the free text of a
// calibration/scrub report. It is an optional enrichment pass: its output is
// formatted into a patch's required-calibrations field and never touches the
// merge rules directly.
package scrub

import (
	"sort"
	"strings"

	"adas_workorders/internal/domain/entities"
)

const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

var confidenceRank = map[string]int{ConfidenceLow: 1, ConfidenceMedium: 2, ConfidenceHigh: 3}

type system struct {
	name     string
	keywords []string
}

// systems is ordered: the first system whose keyword appears on a line wins.
var systems = []system{
	{name: "Front Camera", keywords: []string{"front camera", "windshield camera", "forward camera", "fcm", "lane departure camera", "lka camera"}},
	{name: "Front Radar", keywords: []string{"front radar", "acc radar", "adaptive cruise", "forward radar", "millimeter wave", "distance sensor"}},
	{name: "Blind Spot Monitor", keywords: []string{"blind spot", "bsm", "rear radar", "side radar", "rcta", "cross traffic"}},
	{name: "Surround View Camera", keywords: []string{"surround view", "360", "bird's eye", "around view", "avm"}},
	{name: "Rear Camera", keywords: []string{"rear camera", "backup camera", "rearview camera", "reverse camera"}},
	{name: "Steering Angle Sensor", keywords: []string{"steering angle", "sas", "yaw rate"}},
	{name: "Park Assist Sensors", keywords: []string{"park assist", "parking sensor", "ultrasonic", "sonar"}},
	{name: "Headlamp Aim", keywords: []string{"headlamp", "headlight", "afs"}},
	{name: "Night Vision", keywords: []string{"night vision", "infrared camera"}},
	{name: "Lidar", keywords: []string{"lidar"}},
}

var sourceMarkers = []struct {
	marker string
	source string
}{
	{"position statement", "OEM position statement"},
	{"oem", "OEM procedure"},
	{"estimate", "estimate line"},
	{"windshield", "glass replacement"},
	{"bumper", "bumper repair"},
	{"alignment", "wheel alignment"},
	{"dtc", "diagnostic code"},
	{"pre-scan", "pre-scan"},
	{"prescan", "pre-scan"},
}

// Parse scans text line by line and returns one item per detected system,
// ordered by name. Duplicate mentions accumulate sources and keep the highest
// confidence.
func Parse(text string) []entities.CalibrationItem {
	byName := make(map[string]*entities.CalibrationItem)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.ToLower(strings.TrimSpace(raw))
		if line == "" || negated(line) {
			continue
		}
		sys, ok := detect(line)
		if !ok {
			continue
		}
		item, seen := byName[sys]
		if !seen {
			item = &entities.CalibrationItem{Name: sys, Confidence: ConfidenceLow}
			byName[sys] = item
		}
		if t := calibrationType(line); t != "" && item.Type == "" {
			item.Type = t
		} else if t != "" && item.Type != t {
			item.Type = "static+dynamic"
		}
		if c := confidence(line); confidenceRank[c] > confidenceRank[item.Confidence] {
			item.Confidence = c
		}
		for _, s := range sources(line) {
			if !contains(item.Sources, s) {
				item.Sources = append(item.Sources, s)
			}
		}
	}

	out := make([]entities.CalibrationItem, 0, len(byName))
	for _, it := range byName {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Format renders items as the comma-separated required-calibrations field,
// e.g. "Front Camera (static, HIGH), Blind Spot Monitor (dynamic, MEDIUM)".
func Format(items []entities.CalibrationItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		detail := it.Confidence
		if it.Type != "" {
			detail = it.Type + ", " + it.Confidence
		}
		parts = append(parts, it.Name+" ("+detail+")")
	}
	return strings.Join(parts, ", ")
}

func detect(line string) (string, bool) {
	for _, s := range systems {
		for _, k := range s.keywords {
			if containsWord(line, k) {
				return s.name, true
			}
		}
	}
	return "", false
}

func negated(line string) bool {
	for _, n := range []string{"no calibration", "not required", "n/a", "none required"} {
		if strings.Contains(line, n) {
			return true
		}
	}
	return false
}

func calibrationType(line string) string {
	static := strings.Contains(line, "static")
	dynamic := strings.Contains(line, "dynamic") || strings.Contains(line, "road test")
	switch {
	case static && dynamic:
		return "static+dynamic"
	case static:
		return "static"
	case dynamic:
		return "dynamic"
	}
	return ""
}

func confidence(line string) string {
	switch {
	case strings.Contains(line, "required"), strings.Contains(line, "must"), strings.Contains(line, "mandatory"):
		return ConfidenceHigh
	case strings.Contains(line, "recommended"), strings.Contains(line, "should"), strings.Contains(line, "may "):
		return ConfidenceMedium
	}
	return ConfidenceLow
}

func sources(line string) []string {
	var out []string
	for _, m := range sourceMarkers {
		if strings.Contains(line, m.marker) && !contains(out, m.source) {
			out = append(out, m.source)
		}
	}
	return out
}

// containsWord matches k in line on word boundaries so short tokens such as
// "sas" do not fire inside longer words.
func containsWord(line, k string) bool {
	for i := 0; ; {
		j := strings.Index(line[i:], k)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(k)
		if boundary(line, start-1) && boundary(line, end) {
			return true
		}
		i = start + 1
		if i >= len(line) {
			return false
		}
	}
}

func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
