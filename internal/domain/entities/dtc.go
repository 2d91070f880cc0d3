package entities

import "strings"

// ScanPhase selects which DTC sub-list an update targets.
type ScanPhase string

const (
	ScanPhasePre  ScanPhase = "PRE"
	ScanPhasePost ScanPhase = "POST"
)

// ParseScanPhase maps loose phase labels onto a ScanPhase. Anything that is not
// recognisably a post-repair scan is treated as pre-repair.
func ParseScanPhase(raw string) ScanPhase {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "POST", "POSTSCAN", "POST-SCAN", "POST_SCAN", "POST SCAN", "POST-REPAIR", "AFTER":
		return ScanPhasePost
	default:
		return ScanPhasePre
	}
}

// DTCSet keeps the pre-repair and post-repair diagnostic trouble codes of a job.
// Persisted as one field: "PRE: P0420, U0100 | POST: B1234".
type DTCSet struct {
	Pre  []string `json:"pre,omitempty"`
	Post []string `json:"post,omitempty"`
}

func (d DTCSet) Clone() DTCSet {
	out := DTCSet{}
	if d.Pre != nil {
		out.Pre = append([]string(nil), d.Pre...)
	}
	if d.Post != nil {
		out.Post = append([]string(nil), d.Post...)
	}
	return out
}

func (d DTCSet) Empty() bool {
	return len(d.Pre) == 0 && len(d.Post) == 0
}

// Phase returns the codes of one phase.
func (d DTCSet) Phase(p ScanPhase) []string {
	if p == ScanPhasePost {
		return d.Post
	}
	return d.Pre
}

// WithPhase returns a copy with one phase replaced and the other preserved.
func (d DTCSet) WithPhase(p ScanPhase, codes []string) DTCSet {
	out := d.Clone()
	if p == ScanPhasePost {
		out.Post = codes
	} else {
		out.Pre = codes
	}
	return out
}

// String renders the storage form.
func (d DTCSet) String() string {
	if d.Empty() {
		return ""
	}
	parts := make([]string, 0, 2)
	if len(d.Pre) > 0 {
		parts = append(parts, "PRE: "+strings.Join(d.Pre, ", "))
	}
	if len(d.Post) > 0 {
		parts = append(parts, "POST: "+strings.Join(d.Post, ", "))
	}
	return strings.Join(parts, " | ")
}

// ParseDTCSet reads the storage form back. Unlabelled content is taken as PRE.
func ParseDTCSet(raw string) DTCSet {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DTCSet{}
	}
	var out DTCSet
	for _, section := range strings.Split(raw, "|") {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		phase := ScanPhasePre
		body := section
		if label, rest, ok := strings.Cut(section, ":"); ok {
			phase = ParseScanPhase(label)
			body = rest
		}
		var codes []string
		for _, c := range strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == ' ' || r == ';' }) {
			if c = strings.TrimSpace(c); c != "" {
				codes = append(codes, c)
			}
		}
		if phase == ScanPhasePost {
			out.Post = append(out.Post, codes...)
		} else {
			out.Pre = append(out.Pre, codes...)
		}
	}
	return out
}
