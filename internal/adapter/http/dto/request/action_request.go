package request

import (
	"encoding/json"
	"errors"
	"strings"

	"adas_workorders/internal/domain/ingest"
	"adas_workorders/internal/usecase"
)

var ErrEmptyPayload = errors.New("payload has no fields")

// ActionRequest is the inbound update envelope. Producers either nest the
// patch under "fields" or send it flat next to "actor".
type ActionRequest struct {
	Actor  string         `json:"actor" binding:"max=120"`
	Fields map[string]any `json:"fields"`
}

// UnmarshalJSON accepts both the nested and the flat form.
func (r *ActionRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if a, ok := raw["actor"].(string); ok {
		r.Actor = strings.TrimSpace(a)
	}
	delete(raw, "actor")
	if nested, ok := raw["fields"].(map[string]any); ok {
		r.Fields = nested
		return nil
	}
	r.Fields = raw
	return nil
}

// ToCommand runs the payload through the ingestion boundary.
func (r ActionRequest) ToCommand(action string) (usecase.Command, error) {
	if len(r.Fields) == 0 {
		return usecase.Command{}, ErrEmptyPayload
	}
	patch, dropped := ingest.Normalize(r.Fields)
	return usecase.Command{
		Action:  usecase.Action(strings.ToLower(strings.TrimSpace(action))),
		Patch:   patch,
		Actor:   r.Actor,
		Dropped: dropped,
	}, nil
}
