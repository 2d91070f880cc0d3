package usecase

import (
	"errors"

	"adas_workorders/internal/domain/audit"
	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/domain/lifecycle"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("work order not found")
	ErrConflict      = errors.New("conflicting request in flight")
	ErrUpstreamFetch = errors.New("upstream document fetch failed")
	ErrUnknownAction = errors.New("unknown action")
)

// Action names an inbound update type.
type Action string

const (
	ActionShopSubmit    Action = "shop_submit"
	ActionShopUpdate    Action = "shop_update"
	ActionShopSchedule  Action = "shop_schedule"
	ActionShopCancel    Action = "shop_cancel"
	ActionShopNote      Action = "shop_note"
	ActionTechStatus    Action = "tech_status"
	ActionTechArrival   Action = "tech_arrival"
	ActionTechComplete  Action = "tech_complete"
	ActionTechDTC       Action = "tech_dtc"
	ActionReportIngest  Action = "report_ingest"
	ActionAdminStatus   Action = "admin_status"
	ActionAdminReassign Action = "admin_reassign"
)

type actionSpec struct {
	create   bool
	admin    bool
	override bool
	event    audit.EventCode
}

var actionSpecs = map[Action]actionSpec{
	ActionShopSubmit:    {create: true, event: audit.EventUpdated},
	ActionShopUpdate:    {event: audit.EventUpdated},
	ActionShopSchedule:  {event: audit.EventScheduled},
	ActionShopCancel:    {event: audit.EventCancelled},
	ActionShopNote:      {event: audit.EventNote},
	ActionTechStatus:    {event: audit.EventStatus},
	ActionTechArrival:   {event: audit.EventArrived},
	ActionTechComplete:  {event: audit.EventCompleted},
	ActionTechDTC:       {event: audit.EventDTC},
	ActionReportIngest:  {create: true, event: audit.EventReport},
	ActionAdminStatus:   {admin: true, override: true, event: audit.EventOverride},
	ActionAdminReassign: {admin: true, event: audit.EventReassigned},
}

// Actions lists every supported action.
func Actions() []Action {
	return []Action{
		ActionShopSubmit, ActionShopUpdate, ActionShopSchedule, ActionShopCancel, ActionShopNote,
		ActionTechStatus, ActionTechArrival, ActionTechComplete, ActionTechDTC,
		ActionReportIngest, ActionAdminStatus, ActionAdminReassign,
	}
}

// Command is one inbound update handed to the engine.
type Command struct {
	Action Action
	Patch  entities.Patch
	Actor  string
	// Dropped lists payload keys the ingestion boundary did not recognise.
	Dropped []string
}

// Result is the structured outcome of Apply. Engine operations never panic or
// return bare errors past this boundary; Err carries one of the sentinel
// errors above when Success is false.
type Result struct {
	Success    bool               `json:"success"`
	Action     Action             `json:"action"`
	Created    bool               `json:"created"`
	MatchedBy  string             `json:"matched_by,omitempty"`
	WorkOrder  entities.WorkOrder `json:"work_order"`
	Transition lifecycle.Decision `json:"transition"`
	Appended   []string           `json:"appended,omitempty"`
	Changed    []string           `json:"changed,omitempty"`
	Warnings   []string           `json:"warnings,omitempty"`
	Err        error              `json:"-"`
	Reason     string             `json:"reason,omitempty"`
}

func failure(action Action, err error) Result {
	return Result{Success: false, Action: action, Err: err, Reason: err.Error()}
}
