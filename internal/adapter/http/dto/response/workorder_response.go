package response

import (
	"time"

	"adas_workorders/internal/domain/audit"
	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/domain/lifecycle"
	"adas_workorders/internal/usecase"
)

type DTCResponse struct {
	Pre  []string `json:"pre,omitempty"`
	Post []string `json:"post,omitempty"`
}

type WorkOrderResponse struct {
	ID                    string             `json:"id"`
	Version               int64              `json:"version"`
	ShopName              string             `json:"shop_name"`
	ReferenceNumber       string             `json:"reference_number"`
	VIN                   string             `json:"vin"`
	VINValid              bool               `json:"vin_valid"`
	VehicleDescription    string             `json:"vehicle_description"`
	Status                string             `json:"status"`
	ScheduledDate         string             `json:"scheduled_date,omitempty"`
	ScheduledTime         string             `json:"scheduled_time,omitempty"`
	Technician            string             `json:"technician,omitempty"`
	RequiredCalibrations  string             `json:"required_calibrations,omitempty"`
	CompletedCalibrations string             `json:"completed_calibrations,omitempty"`
	DTCs                  DTCResponse        `json:"dtcs"`
	Documents             entities.Documents `json:"documents"`
	SupplementalDocuments string             `json:"supplemental_documents,omitempty"`
	Invoice               entities.Invoice   `json:"invoice"`
	ShortNotes            string             `json:"short_notes,omitempty"`
	FlowHistory           []string           `json:"flow_history"`
	JobStartedAt          *time.Time         `json:"job_started_at,omitempty"`
	JobEndedAt            *time.Time         `json:"job_ended_at,omitempty"`
	NotificationFlags     []string           `json:"notification_flags,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

func FromWorkOrder(wo entities.WorkOrder) WorkOrderResponse {
	history := audit.Entries(wo.FlowHistory)
	if history == nil {
		history = []string{}
	}
	return WorkOrderResponse{
		ID:                    wo.ID,
		Version:               wo.Version,
		ShopName:              wo.ShopName,
		ReferenceNumber:       wo.ReferenceNumber,
		VIN:                   wo.VIN,
		VINValid:              wo.VINValid,
		VehicleDescription:    wo.VehicleDescription,
		Status:                string(wo.Status),
		ScheduledDate:         wo.ScheduledDate,
		ScheduledTime:         wo.ScheduledTime,
		Technician:            wo.Technician,
		RequiredCalibrations:  wo.RequiredCalibrations,
		CompletedCalibrations: wo.CompletedCalibrations,
		DTCs:                  DTCResponse{Pre: wo.DTCs.Pre, Post: wo.DTCs.Post},
		Documents:             wo.Documents,
		SupplementalDocuments: wo.SupplementalDocuments,
		Invoice:               wo.Invoice,
		ShortNotes:            wo.ShortNotes,
		FlowHistory:           history,
		JobStartedAt:          wo.JobStartedAt,
		JobEndedAt:            wo.JobEndedAt,
		NotificationFlags:     wo.NotificationFlags,
		CreatedAt:             wo.CreatedAt,
		UpdatedAt:             wo.UpdatedAt,
	}
}

// ActionResponse is the body of a successful action call.
type ActionResponse struct {
	Success       bool               `json:"success"`
	Action        string             `json:"action"`
	Created       bool               `json:"created"`
	MatchedBy     string             `json:"matched_by,omitempty"`
	Transition    lifecycle.Decision `json:"transition"`
	Appended      []string           `json:"appended,omitempty"`
	Changed       []string           `json:"changed,omitempty"`
	Warnings      []string           `json:"warnings,omitempty"`
	DroppedFields []string           `json:"dropped_fields,omitempty"`
	WorkOrder     WorkOrderResponse  `json:"work_order"`
}

func FromResult(res usecase.Result, dropped []string) ActionResponse {
	return ActionResponse{
		Success:       res.Success,
		Action:        string(res.Action),
		Created:       res.Created,
		MatchedBy:     res.MatchedBy,
		Transition:    res.Transition,
		Appended:      res.Appended,
		Changed:       res.Changed,
		Warnings:      res.Warnings,
		DroppedFields: dropped,
		WorkOrder:     FromWorkOrder(res.WorkOrder),
	}
}
