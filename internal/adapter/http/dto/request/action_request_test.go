package request

import (
	"encoding/json"
	"errors"
	"testing"

	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/usecase"
)

func TestActionRequest_UnmarshalJSON(t *testing.T) {
	t.Run("nested fields", func(t *testing.T) {
		var r ActionRequest
		if err := json.Unmarshal([]byte(`{"actor":" ops ","fields":{"ref":"3080","shopName":"Acme"}}`), &r); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if r.Actor != "ops" || len(r.Fields) != 2 {
			t.Fatalf("unexpected request %+v", r)
		}
	})

	t.Run("flat fields", func(t *testing.T) {
		var r ActionRequest
		if err := json.Unmarshal([]byte(`{"actor":"tech-1","reference_number":"3080","status":"Done"}`), &r); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if _, ok := r.Fields["actor"]; ok {
			t.Fatalf("actor must not leak into fields")
		}
		if len(r.Fields) != 2 {
			t.Fatalf("expected 2 fields, got %d", len(r.Fields))
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		var r ActionRequest
		if err := json.Unmarshal([]byte(`[1,2]`), &r); err == nil {
			t.Fatalf("expected error for non-object payload")
		}
	})
}

func TestActionRequest_ToCommand(t *testing.T) {
	t.Run("empty payload", func(t *testing.T) {
		_, err := ActionRequest{}.ToCommand("shop_submit")
		if !errors.Is(err, ErrEmptyPayload) {
			t.Fatalf("expected ErrEmptyPayload, got %v", err)
		}
	})

	t.Run("normalizes aliases and reports unknown keys", func(t *testing.T) {
		r := ActionRequest{Actor: "shop", Fields: map[string]any{
			"referenceNumber": "11999-PM",
			"status":          "Ready to Schedule",
			"favouriteColour": "blue",
		}}
		cmd, err := r.ToCommand(" Shop_Submit ")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if cmd.Action != usecase.ActionShopSubmit {
			t.Fatalf("expected shop_submit, got %q", cmd.Action)
		}
		if cmd.Patch.ReferenceNumber != "11999-PM" {
			t.Fatalf("expected reference to be normalized, got %q", cmd.Patch.ReferenceNumber)
		}
		if cmd.Patch.Status != entities.StatusReady {
			t.Fatalf("expected ready status, got %q", cmd.Patch.Status)
		}
		if len(cmd.Dropped) != 1 || cmd.Dropped[0] != "favouriteColour" {
			t.Fatalf("expected favouriteColour dropped, got %v", cmd.Dropped)
		}
	})
}
