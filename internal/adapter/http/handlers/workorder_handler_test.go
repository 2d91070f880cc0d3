package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"adas_workorders/internal/adapter/http/handlers/mocks"
	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newActionRouter(h *WorkOrderHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/workorders/actions/:action", h.ApplyAction)
	r.GET("/v1/workorders/:id", h.GetWorkOrder)
	r.GET("/v1/workorders", h.LocateWorkOrder)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWorkOrderHandler_ApplyAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWorkOrderUseCase(ctrl)
		r := newActionRouter(NewWorkOrderHandler(uc, nil))

		w := doJSON(r, http.MethodPost, "/v1/workorders/actions/shop_submit", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWorkOrderUseCase(ctrl)
		r := newActionRouter(NewWorkOrderHandler(uc, nil))

		w := doJSON(r, http.MethodPost, "/v1/workorders/actions/shop_submit", `{"actor":"x"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWorkOrderUseCase(ctrl)
		r := newActionRouter(NewWorkOrderHandler(uc, nil))

		uc.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, cmd usecase.Command) usecase.Result {
			if cmd.Action != usecase.ActionShopSubmit || cmd.Patch.ReferenceNumber != "3080" || cmd.Actor != "shop-portal" {
				t.Fatalf("unexpected command %+v", cmd)
			}
			return usecase.Result{
				Success:   true,
				Action:    cmd.Action,
				Created:   true,
				WorkOrder: entities.WorkOrder{ID: "wo-1", ReferenceNumber: "3080", Status: entities.StatusNew},
			}
		})

		w := doJSON(r, http.MethodPost, "/v1/workorders/actions/shop_submit", `{"actor":"shop-portal","fields":{"ro":"3080","shop":"Acme Body"}}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["created"] != true {
			t.Fatalf("expected created=true, got %v", body["created"])
		}
	})

	t.Run("updated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWorkOrderUseCase(ctrl)
		r := newActionRouter(NewWorkOrderHandler(uc, nil))

		uc.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(usecase.Result{
			Success:   true,
			Action:    usecase.ActionTechStatus,
			MatchedBy: "vin",
			WorkOrder: entities.WorkOrder{ID: "wo-1"},
		})

		w := doJSON(r, http.MethodPost, "/v1/workorders/actions/tech_status", `{"vin":"1HGCM82633A004352","status":"in progress"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	errCases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: no usable reference number", usecase.ErrValidation), http.StatusBadRequest},
		{"unknown action", usecase.ErrUnknownAction, http.StatusBadRequest},
		{"not found", usecase.ErrNotFound, http.StatusNotFound},
		{"conflict", usecase.ErrConflict, http.StatusConflict},
		{"internal", errors.New("db"), http.StatusInternalServerError},
	}
	for _, tc := range errCases {
		t.Run("maps "+tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIWorkOrderUseCase(ctrl)
			r := newActionRouter(NewWorkOrderHandler(uc, nil))

			uc.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(usecase.Result{Success: false, Err: tc.err, Reason: tc.err.Error()})

			w := doJSON(r, http.MethodPost, "/v1/workorders/actions/shop_update", `{"ref":"3080"}`)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestWorkOrderHandler_GetWorkOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWorkOrderUseCase(ctrl)
		r := newActionRouter(NewWorkOrderHandler(uc, nil))

		uc.EXPECT().Get(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1"}, nil)

		w := doJSON(r, http.MethodGet, "/v1/workorders/wo-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWorkOrderUseCase(ctrl)
		r := newActionRouter(NewWorkOrderHandler(uc, nil))

		uc.EXPECT().Get(gomock.Any(), "missing").Return(entities.WorkOrder{}, usecase.ErrNotFound)

		w := doJSON(r, http.MethodGet, "/v1/workorders/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestWorkOrderHandler_LocateWorkOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWorkOrderUseCase(ctrl)
		r := newActionRouter(NewWorkOrderHandler(uc, nil))

		w := doJSON(r, http.MethodGet, "/v1/workorders", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("by reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWorkOrderUseCase(ctrl)
		r := newActionRouter(NewWorkOrderHandler(uc, nil))

		uc.EXPECT().Locate(gomock.Any(), "", "11999").Return(entities.WorkOrder{ID: "wo-9", ReferenceNumber: "11999-PM"}, nil)

		w := doJSON(r, http.MethodGet, "/v1/workorders?reference=11999", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["reference_number"] != "11999-PM" {
			t.Fatalf("unexpected reference %v", body["reference_number"])
		}
	})
}
