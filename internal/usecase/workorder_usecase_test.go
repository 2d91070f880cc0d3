package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"adas_workorders/internal/adapter/persistence/repository"
	"adas_workorders/internal/domain/audit"
	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/domain/lifecycle"
	"adas_workorders/internal/usecase/interfaces"
	mock_interfaces "adas_workorders/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func newMemoryUseCase(t *testing.T, opts ...Option) (*WorkOrderUseCase, *repository.WorkOrderMemoryRepository) {
	t.Helper()
	repo := repository.NewWorkOrderMemoryRepository()
	assigner := NewAssignmentResolver(repository.StaticDirectory{}, repository.StaticDirectory{}, "Dispatch", nil)
	seq := 0
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { seq++; return "wo-" + string(rune('0'+seq)) }),
	}
	return NewWorkOrderUseCase(repo, assigner, nil, nil, append(base, opts...)...), repo
}

func submit(t *testing.T, uc *WorkOrderUseCase, ref string) entities.WorkOrder {
	t.Helper()
	res := uc.Apply(context.Background(), Command{
		Action: ActionShopSubmit,
		Patch:  entities.Patch{ReferenceNumber: ref, ShopName: "Acme Body"},
	})
	if !res.Success {
		t.Fatalf("submit failed: %v", res.Err)
	}
	return res.WorkOrder
}

func TestWorkOrderUseCase_Apply_Validation(t *testing.T) {
	t.Run("unknown action", func(t *testing.T) {
		uc, _ := newMemoryUseCase(t)
		res := uc.Apply(context.Background(), Command{Action: "shop_dance"})
		if res.Success || !errors.Is(res.Err, ErrUnknownAction) {
			t.Fatalf("expected ErrUnknownAction, got %+v", res)
		}
	})

	t.Run("submit without reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil)

		res := uc.Apply(context.Background(), Command{Action: ActionShopSubmit, Patch: entities.Patch{ShopName: "Acme"}})
		if !errors.Is(res.Err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", res.Err)
		}
		if res.Reason == "" {
			t.Fatalf("expected a reason")
		}
	})

	t.Run("schedule without date", func(t *testing.T) {
		uc, _ := newMemoryUseCase(t)
		res := uc.Apply(context.Background(), Command{Action: ActionShopSchedule, Patch: entities.Patch{ReferenceNumber: "4410"}})
		if !errors.Is(res.Err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", res.Err)
		}
	})

	t.Run("admin status needs canonical target", func(t *testing.T) {
		uc, _ := newMemoryUseCase(t)
		res := uc.Apply(context.Background(), Command{Action: ActionAdminStatus, Patch: entities.Patch{ReferenceNumber: "4410", Status: "whatever"}})
		if !errors.Is(res.Err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", res.Err)
		}
	})
}

func TestWorkOrderUseCase_Apply_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
	metrics := mock_interfaces.NewMockIWorkflowMetrics(ctrl)
	uc := NewWorkOrderUseCase(repo, nil, nil, nil, WithMetrics(metrics))

	repo.EXPECT().FindByReference(gomock.Any(), "4410").Return(entities.WorkOrder{}, nil)
	metrics.EXPECT().ActionApplied("shop_note", "not_found")

	res := uc.Apply(context.Background(), Command{Action: ActionShopNote, Patch: entities.Patch{ReferenceNumber: "4410", Note: "call"}})
	if !errors.Is(res.Err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", res.Err)
	}
}

func TestWorkOrderUseCase_Apply_Create(t *testing.T) {
	uc, repo := newMemoryUseCase(t)

	res := uc.Apply(context.Background(), Command{
		Action: ActionShopSubmit,
		Actor:  "portal",
		Patch:  entities.Patch{ReferenceNumber: "11999-PM", ShopName: "Acme Body", VIN: "1HGCM82633A004352"},
	})
	if !res.Success || !res.Created {
		t.Fatalf("expected created, got %+v", res)
	}
	wo := res.WorkOrder
	if wo.ID != "wo-1" || wo.Version != 1 || wo.Status != entities.StatusNew {
		t.Fatalf("unexpected record: %+v", wo)
	}
	if wo.Technician != "Dispatch" {
		t.Fatalf("expected default technician, got %q", wo.Technician)
	}
	if !wo.VINValid {
		t.Fatalf("expected valid vin")
	}
	entries := audit.Entries(wo.FlowHistory)
	if len(entries) != 1 || !strings.HasPrefix(entries[0], "2024-03-14T09:30:00Z CREATED") || !strings.HasSuffix(entries[0], "by=portal") {
		t.Fatalf("unexpected history: %q", wo.FlowHistory)
	}

	stored, _ := repo.ReadFull(context.Background(), "wo-1")
	if stored.ReferenceNumber != "11999-PM" {
		t.Fatalf("expected stored record, got %+v", stored)
	}
}

func TestWorkOrderUseCase_Apply_MatchesFuzzyReference(t *testing.T) {
	uc, _ := newMemoryUseCase(t)
	submit(t, uc, "11999-PM")

	res := uc.Apply(context.Background(), Command{Action: ActionShopNote, Patch: entities.Patch{ReferenceNumber: "11999", Note: "parts arrived"}})
	if !res.Success || res.Created {
		t.Fatalf("expected update of existing record, got %+v", res)
	}
	if res.MatchedBy != "normalized_reference" {
		t.Fatalf("expected normalized match, got %q", res.MatchedBy)
	}
	if res.WorkOrder.ShortNotes != "parts arrived" || res.WorkOrder.Version != 2 {
		t.Fatalf("unexpected record: %+v", res.WorkOrder)
	}
}

func TestWorkOrderUseCase_Apply_AdoptsAuthoritativeReference(t *testing.T) {
	uc, _ := newMemoryUseCase(t)
	submit(t, uc, "3080")

	res := uc.Apply(context.Background(), Command{
		Action: ActionReportIngest,
		Patch:  entities.Patch{AuthoritativeReference: "3080-ENT", RequiredCalibrations: "Front Camera (static, HIGH)"},
	})
	if !res.Success {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if res.WorkOrder.ReferenceNumber != "3080-ENT" {
		t.Fatalf("expected fuller reference, got %q", res.WorkOrder.ReferenceNumber)
	}
}

func TestWorkOrderUseCase_Apply_ReplayIsNoop(t *testing.T) {
	uc, _ := newMemoryUseCase(t)
	submit(t, uc, "4410")

	cmd := Command{Action: ActionShopSchedule, Patch: entities.Patch{ReferenceNumber: "4410", ScheduledDate: "2024-03-20", ScheduledTime: "09:00"}}
	first := uc.Apply(context.Background(), cmd)
	second := uc.Apply(context.Background(), cmd)

	if !first.Success || !second.Success {
		t.Fatalf("unexpected failure: %v / %v", first.Err, second.Err)
	}
	if first.WorkOrder.Status != entities.StatusScheduled {
		t.Fatalf("expected scheduled, got %s", first.WorkOrder.Status)
	}
	if len(second.Appended) != 0 || len(second.Changed) != 0 {
		t.Fatalf("expected replay to be a no-op, got %+v", second)
	}
	if second.WorkOrder.Version != first.WorkOrder.Version {
		t.Fatalf("expected no write on replay, versions %d -> %d", first.WorkOrder.Version, second.WorkOrder.Version)
	}
	if strings.Count(second.WorkOrder.FlowHistory, "SCHEDULED") != 1 {
		t.Fatalf("expected a single schedule entry, got %q", second.WorkOrder.FlowHistory)
	}
}

func TestWorkOrderUseCase_Apply_Reschedule(t *testing.T) {
	uc, _ := newMemoryUseCase(t)
	submit(t, uc, "4410")
	uc.Apply(context.Background(), Command{Action: ActionShopSchedule, Patch: entities.Patch{ReferenceNumber: "4410", ScheduledDate: "2024-03-20"}})

	res := uc.Apply(context.Background(), Command{Action: ActionShopSchedule, Patch: entities.Patch{ReferenceNumber: "4410", ScheduledDate: "2024-03-22"}})
	if !res.Success {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if res.WorkOrder.ScheduledDate != "2024-03-22" {
		t.Fatalf("expected new date, got %q", res.WorkOrder.ScheduledDate)
	}
	if res.WorkOrder.Status != entities.StatusScheduled || res.Transition.Kind != lifecycle.KindHeld {
		t.Fatalf("expected scheduled to be held, got %s (%s)", res.WorkOrder.Status, res.Transition.Kind)
	}
	if !strings.Contains(res.WorkOrder.FlowHistory, "RESCHEDULED from 2024-03-20 to 2024-03-22") {
		t.Fatalf("expected reschedule entry, got %q", res.WorkOrder.FlowHistory)
	}
}

func TestWorkOrderUseCase_Apply_RegressionBlocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	metrics := mock_interfaces.NewMockIWorkflowMetrics(ctrl)
	uc, _ := newMemoryUseCase(t, WithMetrics(metrics))

	metrics.EXPECT().ActionApplied(gomock.Any(), "success").AnyTimes()
	metrics.EXPECT().WorkOrderCreated("shop_submit")
	metrics.EXPECT().RegressionBlocked("completed", "ready")

	submit(t, uc, "4410")
	uc.Apply(context.Background(), Command{Action: ActionTechComplete, Patch: entities.Patch{ReferenceNumber: "4410"}})
	res := uc.Apply(context.Background(), Command{Action: ActionTechStatus, Patch: entities.Patch{ReferenceNumber: "4410", Status: entities.StatusReady}})

	if res.WorkOrder.Status != entities.StatusCompleted {
		t.Fatalf("expected completed to hold, got %s", res.WorkOrder.Status)
	}
	if res.WorkOrder.JobEndedAt == nil || !res.WorkOrder.JobEndedAt.Equal(fixedNow) {
		t.Fatalf("expected job end stamped, got %v", res.WorkOrder.JobEndedAt)
	}
}

func TestWorkOrderUseCase_Apply_TechArrival(t *testing.T) {
	uc, _ := newMemoryUseCase(t)
	submit(t, uc, "4410")

	res := uc.Apply(context.Background(), Command{Action: ActionTechArrival, Patch: entities.Patch{ReferenceNumber: "4410"}})
	if res.WorkOrder.Status != entities.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", res.WorkOrder.Status)
	}
	if res.WorkOrder.JobStartedAt == nil {
		t.Fatalf("expected job start stamped")
	}
	if !strings.Contains(res.WorkOrder.FlowHistory, "ARRIVED technician Dispatch arrived") {
		t.Fatalf("unexpected history %q", res.WorkOrder.FlowHistory)
	}
}

func TestWorkOrderUseCase_Apply_ReportIngest(t *testing.T) {
	t.Run("scrub text fills calibrations and readies the job", func(t *testing.T) {
		uc, _ := newMemoryUseCase(t)
		submit(t, uc, "4410")

		res := uc.Apply(context.Background(), Command{Action: ActionReportIngest, Patch: entities.Patch{
			ReferenceNumber: "4410",
			Documents:       entities.Documents{CalibrationReport: "https://reports/4410.pdf"},
			CalibrationText: "front camera static calibration required",
		}})
		if !res.Success {
			t.Fatalf("unexpected failure: %v", res.Err)
		}
		if res.WorkOrder.Status != entities.StatusReady || res.Transition.Kind != lifecycle.KindAutoReady {
			t.Fatalf("expected auto ready, got %s (%s)", res.WorkOrder.Status, res.Transition.Kind)
		}
		if res.WorkOrder.RequiredCalibrations != "Front Camera (static, HIGH)" {
			t.Fatalf("unexpected calibrations %q", res.WorkOrder.RequiredCalibrations)
		}
	})

	t.Run("fetch failure is a warning", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		fetcher := mock_interfaces.NewMockIDocumentFetcher(ctrl)
		metrics := mock_interfaces.NewMockIWorkflowMetrics(ctrl)
		repo := repository.NewWorkOrderMemoryRepository()
		uc := NewWorkOrderUseCase(repo, nil, fetcher, nil, WithMetrics(metrics), WithClock(func() time.Time { return fixedNow }))

		_, _ = repo.Insert(context.Background(), entities.WorkOrder{ID: "wo-1", Version: 1, ReferenceNumber: "4410", Status: entities.StatusNew, CreatedAt: fixedNow})

		fetcher.EXPECT().Fetch(gomock.Any(), "https://reports/4410.pdf").Return(interfaces.Document{}, errors.New("timeout"))
		metrics.EXPECT().DocumentFetchFailed()
		metrics.EXPECT().AutoReadyTriggered()
		metrics.EXPECT().ActionApplied("report_ingest", "success")

		res := uc.Apply(context.Background(), Command{Action: ActionReportIngest, Patch: entities.Patch{
			ReferenceNumber: "4410",
			Documents:       entities.Documents{CalibrationReport: "https://reports/4410.pdf"},
		}})
		if !res.Success {
			t.Fatalf("expected success despite fetch failure, got %v", res.Err)
		}
		if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], ErrUpstreamFetch.Error()) {
			t.Fatalf("expected fetch warning, got %v", res.Warnings)
		}
		if res.WorkOrder.Status != entities.StatusReady {
			t.Fatalf("expected ready, got %s", res.WorkOrder.Status)
		}
	})

	t.Run("fetched text is scrubbed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		fetcher := mock_interfaces.NewMockIDocumentFetcher(ctrl)
		repo := repository.NewWorkOrderMemoryRepository()
		uc := NewWorkOrderUseCase(repo, nil, fetcher, nil)

		fetcher.EXPECT().Fetch(gomock.Any(), "s3://reports/7001.txt").Return(interfaces.Document{
			ContentType: "text/plain",
			Body:        []byte("Blind spot monitor dynamic calibration must be done"),
		}, nil)

		res := uc.Apply(context.Background(), Command{Action: ActionReportIngest, Patch: entities.Patch{
			ReferenceNumber: "7001",
			Documents:       entities.Documents{CalibrationReport: "s3://reports/7001.txt"},
		}})
		if !res.Success || !res.Created {
			t.Fatalf("expected report ingest to create, got %+v", res)
		}
		if res.WorkOrder.RequiredCalibrations != "Blind Spot Monitor (dynamic, HIGH)" {
			t.Fatalf("unexpected calibrations %q", res.WorkOrder.RequiredCalibrations)
		}
		if res.WorkOrder.Status != entities.StatusReady {
			t.Fatalf("expected ready, got %s", res.WorkOrder.Status)
		}
	})
}

func TestWorkOrderUseCase_Apply_AdminGuard(t *testing.T) {
	t.Run("duplicate request refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		guard := mock_interfaces.NewMockIRequestGuard(ctrl)
		uc, _ := newMemoryUseCase(t)
		uc.guard = guard
		wo := submit(t, uc, "4410")

		guard.EXPECT().Acquire(gomock.Any(), "workorder:admin:"+wo.ID, defaultGuardTTL).Return(false, nil)

		res := uc.Apply(context.Background(), Command{Action: ActionAdminStatus, Patch: entities.Patch{ReferenceNumber: "4410", Status: entities.StatusReady}})
		if !errors.Is(res.Err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", res.Err)
		}
	})

	t.Run("override releases the guard", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		guard := mock_interfaces.NewMockIRequestGuard(ctrl)
		uc, _ := newMemoryUseCase(t, WithGuardTTL(time.Minute))
		uc.guard = guard
		wo := submit(t, uc, "4410")
		uc.Apply(context.Background(), Command{Action: ActionTechComplete, Patch: entities.Patch{ReferenceNumber: "4410"}})

		key := "workorder:admin:" + wo.ID
		gomock.InOrder(
			guard.EXPECT().Acquire(gomock.Any(), key, time.Minute).Return(true, nil),
			guard.EXPECT().Release(gomock.Any(), key).Return(nil),
		)

		res := uc.Apply(context.Background(), Command{Action: ActionAdminStatus, Actor: "admin", Patch: entities.Patch{ReferenceNumber: "4410", Status: entities.StatusReady}})
		if !res.Success {
			t.Fatalf("unexpected failure: %v", res.Err)
		}
		if res.WorkOrder.Status != entities.StatusReady || res.Transition.Kind != lifecycle.KindOverride {
			t.Fatalf("expected override to ready, got %s (%s)", res.WorkOrder.Status, res.Transition.Kind)
		}
		if !strings.Contains(res.WorkOrder.FlowHistory, "OVERRIDE manual override completed -> ready by=admin") {
			t.Fatalf("unexpected history %q", res.WorkOrder.FlowHistory)
		}
	})
}

func TestWorkOrderUseCase_Apply_VersionConflict(t *testing.T) {
	record := entities.WorkOrder{ID: "wo-1", Version: 4, ReferenceNumber: "4410", Status: entities.StatusNew, CreatedAt: fixedNow}
	cmd := Command{Action: ActionShopNote, Patch: entities.Patch{ReferenceNumber: "4410", Note: "call the shop"}}

	t.Run("retries and succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil, WithClock(func() time.Time { return fixedNow }))

		repo.EXPECT().FindByReference(gomock.Any(), "4410").Return(record, nil)
		repo.EXPECT().ReadFull(gomock.Any(), "wo-1").Return(record, nil).Times(2)
		gomock.InOrder(
			repo.EXPECT().WriteFull(gomock.Any(), gomock.Any()).Return(entities.WorkOrder{}, interfaces.ErrVersionConflict),
			repo.EXPECT().WriteFull(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
					if wo.Version != 4 {
						t.Fatalf("expected compare on version 4, got %d", wo.Version)
					}
					wo.Version++
					return wo, nil
				},
			),
		)

		res := uc.Apply(context.Background(), cmd)
		if !res.Success || res.WorkOrder.Version != 5 {
			t.Fatalf("expected success at version 5, got %+v", res)
		}
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil)

		repo.EXPECT().FindByReference(gomock.Any(), "4410").Return(record, nil)
		repo.EXPECT().ReadFull(gomock.Any(), "wo-1").Return(record, nil).Times(defaultMaxWriteAttempts)
		repo.EXPECT().WriteFull(gomock.Any(), gomock.Any()).Return(entities.WorkOrder{}, interfaces.ErrVersionConflict).Times(defaultMaxWriteAttempts)

		res := uc.Apply(context.Background(), cmd)
		if !errors.Is(res.Err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", res.Err)
		}
	})

	t.Run("store error surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil)

		repo.EXPECT().FindByReference(gomock.Any(), "4410").Return(entities.WorkOrder{}, errors.New("db"))

		res := uc.Apply(context.Background(), cmd)
		if res.Success || res.Err == nil || !strings.Contains(res.Err.Error(), "db") {
			t.Fatalf("expected db error, got %v", res.Err)
		}
	})
}

func TestWorkOrderUseCase_Apply_VINTakesPrecedence(t *testing.T) {
	uc, _ := newMemoryUseCase(t)
	first := uc.Apply(context.Background(), Command{Action: ActionShopSubmit, Patch: entities.Patch{ReferenceNumber: "4410", VIN: "1HGCM82633A004352"}})
	if !first.Success {
		t.Fatalf("unexpected failure: %v", first.Err)
	}

	res := uc.Apply(context.Background(), Command{Action: ActionShopSubmit, Patch: entities.Patch{ReferenceNumber: "9999", VIN: "1hgcm82633a004352"}})
	if res.Created || res.WorkOrder.ID != first.WorkOrder.ID {
		t.Fatalf("expected VIN match on %s, got %+v", first.WorkOrder.ID, res)
	}
	if res.MatchedBy != "vin" {
		t.Fatalf("expected vin tier, got %q", res.MatchedBy)
	}
	if res.WorkOrder.ReferenceNumber != "4410" {
		t.Fatalf("reference should be protected, got %q", res.WorkOrder.ReferenceNumber)
	}
}

func TestWorkOrderUseCase_GetAndLocate(t *testing.T) {
	uc, _ := newMemoryUseCase(t)
	wo := submit(t, uc, "11999-PM")

	got, err := uc.Get(context.Background(), wo.ID)
	if err != nil || got.ID != wo.ID {
		t.Fatalf("expected %s, got %+v (%v)", wo.ID, got, err)
	}
	if _, err := uc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Get(context.Background(), " "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	got, err = uc.Locate(context.Background(), "", "11999")
	if err != nil || got.ID != wo.ID {
		t.Fatalf("expected fuzzy locate, got %+v (%v)", got, err)
	}
	if _, err := uc.Locate(context.Background(), "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestWorkOrderUseCase_Apply_CreatingActionReplay(t *testing.T) {
	cases := []struct {
		name string
		cmd  Command
	}{
		{"shop_submit", Command{Action: ActionShopSubmit, Actor: "portal", Patch: entities.Patch{ReferenceNumber: "5512", ShopName: "Acme Body"}}},
		{"report_ingest", Command{Action: ActionReportIngest, Patch: entities.Patch{ReferenceNumber: "5512", RequiredCalibrations: "Front camera"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, repo := newMemoryUseCase(t)

			first := uc.Apply(context.Background(), tc.cmd)
			second := uc.Apply(context.Background(), tc.cmd)
			if !first.Success || !first.Created || !second.Success || second.Created {
				t.Fatalf("unexpected results: %+v / %+v", first, second)
			}
			if len(second.Appended) != 0 || len(second.Changed) != 0 {
				t.Fatalf("expected replay to be a no-op, got appended=%v changed=%v", second.Appended, second.Changed)
			}
			stored, _ := repo.ReadFull(context.Background(), first.WorkOrder.ID)
			if stored.Version != first.WorkOrder.Version || stored.FlowHistory != first.WorkOrder.FlowHistory {
				t.Fatalf("replayed %s changed the record: v%d -> v%d %q", tc.name, first.WorkOrder.Version, stored.Version, stored.FlowHistory)
			}
		})
	}
}

func TestWorkOrderUseCase_Apply_ReplayWithAdvancingClock(t *testing.T) {
	now := fixedNow
	tick := WithClock(func() time.Time { now = now.Add(2 * time.Second); return now })

	t.Run("schedule", func(t *testing.T) {
		uc, repo := newMemoryUseCase(t, tick)
		created := submit(t, uc, "4410")

		cmd := Command{Action: ActionShopSchedule, Patch: entities.Patch{ReferenceNumber: "4410", ScheduledDate: "2024-03-20"}}
		first := uc.Apply(context.Background(), cmd)
		second := uc.Apply(context.Background(), cmd)
		if !first.Success || !second.Success {
			t.Fatalf("unexpected failure: %v / %v", first.Err, second.Err)
		}
		if len(second.Appended) != 0 {
			t.Fatalf("expected no new entry, got %v", second.Appended)
		}
		stored, _ := repo.ReadFull(context.Background(), created.ID)
		if stored.Version != first.WorkOrder.Version {
			t.Fatalf("expected version %d, got %d", first.WorkOrder.Version, stored.Version)
		}
		if strings.Count(stored.FlowHistory, "SCHEDULED") != 1 {
			t.Fatalf("expected a single schedule entry, got %q", stored.FlowHistory)
		}
	})

	t.Run("held status request", func(t *testing.T) {
		uc, repo := newMemoryUseCase(t, tick)
		created := submit(t, uc, "4410")
		uc.Apply(context.Background(), Command{Action: ActionTechArrival, Patch: entities.Patch{ReferenceNumber: "4410"}})

		cmd := Command{Action: ActionTechStatus, Patch: entities.Patch{ReferenceNumber: "4410", Status: entities.StatusScheduled}}
		first := uc.Apply(context.Background(), cmd)
		if len(first.Appended) != 1 {
			t.Fatalf("expected the held request to be recorded once, got %v", first.Appended)
		}
		second := uc.Apply(context.Background(), cmd)
		if len(second.Appended) != 0 {
			t.Fatalf("expected replay to be a no-op, got %v", second.Appended)
		}
		stored, _ := repo.ReadFull(context.Background(), created.ID)
		if strings.Count(stored.FlowHistory, "STATUS requested scheduled") != 1 {
			t.Fatalf("unexpected history %q", stored.FlowHistory)
		}
	})

	t.Run("repeated note text on a later visit", func(t *testing.T) {
		uc, _ := newMemoryUseCase(t, tick)
		submit(t, uc, "4410")

		note := Command{Action: ActionShopNote, Patch: entities.Patch{ReferenceNumber: "4410", Note: "call back"}}
		uc.Apply(context.Background(), note)
		uc.Apply(context.Background(), Command{Action: ActionShopNote, Patch: entities.Patch{ReferenceNumber: "4410", Note: "parts ordered"}})
		res := uc.Apply(context.Background(), note)
		if len(res.Appended) != 1 || res.WorkOrder.ShortNotes != "call back" {
			t.Fatalf("expected the note to be recorded again, got %+v", res)
		}
	})
}

func TestWorkOrderUseCase_Apply_ArrivalOnClosedJob(t *testing.T) {
	uc, _ := newMemoryUseCase(t)
	submit(t, uc, "4410")
	uc.Apply(context.Background(), Command{Action: ActionShopCancel, Patch: entities.Patch{ReferenceNumber: "4410"}})

	res := uc.Apply(context.Background(), Command{Action: ActionTechArrival, Patch: entities.Patch{ReferenceNumber: "4410"}})
	if !res.Success {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if res.WorkOrder.Status != entities.StatusCancelled {
		t.Fatalf("expected cancelled to hold, got %s", res.WorkOrder.Status)
	}
	if res.WorkOrder.JobStartedAt != nil {
		t.Fatalf("expected no job start on a cancelled job, got %v", res.WorkOrder.JobStartedAt)
	}
	if !strings.Contains(res.WorkOrder.FlowHistory, "ARRIVED technician Dispatch arrived") {
		t.Fatalf("expected the arrival to be logged, got %q", res.WorkOrder.FlowHistory)
	}
}
