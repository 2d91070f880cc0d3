package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"adas_workorders/internal/domain/audit"
	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/domain/identifier"
	"adas_workorders/internal/domain/lifecycle"
	"adas_workorders/internal/domain/merge"
	"adas_workorders/internal/domain/scrub"
	"adas_workorders/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultGuardTTL         = 30 * time.Second
	defaultMaxWriteAttempts = 3
)

// IWorkOrderUseCase exposes the reconciliation engine.
//
// Apply is the single entry point for every inbound update:
//   - locate the record (VIN, then reference tiers)
//   - create it (creation actions only) or read -> merge -> write it whole
//   - append the flow-history entry in the same write
type IWorkOrderUseCase interface {
	Apply(ctx context.Context, cmd Command) Result
	Get(ctx context.Context, id string) (entities.WorkOrder, error)
	Locate(ctx context.Context, vin, reference string) (entities.WorkOrder, error)
}

type WorkOrderUseCase struct {
	repo     interfaces.IWorkOrderRepository
	assigner *AssignmentResolver
	fetcher  interfaces.IDocumentFetcher
	guard    interfaces.IRequestGuard
	metrics  interfaces.IWorkflowMetrics
	logger   *zap.Logger

	now         func() time.Time
	newID       func() string
	guardTTL    time.Duration
	maxAttempts int
}

var _ IWorkOrderUseCase = (*WorkOrderUseCase)(nil)

// Option customises a WorkOrderUseCase.
type Option func(*WorkOrderUseCase)

func WithClock(now func() time.Time) Option { return func(u *WorkOrderUseCase) { u.now = now } }

func WithIDGenerator(newID func() string) Option {
	return func(u *WorkOrderUseCase) { u.newID = newID }
}

func WithGuardTTL(ttl time.Duration) Option {
	return func(u *WorkOrderUseCase) {
		if ttl > 0 {
			u.guardTTL = ttl
		}
	}
}

func WithMetrics(m interfaces.IWorkflowMetrics) Option {
	return func(u *WorkOrderUseCase) {
		if m != nil {
			u.metrics = m
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(u *WorkOrderUseCase) {
		if l != nil {
			u.logger = l
		}
	}
}

// NewWorkOrderUseCase wires the engine. fetcher and guard may be nil: report
// ingestion then skips document enrichment and admin actions run unguarded.
func NewWorkOrderUseCase(
	repo interfaces.IWorkOrderRepository,
	assigner *AssignmentResolver,
	fetcher interfaces.IDocumentFetcher,
	guard interfaces.IRequestGuard,
	opts ...Option,
) *WorkOrderUseCase {
	u := &WorkOrderUseCase{
		repo:        repo,
		assigner:    assigner,
		fetcher:     fetcher,
		guard:       guard,
		metrics:     interfaces.NopMetrics{},
		logger:      zap.NewNop(),
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
		guardTTL:    defaultGuardTTL,
		maxAttempts: defaultMaxWriteAttempts,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *WorkOrderUseCase) Apply(ctx context.Context, cmd Command) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error("[workorder][usecase] apply panicked", zap.String("action", string(cmd.Action)), zap.Any("panic", r))
			res = failure(cmd.Action, fmt.Errorf("internal error: %v", r))
		}
		outcome := "success"
		if !res.Success {
			outcome = outcomeLabel(res.Err)
		}
		u.metrics.ActionApplied(string(cmd.Action), outcome)
	}()

	spec, ok := actionSpecs[cmd.Action]
	if !ok {
		u.logger.Warn("[workorder][usecase] unknown action", zap.String("action", string(cmd.Action)))
		return failure(cmd.Action, fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action))
	}
	if u.repo == nil {
		return failure(cmd.Action, errors.New("work order repository not configured"))
	}
	if len(cmd.Dropped) > 0 {
		u.logger.Info("[workorder][usecase] dropped unrecognised fields",
			zap.String("action", string(cmd.Action)), zap.Strings("fields", cmd.Dropped))
	}

	p := cmd.Patch
	if p.At.IsZero() {
		p.At = u.now()
	}
	p.At = p.At.UTC()

	if err := prepare(cmd.Action, &p); err != nil {
		u.logger.Info("[workorder][usecase] invalid command", zap.String("action", string(cmd.Action)), zap.Error(err))
		return failure(cmd.Action, err)
	}

	var warnings []string
	if cmd.Action == ActionReportIngest {
		warnings = u.enrichCalibrations(ctx, &p)
	}

	ref := referenceOf(p)
	if ref == "" && strings.TrimSpace(p.VIN) == "" {
		return failure(cmd.Action, fmt.Errorf("%w: no usable reference number", ErrValidation))
	}

	u.logger.Info("[workorder][usecase] apply start",
		zap.String("action", string(cmd.Action)), zap.String("reference", ref), zap.String("vin", p.VIN))

	existing, tier, err := u.locate(ctx, p.VIN, ref)
	if err != nil {
		u.logger.Error("[workorder][usecase] locate failed", zap.String("action", string(cmd.Action)), zap.Error(err))
		return failure(cmd.Action, fmt.Errorf("locate work order: %w", err))
	}

	if !existing.Exists() {
		if !spec.create {
			u.logger.Info("[workorder][usecase] work order not found",
				zap.String("action", string(cmd.Action)), zap.String("reference", ref), zap.String("vin", p.VIN))
			return failure(cmd.Action, fmt.Errorf("%w: reference=%q vin=%q", ErrNotFound, ref, p.VIN))
		}
		res := u.create(ctx, cmd, p, ref)
		res.Warnings = append(warnings, res.Warnings...)
		return res
	}

	if spec.admin && u.guard != nil {
		key := "workorder:admin:" + existing.ID
		acquired, err := u.guard.Acquire(ctx, key, u.guardTTL)
		if err != nil {
			u.logger.Error("[workorder][usecase] guard acquire failed", zap.String("id", existing.ID), zap.Error(err))
			return failure(cmd.Action, fmt.Errorf("acquire request guard: %w", err))
		}
		if !acquired {
			u.logger.Info("[workorder][usecase] duplicate admin request refused", zap.String("id", existing.ID))
			return failure(cmd.Action, fmt.Errorf("%w: administrative request already running for %s", ErrConflict, existing.ID))
		}
		defer func() {
			if err := u.guard.Release(context.WithoutCancel(ctx), key); err != nil {
				u.logger.Warn("[workorder][usecase] guard release failed", zap.String("id", existing.ID), zap.Error(err))
			}
		}()
	}

	res = u.update(ctx, cmd, spec, p, existing.ID)
	res.MatchedBy = tier.String()
	res.Warnings = append(warnings, res.Warnings...)
	return res
}

func (u *WorkOrderUseCase) create(ctx context.Context, cmd Command, p entities.Patch, ref string) Result {
	if ref == "" {
		return failure(cmd.Action, fmt.Errorf("%w: no usable reference number to create a work order", ErrValidation))
	}
	if u.assigner != nil {
		p.Technician = u.assigner.Resolve(ctx, p.ShopName, p.Technician)
	}
	p.FlowEntries = append([]string{audit.Entry(p.At, audit.EventCreated, createdText(cmd, p, ref))}, p.FlowEntries...)

	out := merge.Create(u.newID(), p)
	out.WorkOrder.Version = 1

	created, err := u.repo.Insert(ctx, out.WorkOrder)
	if err != nil {
		u.logger.Error("[workorder][usecase] insert failed", zap.String("reference", ref), zap.Error(err))
		return failure(cmd.Action, fmt.Errorf("insert work order: %w", err))
	}
	u.metrics.WorkOrderCreated(string(cmd.Action))
	if out.Status.Kind == lifecycle.KindAutoReady && out.Status.Changed() {
		u.metrics.AutoReadyTriggered()
	}
	u.logger.Info("[workorder][usecase] work order created",
		zap.String("id", created.ID), zap.String("reference", created.ReferenceNumber),
		zap.String("status", string(created.Status)), zap.String("technician", created.Technician))

	return Result{
		Success:    true,
		Action:     cmd.Action,
		Created:    true,
		WorkOrder:  created,
		Transition: out.Status,
		Appended:   out.Appended,
		Changed:    out.Changed,
	}
}

func (u *WorkOrderUseCase) update(ctx context.Context, cmd Command, spec actionSpec, p entities.Patch, id string) Result {
	var lastErr error
	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		current, err := u.repo.ReadFull(ctx, id)
		if err != nil {
			return failure(cmd.Action, fmt.Errorf("read work order: %w", err))
		}
		if !current.Exists() {
			return failure(cmd.Action, fmt.Errorf("%w: id=%s", ErrNotFound, id))
		}

		patch := shapeForRecord(cmd, spec, p, current)
		var out merge.Outcome
		if spec.override {
			out = merge.MergeOverride(current, patch)
		} else {
			out = merge.Merge(current, patch)
		}
		u.observeTransition(out)

		if isReplay(cmd, spec, current, patch, out) {
			u.logger.Info("[workorder][usecase] replayed update; nothing to write",
				zap.String("id", id), zap.String("action", string(cmd.Action)))
			return Result{Success: true, Action: cmd.Action, WorkOrder: current, Transition: out.Status}
		}

		out.WorkOrder.Version = current.Version
		written, err := u.repo.WriteFull(ctx, out.WorkOrder)
		if errors.Is(err, interfaces.ErrVersionConflict) {
			lastErr = err
			u.metrics.WriteConflict()
			u.logger.Warn("[workorder][usecase] version conflict; retrying",
				zap.String("id", id), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			u.logger.Error("[workorder][usecase] write failed", zap.String("id", id), zap.Error(err))
			return failure(cmd.Action, fmt.Errorf("write work order: %w", err))
		}

		u.logger.Info("[workorder][usecase] work order updated",
			zap.String("id", id), zap.String("action", string(cmd.Action)),
			zap.String("status_from", string(out.Status.From)), zap.String("status_to", string(out.Status.To)),
			zap.String("transition", string(out.Status.Kind)), zap.Strings("changed", out.Changed))
		return Result{
			Success:    true,
			Action:     cmd.Action,
			WorkOrder:  written,
			Transition: out.Status,
			Appended:   out.Appended,
			Changed:    out.Changed,
		}
	}
	return failure(cmd.Action, fmt.Errorf("%w: gave up after %d attempts: %v", ErrConflict, u.maxAttempts, lastErr))
}

func (u *WorkOrderUseCase) observeTransition(out merge.Outcome) {
	switch out.Status.Kind {
	case lifecycle.KindHeld:
		u.metrics.RegressionBlocked(string(out.Status.From), string(out.Status.Requested))
		u.logger.Info("[workorder][lifecycle] status regression blocked",
			zap.String("current", string(out.Status.From)), zap.String("requested", string(out.Status.Requested)))
	case lifecycle.KindAutoReady:
		if out.Status.Changed() {
			u.metrics.AutoReadyTriggered()
		}
	}
}

// Get returns the record with the given id.
func (u *WorkOrderUseCase) Get(ctx context.Context, id string) (entities.WorkOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.WorkOrder{}, fmt.Errorf("%w: empty id", ErrValidation)
	}
	wo, err := u.repo.ReadFull(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if !wo.Exists() {
		return entities.WorkOrder{}, ErrNotFound
	}
	return wo, nil
}

// Locate resolves a VIN / reference pair with the same tiers Apply uses.
func (u *WorkOrderUseCase) Locate(ctx context.Context, vin, reference string) (entities.WorkOrder, error) {
	if strings.TrimSpace(vin) == "" && strings.TrimSpace(reference) == "" {
		return entities.WorkOrder{}, fmt.Errorf("%w: vin or reference required", ErrValidation)
	}
	wo, _, err := u.locate(ctx, vin, reference)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if !wo.Exists() {
		return entities.WorkOrder{}, ErrNotFound
	}
	return wo, nil
}

func (u *WorkOrderUseCase) locate(ctx context.Context, vin, ref string) (entities.WorkOrder, identifier.Tier, error) {
	if v := identifier.LookupVIN(vin); v != "" {
		wo, err := u.repo.FindByVIN(ctx, v)
		if err != nil {
			return entities.WorkOrder{}, identifier.TierNone, err
		}
		if wo.Exists() {
			return wo, identifier.TierVIN, nil
		}
	}
	if ref = strings.TrimSpace(ref); ref != "" {
		wo, err := u.repo.FindByReference(ctx, ref)
		if err != nil {
			return entities.WorkOrder{}, identifier.TierNone, err
		}
		if wo.Exists() {
			return wo, identifier.MatchReference(wo.ReferenceNumber, identifier.NormalizeReference(ref)), nil
		}
	}
	return entities.WorkOrder{}, identifier.TierNone, nil
}

// enrichCalibrations fills RequiredCalibrations from scrub text or, failing
// that, from the referenced calibration report. Fetch problems are reported
// as warnings; the merge proceeds with what the record already has.
func (u *WorkOrderUseCase) enrichCalibrations(ctx context.Context, p *entities.Patch) []string {
	if strings.TrimSpace(p.RequiredCalibrations) != "" {
		return nil
	}
	text := p.CalibrationText
	if strings.TrimSpace(text) == "" && u.fetcher != nil && strings.TrimSpace(p.Documents.CalibrationReport) != "" {
		doc, err := u.fetcher.Fetch(ctx, p.Documents.CalibrationReport)
		if err != nil {
			u.metrics.DocumentFetchFailed()
			u.logger.Warn("[workorder][usecase] calibration report fetch failed; continuing without it",
				zap.String("url", p.Documents.CalibrationReport), zap.Error(err))
			return []string{fmt.Errorf("%w: %v", ErrUpstreamFetch, err).Error()}
		}
		if isTextual(doc.ContentType) {
			text = string(doc.Body)
		}
	}
	if items := scrub.Parse(text); len(items) > 0 {
		p.RequiredCalibrations = scrub.Format(items)
	}
	return nil
}

func isTextual(contentType string) bool {
	ct := strings.ToLower(contentType)
	return ct == "" || strings.HasPrefix(ct, "text/") || strings.Contains(ct, "json") || strings.Contains(ct, "csv")
}

// prepare validates the action-specific requirements and fills the fields an
// action implies (status, job timestamps).
func prepare(action Action, p *entities.Patch) error {
	switch action {
	case ActionShopSubmit:
		if referenceOf(*p) == "" {
			return fmt.Errorf("%w: shop submission requires a reference number", ErrValidation)
		}
	case ActionShopSchedule:
		if strings.TrimSpace(p.ScheduledDate) == "" {
			return fmt.Errorf("%w: scheduled date required", ErrValidation)
		}
		p.Status = entities.StatusScheduled
	case ActionShopCancel:
		p.Status = entities.StatusCancelled
	case ActionShopNote:
		if strings.TrimSpace(p.Note) == "" {
			return fmt.Errorf("%w: note text required", ErrValidation)
		}
	case ActionTechStatus:
		if p.Status == "" {
			return fmt.Errorf("%w: status required", ErrValidation)
		}
	case ActionTechArrival:
		p.Status = entities.StatusInProgress
		if p.JobStartedAt == nil {
			t := p.At
			p.JobStartedAt = &t
		}
	case ActionTechComplete:
		p.Status = entities.StatusCompleted
		if p.JobEndedAt == nil {
			t := p.At
			p.JobEndedAt = &t
		}
	case ActionTechDTC:
		if !p.HasDTCUpdate() {
			return fmt.Errorf("%w: dtc codes required", ErrValidation)
		}
	case ActionReportIngest:
		if strings.TrimSpace(p.Documents.CalibrationReport) == "" &&
			strings.TrimSpace(p.RequiredCalibrations) == "" &&
			strings.TrimSpace(p.CalibrationText) == "" {
			return fmt.Errorf("%w: calibration report or calibration list required", ErrValidation)
		}
	case ActionAdminStatus:
		if !lifecycle.Known(p.Status) {
			return fmt.Errorf("%w: target status required", ErrValidation)
		}
	case ActionAdminReassign:
		if strings.TrimSpace(p.Technician) == "" {
			return fmt.Errorf("%w: technician required", ErrValidation)
		}
	}
	return nil
}

// shapeForRecord finishes the patch once the current record is known: the
// schedule/reschedule distinction and the action's flow-history entry.
func shapeForRecord(cmd Command, spec actionSpec, p entities.Patch, current entities.WorkOrder) entities.Patch {
	event := spec.event
	var text string
	switch cmd.Action {
	case ActionShopSchedule:
		prev := strings.TrimSpace(current.ScheduledDate)
		if prev != "" && prev != strings.TrimSpace(p.ScheduledDate) {
			p.Status = entities.StatusRescheduled
			event = audit.EventRescheduled
			text = "from " + prev + " to " + strings.TrimSpace(p.ScheduledDate+" "+p.ScheduledTime)
		} else {
			text = strings.TrimSpace(p.ScheduledDate + " " + p.ScheduledTime)
		}
	case ActionShopCancel:
		text = "cancelled by shop"
		if p.Note != "" {
			text += ": " + p.Note
		}
	case ActionShopNote:
		text = p.Note
	case ActionTechStatus:
		text = "requested " + string(p.Status)
	case ActionTechArrival:
		text = "technician arrived"
		if t := firstNonEmpty(p.Technician, current.Technician); t != "" {
			text = "technician " + t + " arrived"
		}
	case ActionTechComplete:
		text = "job completed"
		if p.CompletedCalibrations != "" {
			text += ": " + p.CompletedCalibrations
		}
	case ActionTechDTC:
		phase := entities.ParseScanPhase(string(p.DTCPhase))
		text = string(phase) + " codes: " + strings.Join(merge.ValidDTCs(p.DTCCodes), ", ")
	case ActionReportIngest:
		text = "calibration report " + firstNonEmpty(p.Documents.CalibrationReport, "(inline)")
		if p.RequiredCalibrations != "" {
			text += "; required: " + p.RequiredCalibrations
		}
	case ActionAdminStatus:
		text = "manual override " + string(current.Status) + " -> " + string(p.Status)
	case ActionAdminReassign:
		text = "technician " + firstNonEmpty(current.Technician, "(none)") + " -> " + strings.TrimSpace(p.Technician)
	default:
		text = "fields updated via " + string(cmd.Action)
	}
	if cmd.Actor != "" {
		text += " by=" + cmd.Actor
	}
	p.FlowEntries = append([]string{audit.Entry(p.At, event, text)}, p.FlowEntries...)
	return p
}

// isReplay reports whether a merge only restates what the record already
// holds: no field changed and the only new line is the action's own entry,
// either already recorded under another timestamp or coming from a data
// action whose first delivery created the record.
func isReplay(cmd Command, spec actionSpec, current entities.WorkOrder, patch entities.Patch, out merge.Outcome) bool {
	if len(out.Changed) > 0 {
		return false
	}
	if len(out.Appended) == 0 {
		return true
	}
	if len(out.Appended) > 1 || len(patch.FlowEntries) == 0 || out.Appended[0] != patch.FlowEntries[0] {
		return false
	}
	if spec.create || cmd.Action == ActionShopUpdate {
		return true
	}
	return audit.Recorded(current.FlowHistory, out.Appended[0])
}

func createdText(cmd Command, p entities.Patch, ref string) string {
	text := "created via " + string(cmd.Action) + " ref=" + ref
	if p.ShopName != "" {
		text += " shop=" + p.ShopName
	}
	if p.Technician != "" {
		text += " tech=" + p.Technician
	}
	if cmd.Actor != "" {
		text += " by=" + cmd.Actor
	}
	return text
}

func referenceOf(p entities.Patch) string {
	return firstNonEmpty(p.ReferenceNumber, p.AuthoritativeReference)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnknownAction):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
