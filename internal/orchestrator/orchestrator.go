// Package orchestrator owns the draw lifecycle for the console: it loads or
// creates the draw for a selected date, enforces the configuration lock,
// drives the schedule/execute decision, retrieves winners after execution
// and exposes a read-only view model to callers.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/bridgetunes/draw-console-backend/internal/models"
	"github.com/bridgetunes/draw-console-backend/internal/tiers"
	"github.com/bridgetunes/draw-console-backend/pkg/drawengine"
	"github.com/bridgetunes/draw-console-backend/pkg/remote"
)

// cutoffHour is the hour of day the engine closes entries for a draw
const cutoffHour = 18

// DrawEngine is the slice of the draw-execution service the orchestrator
// needs
type DrawEngine interface {
	FindByDate(ctx context.Context, date time.Time) (*models.Draw, error)
	Schedule(ctx context.Context, date time.Time, drawType models.DrawType, digits models.DigitSelection) (*models.Draw, error)
	Execute(ctx context.Context, id string) (*drawengine.ExecuteAck, error)
}

// WinnerLedger is the slice of the winner-ledger service the orchestrator
// needs
type WinnerLedger interface {
	FindByDraw(ctx context.Context, drawID string) ([]models.Winner, error)
	UpdateStatus(ctx context.Context, winnerID string, status models.ClaimStatus) (*models.Winner, error)
}

// DefaultsResolver supplies the default digits for a date, with a degraded
// signal when the source is unavailable
type DefaultsResolver interface {
	DefaultDigitsFor(ctx context.Context, date time.Time) (digits []int, degraded bool)
}

// AuditLog records lifecycle transitions. Recording failures are logged and
// swallowed; the audit trail never blocks an operation.
type AuditLog interface {
	Create(ctx context.Context, event *models.AuditEvent) error
}

// Orchestrator drives a single console session's draw lifecycle. All state
// lives behind its mutex; remote calls happen outside the lock and their
// results are committed only if the selection they targeted is still
// current (the generation check), so a late winner fetch for an abandoned
// date can never overwrite the current view.
type Orchestrator struct {
	engine      DrawEngine
	ledger      WinnerLedger
	resolver    DefaultsResolver
	audit       AuditLog
	settleDelay time.Duration
	now         func() time.Time

	mu            sync.Mutex
	gen           uint64
	selectedDate  time.Time
	draw          *models.Draw
	digits        models.DigitSelection
	defaultDigits []int
	degraded      bool
	status        models.DrawStatus
	winners       []models.Winner
	lastError     string
	subs          []chan struct{}
}

// New creates an Orchestrator. settleDelay is the bounded wait between
// triggering execution and the single winner fetch; tests inject zero.
func New(engine DrawEngine, ledger WinnerLedger, resolver DefaultsResolver, audit AuditLog, settleDelay time.Duration) *Orchestrator {
	return &Orchestrator{
		engine:      engine,
		ledger:      ledger,
		resolver:    resolver,
		audit:       audit,
		settleDelay: settleDelay,
		now:         time.Now,
		digits:      models.DefaultDigits(),
		status:      models.DrawStatusUnscheduled,
	}
}

// Subscribe returns a channel that receives a signal after every snapshot
// change. The channel is buffered; slow subscribers coalesce signals rather
// than block commands.
func (o *Orchestrator) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	o.mu.Lock()
	o.subs = append(o.subs, ch)
	o.mu.Unlock()
	return ch
}

func (o *Orchestrator) notify() {
	for _, ch := range o.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// SelectDate re-derives the orchestrator state for a calendar date. A
// missing draw becomes Unscheduled with the weekday defaults pre-populated;
// a completed draw has its winners fetched eagerly; anything else loads
// configuration only. Re-entering the current date reloads it.
func (o *Orchestrator) SelectDate(ctx context.Context, date time.Time) error {
	date = truncateToDay(date)

	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.selectedDate = date
	o.draw = nil
	o.winners = nil
	o.digits = models.DefaultDigits()
	o.status = models.DrawStatusUnscheduled
	o.lastError = ""
	o.mu.Unlock()

	defaults, degraded := o.resolver.DefaultDigitsFor(ctx, date)

	draw, err := o.engine.FindByDate(ctx, date)
	if err != nil && !remote.IsNotFound(err) {
		o.commit(gen, func() {
			o.defaultDigits = defaults
			o.degraded = degraded
			o.lastError = err.Error()
		})
		return err
	}

	var winners []models.Winner
	if draw != nil && draw.Status == models.DrawStatusCompleted {
		winners, err = o.ledger.FindByDraw(ctx, draw.ID)
		if err != nil {
			slog.Error("Failed to fetch winners for completed draw", "drawId", draw.ID, "error", err)
			o.commit(gen, func() {
				o.defaultDigits = defaults
				o.degraded = degraded
				o.adoptDraw(draw)
				o.lastError = err.Error()
			})
			return err
		}
	}

	o.commit(gen, func() {
		o.defaultDigits = defaults
		o.degraded = degraded
		if draw != nil {
			o.adoptDraw(draw)
			o.winners = winners
		}
	})
	return nil
}

// adoptDraw loads a persisted draw's configuration and status. Caller holds
// the lock.
func (o *Orchestrator) adoptDraw(draw *models.Draw) {
	o.draw = draw
	o.status = draw.Status
	if draw.UseDefaultDigits {
		o.digits = models.DefaultDigits()
	} else {
		o.digits = models.ExplicitDigits(draw.EligibleDigits)
	}
}

// commit runs mutate under the lock only if the selection generation still
// matches, then notifies subscribers. Stale results are discarded.
func (o *Orchestrator) commit(gen uint64, mutate func()) bool {
	o.mu.Lock()
	if o.gen != gen {
		o.mu.Unlock()
		return false
	}
	mutate()
	o.mu.Unlock()
	o.notify()
	return true
}

// Schedule persists a draw for the selected date with the current digit
// configuration. A Conflict from the engine means someone else created the
// draw first; it is absorbed by re-fetching, never surfaced as an error.
func (o *Orchestrator) Schedule(ctx context.Context, actor string) error {
	o.mu.Lock()
	gen := o.gen
	date := o.selectedDate
	digits := o.digits
	existing := o.draw
	o.lastError = ""
	o.mu.Unlock()
	o.notify()

	if existing != nil {
		return nil
	}

	draw, err := o.createDraw(ctx, date, digits)
	if err != nil {
		o.commit(gen, func() { o.lastError = err.Error() })
		return err
	}

	o.recordAudit(ctx, &models.AuditEvent{
		DrawID:     draw.ID,
		DrawDate:   date.Format("2006-01-02"),
		Action:     models.AuditActionScheduled,
		FromStatus: models.DrawStatusUnscheduled,
		ToStatus:   draw.Status,
		Actor:      actor,
	})

	o.commit(gen, func() { o.adoptDraw(draw) })
	return nil
}

// createDraw creates the draw for date, treating a Conflict as discovery of
// an existing draw. The findByDate-then-create sequence is not atomic; the
// engine is the arbiter of one-draw-per-date.
func (o *Orchestrator) createDraw(ctx context.Context, date time.Time, digits models.DigitSelection) (*models.Draw, error) {
	draw, err := o.engine.Schedule(ctx, date, models.DrawTypeForDate(date), digits)
	if err == nil {
		return draw, nil
	}
	if !remote.IsConflict(err) {
		return nil, err
	}
	slog.Warn("Schedule conflict, adopting existing draw", "date", date.Format("2006-01-02"))
	return o.engine.FindByDate(ctx, date)
}

// ExecuteNow triggers execution of the selected date's draw. An Unscheduled
// date is scheduled implicitly first, so a persisted draw always exists
// before the engine is told to run. After the trigger the orchestrator
// waits the settling delay, then makes a single winner fetch; there is no
// automatic re-poll. A failure anywhere leaves the persisted draw
// untouched (still Scheduled) and only surfaces the error.
func (o *Orchestrator) ExecuteNow(ctx context.Context, actor string) error {
	o.mu.Lock()
	gen := o.gen
	date := o.selectedDate
	digits := o.digits
	draw := o.draw
	o.lastError = ""
	o.mu.Unlock()
	o.notify()

	dateStr := date.Format("2006-01-02")

	if draw == nil {
		created, err := o.createDraw(ctx, date, digits)
		if err != nil {
			o.commit(gen, func() { o.lastError = err.Error() })
			return err
		}
		draw = created
		o.recordAudit(ctx, &models.AuditEvent{
			DrawID:     draw.ID,
			DrawDate:   dateStr,
			Action:     models.AuditActionScheduled,
			FromStatus: models.DrawStatusUnscheduled,
			ToStatus:   draw.Status,
			Actor:      actor,
			Detail:     "implicit schedule before execute",
		})
		o.commit(gen, func() { o.adoptDraw(draw) })
	}

	prevStatus := draw.Status
	o.commit(gen, func() { o.status = models.DrawStatusExecuting })
	o.recordAudit(ctx, &models.AuditEvent{
		DrawID:     draw.ID,
		DrawDate:   dateStr,
		Action:     models.AuditActionExecuteStarted,
		FromStatus: prevStatus,
		ToStatus:   models.DrawStatusExecuting,
		Actor:      actor,
	})

	fail := func(err error) error {
		o.recordAudit(ctx, &models.AuditEvent{
			DrawID:   draw.ID,
			DrawDate: dateStr,
			Action:   models.AuditActionExecuteFailed,
			Actor:    actor,
			Detail:   err.Error(),
		})
		o.commit(gen, func() {
			o.status = prevStatus
			o.lastError = err.Error()
		})
		return err
	}

	ack, err := o.engine.Execute(ctx, draw.ID)
	if err != nil {
		return fail(err)
	}
	slog.Info("Draw execution triggered", "drawId", draw.ID, "date", dateStr, "message", ack.Message)

	if err := o.settle(ctx); err != nil {
		return fail(err)
	}

	winners, err := o.ledger.FindByDraw(ctx, draw.ID)
	if err != nil {
		return fail(err)
	}

	o.recordAudit(ctx, &models.AuditEvent{
		DrawID:     draw.ID,
		DrawDate:   dateStr,
		Action:     models.AuditActionCompleted,
		FromStatus: models.DrawStatusExecuting,
		ToStatus:   models.DrawStatusCompleted,
		Actor:      actor,
		Detail:     fmt.Sprintf("%d winners retrieved", len(winners)),
	})

	committed := o.commit(gen, func() {
		o.status = models.DrawStatusCompleted
		o.winners = winners
		if o.draw != nil {
			o.draw.Status = models.DrawStatusCompleted
			o.draw.NumWinners = len(winners)
		}
	})
	if !committed {
		slog.Info("Discarding stale execution result", "drawId", draw.ID, "date", dateStr)
	}
	return nil
}

// settle waits the configured settling delay, giving the engine time to
// finish selection before the winner fetch. Cancellation of ctx aborts the
// wait.
func (o *Orchestrator) settle(ctx context.Context) error {
	if o.settleDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(o.settleDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RefreshWinners re-attempts the winner fetch for the selected draw, for
// use after a settle-and-fetch failure. It is the caller's manual retry;
// the orchestrator never retries on its own.
func (o *Orchestrator) RefreshWinners(ctx context.Context) error {
	o.mu.Lock()
	gen := o.gen
	draw := o.draw
	o.lastError = ""
	o.mu.Unlock()
	o.notify()

	if draw == nil {
		return nil
	}

	winners, err := o.ledger.FindByDraw(ctx, draw.ID)
	if err != nil {
		o.commit(gen, func() { o.lastError = err.Error() })
		return err
	}

	o.commit(gen, func() {
		o.winners = winners
		o.status = models.DrawStatusCompleted
		if o.draw != nil {
			o.draw.Status = models.DrawStatusCompleted
		}
	})
	return nil
}

// configLocked reports whether digit configuration is frozen. Caller holds
// the lock. Configuration is mutable only while no draw exists or the draw
// is still Scheduled.
func (o *Orchestrator) configLocked() bool {
	if o.status == models.DrawStatusExecuting || o.status == models.DrawStatusCompleted {
		return true
	}
	return o.draw != nil && o.draw.Status != models.DrawStatusScheduled
}

// mutateDigits applies fn to the current digit selection unless the
// configuration is locked, in which case the call is a silent no-op. The
// console disables the controls too; this is the backstop.
func (o *Orchestrator) mutateDigits(fn func(current []int) models.DigitSelection) {
	o.mu.Lock()
	if o.configLocked() {
		o.mu.Unlock()
		return
	}
	o.digits = fn(o.effectiveDigits())
	o.mu.Unlock()
	o.notify()
}

// ToggleDigit adds or removes one digit from the eligible set. Toggling
// while on defaults switches the selection to an explicit set seeded from
// the current defaults.
func (o *Orchestrator) ToggleDigit(digit int) {
	if digit < 0 || digit > 9 {
		return
	}
	o.mutateDigits(func(current []int) models.DigitSelection {
		var present bool
		next := make([]int, 0, len(current)+1)
		for _, d := range current {
			if d == digit {
				present = true
				continue
			}
			next = append(next, d)
		}
		if !present {
			next = append(next, digit)
		}
		return models.ExplicitDigits(next)
	})
}

// SelectAllDigits makes every last-digit eligible
func (o *Orchestrator) SelectAllDigits() {
	o.mutateDigits(func([]int) models.DigitSelection {
		return models.ExplicitDigits([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	})
}

// ClearDigits empties the eligible set (no one eligible)
func (o *Orchestrator) ClearDigits() {
	o.mutateDigits(func([]int) models.DigitSelection {
		return models.ExplicitDigits(nil)
	})
}

// SetUseDefaults switches between tracking the weekday defaults and an
// explicit set seeded from them
func (o *Orchestrator) SetUseDefaults(use bool) {
	o.mutateDigits(func(current []int) models.DigitSelection {
		if use {
			return models.DefaultDigits()
		}
		return models.ExplicitDigits(current)
	})
}

// UpdateWinnerStatus changes a winner's claim status through the ledger and
// reflects the result in the view model. This is the only winner field the
// console may change.
func (o *Orchestrator) UpdateWinnerStatus(ctx context.Context, actor, winnerID string, status models.ClaimStatus) (*models.Winner, error) {
	o.mu.Lock()
	gen := o.gen
	o.lastError = ""
	o.mu.Unlock()
	o.notify()

	updated, err := o.ledger.UpdateStatus(ctx, winnerID, status)
	if err != nil {
		o.commit(gen, func() { o.lastError = err.Error() })
		return nil, err
	}

	o.recordAudit(ctx, &models.AuditEvent{
		DrawID:   updated.DrawID,
		DrawDate: updated.WinDate.Format("2006-01-02"),
		Action:   models.AuditActionWinnerStatusSet,
		Actor:    actor,
		Detail:   fmt.Sprintf("winner %s -> %s", winnerID, status),
	})

	o.commit(gen, func() {
		for i := range o.winners {
			if o.winners[i].ID == updated.ID {
				o.winners[i] = *updated
				break
			}
		}
	})
	return updated, nil
}

// effectiveDigits returns the digit set currently in force. Caller holds
// the lock.
func (o *Orchestrator) effectiveDigits() []int {
	if o.digits.IsDefault() {
		return append([]int(nil), o.defaultDigits...)
	}
	return o.digits.Digits()
}

// Snapshot returns the current view model
func (o *Orchestrator) Snapshot() models.DrawViewModel {
	o.mu.Lock()
	defer o.mu.Unlock()

	vm := models.DrawViewModel{
		SelectedDate:      o.selectedDate.Format("2006-01-02"),
		DayOfWeek:         o.selectedDate.Weekday().String(),
		DrawType:          models.DrawTypeForDate(o.selectedDate),
		EligibleDigits:    o.effectiveDigits(),
		UsesDefaultDigits: o.digits.IsDefault(),
		ConfigLocked:      o.configLocked(),
		DrawStatus:        o.status,
		DegradedDefaults:  o.degraded,
		CountdownSeconds:  o.countdownSeconds(),
		WinnerTiers:       tiers.Breakdown(o.winners),
		LastError:         o.lastError,
	}
	if o.draw != nil {
		vm.DrawID = o.draw.ID
		vm.DrawType = o.draw.DrawType
	}
	return vm
}

// countdownSeconds is the time remaining until the next draw cutoff: the
// selected date's 18:00 if still ahead, otherwise the next day's. Caller
// holds the lock.
func (o *Orchestrator) countdownSeconds() int64 {
	if o.selectedDate.IsZero() {
		return 0
	}
	now := o.now()
	cutoff := time.Date(o.selectedDate.Year(), o.selectedDate.Month(), o.selectedDate.Day(), cutoffHour, 0, 0, 0, o.selectedDate.Location())
	for !cutoff.After(now) {
		cutoff = cutoff.AddDate(0, 0, 1)
	}
	return int64(cutoff.Sub(now).Seconds())
}

func (o *Orchestrator) recordAudit(ctx context.Context, event *models.AuditEvent) {
	if o.audit == nil {
		return
	}
	event.CreatedAt = o.now()
	if err := o.audit.Create(ctx, event); err != nil {
		slog.Error("Failed to record audit event", "action", event.Action, "drawDate", event.DrawDate, "error", err)
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
