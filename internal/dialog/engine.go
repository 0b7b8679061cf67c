package dialog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/GregMSThompson/expat-financier/internal/dashboard"
	"github.com/GregMSThompson/expat-financier/internal/dto"
	"github.com/GregMSThompson/expat-financier/internal/errs"
	"github.com/GregMSThompson/expat-financier/internal/metrics"
	"github.com/GregMSThompson/expat-financier/internal/models"
	"github.com/GregMSThompson/expat-financier/pkg/logger"
)

const (
	notDurableWarning = "⚠️ I couldn't save this permanently. It is kept for now, but may be lost if the bot restarts."
	useButtonsHint    = "Please use the buttons below."

	defaultNotifyTimeout = 10 * time.Second
)

type profileService interface {
	Load(ctx context.Context, uid string) *models.Profile
	Save(ctx context.Context, p *models.Profile) error
}

type snapshotNotifier interface {
	Notify(ctx context.Context, snap models.Snapshot) error
}

// Engine runs the conversation for every user. Events for one user are
// handled one at a time; different users proceed in parallel.
type Engine struct {
	profiles      profileService
	notifier      snapshotNotifier
	renderer      *dashboard.Renderer
	metrics       *metrics.Recorder
	table         table
	sessions      *sessions
	now           func() time.Time
	notifyTimeout time.Duration
	pending       sync.WaitGroup
}

func NewEngine(profiles profileService, notifier snapshotNotifier, renderer *dashboard.Renderer, rec *metrics.Recorder, notifyTimeout time.Duration) *Engine {
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}
	return &Engine{
		profiles:      profiles,
		notifier:      notifier,
		renderer:      renderer,
		metrics:       rec,
		table:         newTable(promptedStates()),
		sessions:      newSessions(),
		now:           time.Now,
		notifyTimeout: notifyTimeout,
	}
}

// Handle processes one event to completion and returns the reply to send.
func (e *Engine) Handle(ctx context.Context, ev Event) dto.Reply {
	sess, created := e.sessions.acquire(ev.UserID)
	defer func() { e.sessions.release(sess, e.now()) }()

	if sess.Profile == nil {
		sess.Profile = e.profiles.Load(ctx, ev.UserID)
	}

	// an unfinished profile only ever sees onboarding prompts
	if created || ev.Kind == EventStart || (!sess.Profile.OnboardingCompleted && !sess.State.Onboarding()) {
		return e.start(ctx, sess)
	}
	if ev.Kind == EventCancel || (ev.Kind == EventAction && ev.Action == dto.ActionCancel) {
		return e.cancel(ctx, sess)
	}

	tr, ok := e.table.lookup(sess.State, triggerFor(ev))
	if !ok {
		return e.unexpected(ctx, sess, ev)
	}

	now := e.now()
	if tr.step != nil {
		if err := tr.step(sess, ev, now); err != nil {
			return e.reject(ctx, sess, err)
		}
	}

	from := sess.State
	sess.State = tr.next
	e.metrics.Transition(from.String(), tr.next.String())

	var notes []string
	if tr.ack != "" {
		notes = append(notes, tr.ack)
	}
	if tr.persist {
		if err := e.profiles.Save(ctx, sess.Profile); err != nil {
			e.metrics.SaveFailure()
			notes = append(notes, notDurableWarning)
		}
	}
	if tr.complete {
		logger.FromContext(ctx).Info("onboarding completed")
		e.notifyAsync(ctx, sess.Profile.Snapshot())
	}

	return withNotes(e.enter(sess, now), notes...)
}

// State reports where uid's conversation is, if it has started.
func (e *Engine) State(uid string) (State, bool) {
	return e.sessions.state(uid)
}

// EvictIdle forgets conversations untouched for longer than maxIdle.
// Profiles are unaffected; the user resumes from the stored record.
func (e *Engine) EvictIdle(maxIdle time.Duration) int {
	n := e.sessions.evictIdle(e.now().Add(-maxIdle))
	e.metrics.SessionsEvicted(n)
	return n
}

// RunJanitor calls EvictIdle every interval until ctx is done.
func (e *Engine) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := e.EvictIdle(maxIdle); n > 0 {
				logger.FromContext(ctx).Debug("idle sessions evicted", "count", n)
			}
		}
	}
}

// Wait blocks until in-flight notifications have finished.
func (e *Engine) Wait() {
	e.pending.Wait()
}

func (e *Engine) start(ctx context.Context, sess *Session) dto.Reply {
	sess.PendingCategory = ""
	if sess.Profile.OnboardingCompleted {
		sess.State = StateDashboard
	} else {
		sess.State = StateAwaitName
		logger.FromContext(ctx).Info("onboarding started")
	}
	return e.enter(sess, e.now())
}

func (e *Engine) cancel(ctx context.Context, sess *Session) dto.Reply {
	e.metrics.Transition(sess.State.String(), StateDashboard.String())
	logger.FromContext(ctx).Debug("dialog cancelled", "state", sess.State.String())
	sess.State = StateDashboard
	sess.PendingCategory = ""
	return withNotes(e.enter(sess, e.now()), "Cancelled, nothing was changed.")
}

// reject keeps the session where it is and asks again.
func (e *Engine) reject(ctx context.Context, sess *Session, err error) dto.Reply {
	reason := "invalid_input"
	message := err.Error()
	switch err.(type) {
	case *errs.ValidationError:
	case *errs.UnknownCategoryError:
		reason = "unknown_category"
		message = "❌ That isn't one of the expense categories."
	default:
		logger.FromContext(ctx).Error("dialog step failed", "state", sess.State.String(), "error", err)
		message = "❌ Something went wrong, please try again."
	}
	e.metrics.Rejection(sess.State.String(), reason)
	logger.FromContext(ctx).Debug("input rejected", "state", sess.State.String(), "reason", reason)
	return withNotes(e.enter(sess, e.now()), message)
}

func (e *Engine) unexpected(ctx context.Context, sess *Session, ev Event) dto.Reply {
	if sess.State == StateAwaitExpenseCategory && strings.HasPrefix(ev.Action, dto.ActionExpensePrefix) {
		return e.reject(ctx, sess, errs.NewUnknownCategoryError(strings.TrimPrefix(ev.Action, dto.ActionExpensePrefix)))
	}

	e.metrics.Rejection(sess.State.String(), "unexpected_event")
	logger.FromContext(ctx).Debug("no transition for event", "state", sess.State.String(), "kind", ev.Kind, "action", ev.Action)
	reply := e.enter(sess, e.now())
	if ev.Kind == EventText && len(reply.Actions) > 0 {
		return withNotes(reply, useButtonsHint)
	}
	return reply
}

func (e *Engine) enter(sess *Session, now time.Time) dto.Reply {
	return prompts[sess.State](e.renderer, sess, now)
}

func (e *Engine) notifyAsync(ctx context.Context, snap models.Snapshot) {
	log := logger.FromContext(ctx)
	ctx = context.WithoutCancel(ctx)

	e.pending.Add(1)
	go func() {
		defer e.pending.Done()

		ctx, cancel := context.WithTimeout(ctx, e.notifyTimeout)
		defer cancel()

		if err := e.notifier.Notify(ctx, snap); err != nil {
			e.metrics.Notification(false)
			log.Warn("profile export failed", "error", err)
			return
		}
		e.metrics.Notification(true)
	}()
}

func withNotes(r dto.Reply, notes ...string) dto.Reply {
	if len(notes) == 0 {
		return r
	}
	r.Text = strings.Join(notes, "\n") + "\n\n" + r.Text
	return r
}
