package dialog

import (
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/expat-financier/internal/dto"
	"github.com/GregMSThompson/expat-financier/internal/errs"
	"github.com/GregMSThompson/expat-financier/internal/models"
)

// triggerText is the table key for any free-text answer.
const triggerText = "text"

// step validates the event and applies it to the session. It must not
// mutate anything when it returns an error.
type step func(sess *Session, ev Event, now time.Time) error

type transition struct {
	step     step
	next     State
	persist  bool
	complete bool
	ack      string
}

type transitionKey struct {
	state   State
	trigger string
}

type table map[transitionKey]transition

type tableBuilder struct {
	t        table
	prompted map[State]bool
}

// on registers a navigation transition that changes no profile data.
func (b *tableBuilder) on(from State, trigger string, next State, s step) {
	b.set(from, trigger, transition{step: s, next: next})
}

func (b *tableBuilder) set(from State, trigger string, tr transition) {
	key := transitionKey{state: from, trigger: trigger}
	if _, dup := b.t[key]; dup {
		panic(fmt.Sprintf("dialog: duplicate transition %s/%s", from, trigger))
	}
	b.t[key] = tr
}

// build rejects tables that reference a state nothing can render.
func (b *tableBuilder) build() table {
	for key, tr := range b.t {
		for _, s := range []State{key.state, tr.next} {
			if !b.prompted[s] {
				panic(fmt.Sprintf("dialog: transition %s/%s references state %s without a prompt", key.state, key.trigger, s))
			}
		}
	}
	return b.t
}

func (t table) lookup(s State, trigger string) (transition, bool) {
	tr, ok := t[transitionKey{state: s, trigger: trigger}]
	return tr, ok
}

func newTable(prompted map[State]bool) table {
	b := &tableBuilder{t: make(table), prompted: prompted}

	// onboarding
	answer := func(from, next State, s step) {
		b.set(from, triggerText, transition{step: s, next: next, persist: true})
	}
	answer(StateAwaitName, StateAwaitJob, textSetter("Please tell me your name.", func(p *models.Profile, v string) { p.Name = v }))
	answer(StateAwaitJob, StateAwaitIncome, textSetter("Please tell me your job position.", func(p *models.Profile, v string) { p.JobPosition = v }))
	answer(StateAwaitIncome, StateAwaitExpense, amountSetter(func(p *models.Profile, v float64) { p.Income = v }))
	answer(StateAwaitExpense, StateAwaitSavings, amountSetter(func(p *models.Profile, v float64) { p.TotalExpense = v }))
	answer(StateAwaitSavings, StateAwaitEmergency, amountSetter(func(p *models.Profile, v float64) { p.SavingsGoal = v }))
	b.set(StateAwaitEmergency, triggerText, transition{
		step: amountSetter(func(p *models.Profile, v float64) {
			p.EmergencyFund = v
			p.OnboardingCompleted = true
		}),
		next:     StateDashboard,
		persist:  true,
		complete: true,
		ack:      "🎉 Your profile is ready!",
	})

	// navigation
	b.on(StateDashboard, dto.ActionMenu, StateMenu, nil)
	b.on(StateDashboard, dto.ActionDashboard, StateDashboard, nil)
	b.on(StateMenu, dto.ActionDashboard, StateDashboard, nil)
	b.on(StateMenu, dto.ActionUpdateIncome, StateAwaitIncomeUpdate, nil)
	b.on(StateMenu, dto.ActionUpdateExpenses, StateAwaitExpenseCategory, nil)
	b.on(StateMenu, dto.ActionLogWeekly, StateAwaitWeeklyLog, nil)
	b.on(StateMenu, dto.ActionUpdateSavings, StateAwaitSavingsUpdate, nil)
	b.on(StateMenu, dto.ActionUpdateEmergency, StateAwaitEmergencyUpdate, nil)
	for _, c := range models.ExpenseCategories {
		b.on(StateAwaitExpenseCategory, dto.ActionExpensePrefix+string(c), StateAwaitExpenseUpdate, selectCategory(c))
	}

	// updates
	update := func(from State, s step, ack string) {
		b.set(from, triggerText, transition{step: s, next: StateDashboard, persist: true, ack: ack})
	}
	update(StateAwaitIncomeUpdate, amountSetter(func(p *models.Profile, v float64) { p.Income = v }), "✅ Income updated.")
	update(StateAwaitExpenseUpdate, setPendingCategory, "✅ Expense updated.")
	update(StateAwaitWeeklyLog, logSpending, "✅ Spending logged.")
	update(StateAwaitSavingsUpdate, amountSetter(func(p *models.Profile, v float64) { p.SavingsGoal = v }), "✅ Savings goal updated.")
	update(StateAwaitEmergencyUpdate, amountSetter(func(p *models.Profile, v float64) { p.EmergencyFund = v }), "✅ Emergency fund updated.")

	return b.build()
}

func textSetter(message string, set func(p *models.Profile, v string)) step {
	return func(sess *Session, ev Event, _ time.Time) error {
		v, err := parseText(ev.Text, message)
		if err != nil {
			return err
		}
		set(sess.Profile, v)
		return nil
	}
}

func amountSetter(set func(p *models.Profile, v float64)) step {
	return func(sess *Session, ev Event, _ time.Time) error {
		v, err := ParseAmount(ev.Text)
		if err != nil {
			return err
		}
		set(sess.Profile, v)
		return nil
	}
}

func selectCategory(c models.ExpenseCategory) step {
	return func(sess *Session, _ Event, _ time.Time) error {
		sess.PendingCategory = c
		return nil
	}
}

func setPendingCategory(sess *Session, ev Event, _ time.Time) error {
	if !sess.PendingCategory.Valid() {
		return errs.NewUnknownCategoryError(string(sess.PendingCategory))
	}
	v, err := ParseAmount(ev.Text)
	if err != nil {
		return err
	}
	if err := sess.Profile.Expenses.Set(sess.PendingCategory, v); err != nil {
		return err
	}
	sess.PendingCategory = ""
	return nil
}

// logSpending appends rather than sets; it is the one additive update.
func logSpending(sess *Session, ev Event, now time.Time) error {
	v, err := ParseAmount(ev.Text)
	if err != nil {
		return err
	}
	sess.Profile.LogSpending(v, now)
	return nil
}

func triggerFor(ev Event) string {
	if ev.Kind == EventAction {
		return strings.TrimSpace(ev.Action)
	}
	return triggerText
}
