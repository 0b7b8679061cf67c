package dialog

import (
	"time"

	"github.com/GregMSThompson/expat-financier/internal/dashboard"
	"github.com/GregMSThompson/expat-financier/internal/dto"
)

type promptFunc func(r *dashboard.Renderer, sess *Session, now time.Time) dto.Reply

var cancelRow = [][]dto.Action{{{Label: "✖️ Cancel", Tag: dto.ActionCancel}}}

func text(s string) promptFunc {
	return func(*dashboard.Renderer, *Session, time.Time) dto.Reply {
		return dto.Reply{Text: s}
	}
}

func cancellable(s string) promptFunc {
	return func(*dashboard.Renderer, *Session, time.Time) dto.Reply {
		return dto.Reply{Text: s, Actions: cancelRow}
	}
}

// prompts is what each state shows on entry and on a rejected answer.
var prompts = map[State]promptFunc{
	StateAwaitName: text("👋 Welcome to Expat's Financier!\n\nI'll ask you six quick questions to set up your profile.\n\nWhat's your name?"),
	StateAwaitJob: func(_ *dashboard.Renderer, sess *Session, _ time.Time) dto.Reply {
		return dto.Reply{Text: "Nice to meet you, " + sess.Profile.Name + "! 💼 What's your job position?"}
	},
	StateAwaitIncome:    text("💰 What's your monthly income?"),
	StateAwaitExpense:   text("💸 Roughly how much do you spend in a month, in total?"),
	StateAwaitSavings:   text("🏦 How much would you like to save each month?"),
	StateAwaitEmergency: text("🛟 How much do you have in your emergency fund right now?"),
	StateDashboard: func(r *dashboard.Renderer, sess *Session, now time.Time) dto.Reply {
		return r.Reply(sess.Profile, now)
	},
	StateMenu: func(*dashboard.Renderer, *Session, time.Time) dto.Reply {
		return dashboard.MenuReply()
	},
	StateAwaitIncomeUpdate: cancellable("💰 Enter your new monthly income:"),
	StateAwaitExpenseCategory: func(r *dashboard.Renderer, sess *Session, _ time.Time) dto.Reply {
		return r.CategoryMenuReply(sess.Profile)
	},
	StateAwaitExpenseUpdate: func(r *dashboard.Renderer, sess *Session, _ time.Time) dto.Reply {
		current := r.Money(sess.Profile.Expenses[sess.PendingCategory])
		return dto.Reply{
			Text:    "💸 " + sess.PendingCategory.Label() + " is currently " + current + " a month. Enter the new amount:",
			Actions: cancelRow,
		}
	},
	StateAwaitWeeklyLog:       cancellable("🗓 How much did you spend? It will be added to this week's total."),
	StateAwaitSavingsUpdate:   cancellable("🏦 Enter your new monthly savings goal:"),
	StateAwaitEmergencyUpdate: cancellable("🛟 Enter your current emergency fund balance:"),
}

func promptedStates() map[State]bool {
	out := make(map[State]bool, len(prompts))
	for s := range prompts {
		out[s] = true
	}
	return out
}
