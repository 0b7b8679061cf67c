package dashboard

import (
	"github.com/GregMSThompson/expat-financier/internal/dto"
	"github.com/GregMSThompson/expat-financier/internal/models"
)

func MenuReply() dto.Reply {
	return dto.Reply{
		Text: "What would you like to update?",
		Actions: [][]dto.Action{
			{{Label: "💰 Income", Tag: dto.ActionUpdateIncome}},
			{{Label: "💸 Monthly expenses", Tag: dto.ActionUpdateExpenses}},
			{{Label: "🗓 Log weekly spending", Tag: dto.ActionLogWeekly}},
			{{Label: "🏦 Savings goal", Tag: dto.ActionUpdateSavings}},
			{{Label: "🛟 Emergency fund", Tag: dto.ActionUpdateEmergency}},
			{{Label: "⬅️ Back to dashboard", Tag: dto.ActionDashboard}},
		},
	}
}

// CategoryMenuReply lists the expense categories with their current amounts.
func (r *Renderer) CategoryMenuReply(p *models.Profile) dto.Reply {
	rows := make([][]dto.Action, 0, len(models.ExpenseCategories)+1)
	for _, c := range models.ExpenseCategories {
		rows = append(rows, []dto.Action{{
			Label: c.Label() + " (" + r.Money(p.Expenses[c]) + ")",
			Tag:   dto.ActionExpensePrefix + string(c),
		}})
	}
	rows = append(rows, []dto.Action{{Label: "✖️ Cancel", Tag: dto.ActionCancel}})
	return dto.Reply{
		Text:    "Which expense category do you want to change?",
		Actions: rows,
	}
}
