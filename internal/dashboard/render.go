package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/GregMSThompson/expat-financier/internal/dto"
	"github.com/GregMSThompson/expat-financier/internal/models"
)

const (
	barWidth        = 10
	emergencyMonths = 6
)

type Renderer struct {
	currency string
	printer  *message.Printer
}

func NewRenderer(currency string) *Renderer {
	if currency == "" {
		currency = "AED"
	}
	return &Renderer{
		currency: currency,
		printer:  message.NewPrinter(language.English),
	}
}

// Build computes the structured dashboard for p as of now. It reads p only.
func Build(p *models.Profile, now time.Time) dto.Dashboard {
	expenseTotal := p.ExpenseTotal()
	emergencyTarget := expenseTotal * emergencyMonths
	score := p.HealthScore()
	tier, label := healthTier(score)

	d := dto.Dashboard{
		Name:            p.Name,
		JobPosition:     p.JobPosition,
		Income:          p.Income,
		ExpenseTotal:    expenseTotal,
		ExpenseShare:    NewIndicator(expenseTotal, p.Income),
		SpentThisWeek:   p.SpentThisWeek(now),
		WeeklyBudget:    p.WeeklyBudget(),
		Disposable:      p.Disposable(),
		AfterSavings:    p.AfterSavings(),
		SavingsGoal:     p.SavingsGoal,
		SavingsShare:    NewIndicator(p.SavingsGoal, p.Income),
		EmergencyFund:   p.EmergencyFund,
		EmergencyTarget: emergencyTarget,
		EmergencyCover:  NewIndicator(p.EmergencyFund, emergencyTarget),
		HealthScore:     score,
		HealthBar:       NewIndicator(float64(score), 100),
		HealthTier:      tier,
		HealthLabel:     label,
	}
	d.WeeklyProgress = NewIndicator(d.SpentThisWeek, d.WeeklyBudget)

	if p.Expenses.Total() > 0 {
		for _, c := range models.ExpenseCategories {
			d.Breakdown = append(d.Breakdown, dto.ExpenseLine{
				Category: string(c),
				Label:    c.Label(),
				Amount:   p.Expenses[c],
			})
		}
	}
	return d
}

// NewIndicator renders value/total as a clamped percentage. A zero total
// renders as 0%.
func NewIndicator(value, total float64) dto.Indicator {
	pct := 0.0
	if total > 0 {
		pct = value / total * 100
	}
	if math.IsNaN(pct) || pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(math.Round(pct / 100 * barWidth))
	return dto.Indicator{
		Percent: pct,
		Bar:     strings.Repeat("▓", filled) + strings.Repeat("░", barWidth-filled),
	}
}

func healthTier(score int) (dto.HealthTier, string) {
	switch {
	case score >= 70:
		return dto.HealthPositive, "🟢 Great shape, keep it up!"
	case score >= 40:
		return dto.HealthNeutral, "🟡 Getting there, a bit more buffer will help."
	default:
		return dto.HealthWarning, "🔴 Needs attention: grow your savings and emergency fund."
	}
}

// Reply renders the dashboard text with its actions.
func (r *Renderer) Reply(p *models.Profile, now time.Time) dto.Reply {
	return dto.Reply{
		Text: r.Text(Build(p, now)),
		Actions: [][]dto.Action{
			{{Label: "⚙️ Update", Tag: dto.ActionMenu}, {Label: "🔄 Refresh", Tag: dto.ActionDashboard}},
		},
	}
}

func (r *Renderer) Text(d dto.Dashboard) string {
	var b strings.Builder

	title := "📊 Your financial dashboard"
	if d.Name != "" {
		title += ", " + d.Name
	}
	b.WriteString(title + "\n")
	if d.JobPosition != "" {
		b.WriteString(d.JobPosition + "\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "💰 Income: %s\n", r.Money(d.Income))
	fmt.Fprintf(&b, "💸 Expenses: %s\n", r.Money(d.ExpenseTotal))
	writeIndicator(&b, d.ExpenseShare, "of income")
	for _, line := range d.Breakdown {
		fmt.Fprintf(&b, "   • %s: %s\n", line.Label, r.Money(line.Amount))
	}
	fmt.Fprintf(&b, "🗓 This week: %s of %s\n", r.Money(d.SpentThisWeek), r.Money(d.WeeklyBudget))
	writeIndicator(&b, d.WeeklyProgress, "of weekly budget")
	fmt.Fprintf(&b, "💵 Disposable: %s\n", r.Money(d.Disposable))
	fmt.Fprintf(&b, "🏦 Savings goal: %s\n", r.Money(d.SavingsGoal))
	writeIndicator(&b, d.SavingsShare, "of income")
	fmt.Fprintf(&b, "   Left after savings: %s\n", r.Money(d.AfterSavings))
	fmt.Fprintf(&b, "🛟 Emergency fund: %s of %s\n", r.Money(d.EmergencyFund), r.Money(d.EmergencyTarget))
	writeIndicator(&b, d.EmergencyCover, "of 6 months")
	fmt.Fprintf(&b, "\n❤️ Health score: %d/100\n", d.HealthScore)
	writeIndicator(&b, d.HealthBar, "")
	b.WriteString(d.HealthLabel)

	return b.String()
}

func writeIndicator(b *strings.Builder, in dto.Indicator, suffix string) {
	line := fmt.Sprintf("   %s %.0f%%", in.Bar, in.Percent)
	if suffix != "" {
		line += " " + suffix
	}
	b.WriteString(line + "\n")
}

// Money formats an amount with thousands separators, dropping a zero fraction.
func (r *Renderer) Money(v float64) string {
	if v == math.Trunc(v) {
		return r.printer.Sprintf("%s %.0f", r.currency, v)
	}
	return r.printer.Sprintf("%s %.2f", r.currency, v)
}
