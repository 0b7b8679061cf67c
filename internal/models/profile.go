package models

import (
	"time"
)

// SpendingEntry is one weekly-spending log line.
type SpendingEntry struct {
	Date   time.Time
	Amount float64
}

// Profile is a user's current financial snapshot. Derived figures are
// computed on demand and never stored.
type Profile struct {
	UserID              string
	Name                string
	JobPosition         string
	Income              float64
	TotalExpense        float64
	Expenses            ExpenseBreakdown
	SpendingLog         []SpendingEntry
	SavingsGoal         float64
	EmergencyFund       float64
	OnboardingCompleted bool
	CreatedAt           time.Time
	LastUpdated         time.Time
}

func NewProfile(userID string, now time.Time) *Profile {
	return &Profile{
		UserID:      userID,
		Expenses:    NewExpenseBreakdown(),
		SpendingLog: []SpendingEntry{},
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// ExpenseTotal prefers the category breakdown once any category is set and
// falls back to the figure entered during onboarding.
func (p *Profile) ExpenseTotal() float64 {
	if breakdown := p.Expenses.Total(); breakdown > 0 {
		return breakdown
	}
	return p.TotalExpense
}

func (p *Profile) Disposable() float64 {
	return p.Income - p.ExpenseTotal()
}

func (p *Profile) AfterSavings() float64 {
	return p.Disposable() - p.SavingsGoal
}

// WeeklyBudget is the expense total spread over four weeks.
func (p *Profile) WeeklyBudget() float64 {
	return p.ExpenseTotal() / 4
}

// LogSpending appends to the weekly log; earlier entries are never replaced.
func (p *Profile) LogSpending(amount float64, at time.Time) {
	p.SpendingLog = append(p.SpendingLog, SpendingEntry{Date: at, Amount: amount})
}

// SpentThisWeek sums log entries dated on or after the start of now's week.
func (p *Profile) SpentThisWeek(now time.Time) float64 {
	start := WeekStart(now)
	var total float64
	for _, e := range p.SpendingLog {
		if !e.Date.Before(start) {
			total += e.Amount
		}
	}
	return total
}

// WeekStart returns Monday 00:00 of the week containing t, in t's location.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

// SavingsRate is the savings goal as a percentage of income, 0 without income.
func (p *Profile) SavingsRate() float64 {
	if p.Income <= 0 {
		return 0
	}
	return p.SavingsGoal * 100 / p.Income
}

// EmergencyMonths is how many months of the onboarding expense figure the
// emergency fund covers.
func (p *Profile) EmergencyMonths() float64 {
	if p.TotalExpense <= 0 {
		return 0
	}
	return p.EmergencyFund / p.TotalExpense
}

// HealthScore combines savings rate (0-50) and emergency cover (0-50).
func (p *Profile) HealthScore() int {
	return savingsPoints(p) + emergencyPoints(p)
}

func savingsPoints(p *Profile) int {
	if p.Income <= 0 {
		return 0
	}
	rate := p.SavingsRate()
	switch {
	case rate >= 20:
		return 50
	case rate >= 15:
		return 35
	case rate >= 10:
		return 20
	case rate >= 5:
		return 10
	default:
		return 0
	}
}

func emergencyPoints(p *Profile) int {
	if p.TotalExpense <= 0 {
		return 0
	}
	months := p.EmergencyMonths()
	switch {
	case months >= 6:
		return 50
	case months >= 3:
		return 30
	case months >= 1:
		return 15
	default:
		return 0
	}
}

// Snapshot is the flat export pushed to the spreadsheet sink.
type Snapshot struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Job       string  `json:"job"`
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
	Savings   float64 `json:"savings"`
	Emergency float64 `json:"emergency"`
}

func (p *Profile) Snapshot() Snapshot {
	return Snapshot{
		UserID:    p.UserID,
		Name:      p.Name,
		Job:       p.JobPosition,
		Income:    p.Income,
		Expense:   p.TotalExpense,
		Savings:   p.SavingsGoal,
		Emergency: p.EmergencyFund,
	}
}
