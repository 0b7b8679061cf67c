package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var testNow = time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)

func TestExpenseTotalPrefersBreakdown(t *testing.T) {
	p := NewProfile("1", testNow)
	p.TotalExpense = 6000

	assert.Equal(t, 6000.0, p.ExpenseTotal(), "empty breakdown falls back to onboarding figure")

	require.NoError(t, p.Expenses.Set(CategoryFood, 800))
	require.NoError(t, p.Expenses.Set(CategoryRoomRent, 1500))
	assert.Equal(t, 2300.0, p.ExpenseTotal(), "breakdown wins once any category is set")
	assert.Equal(t, 6000.0, p.TotalExpense, "onboarding figure is left in place")
}

func TestExpenseBreakdownRejectsUnknownCategory(t *testing.T) {
	b := NewExpenseBreakdown()
	err := b.Set(ExpenseCategory("gym"), 10)
	require.Error(t, err)
	assert.Len(t, b, len(ExpenseCategories))

	_, err = ParseExpenseCategory("gym")
	require.Error(t, err)

	c, err := ParseExpenseCategory(" Food ")
	require.NoError(t, err)
	assert.Equal(t, CategoryFood, c)
}

func TestDisposableAndAfterSavings(t *testing.T) {
	p := NewProfile("1", testNow)
	p.Income = 10000
	p.TotalExpense = 6000
	p.SavingsGoal = 1000

	assert.Equal(t, 4000.0, p.Disposable())
	assert.Equal(t, 3000.0, p.AfterSavings())
	assert.Equal(t, 1500.0, p.WeeklyBudget())
}

func TestHealthScoreThresholds(t *testing.T) {
	tests := []struct {
		name      string
		income    float64
		savings   float64
		expense   float64
		emergency float64
		want      int
	}{
		{"all zero", 0, 0, 0, 0, 0},
		{"no income ignores savings", 0, 5000, 1000, 6000, 50},
		{"no expense ignores emergency", 1000, 200, 0, 99999, 50},
		{"20 percent and six months", 1000, 200, 100, 600, 100},
		{"15 percent and three months", 1000, 150, 100, 300, 65},
		{"10 percent and one month", 1000, 100, 100, 100, 35},
		{"5 percent and under a month", 1000, 50, 100, 99, 10},
		{"under 5 percent", 1000, 49, 100, 0, 0},
		{"onboarding example", 10000, 1000, 6000, 3000, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProfile("1", testNow)
			p.Income = tt.income
			p.SavingsGoal = tt.savings
			p.TotalExpense = tt.expense
			p.EmergencyFund = tt.emergency

			got := p.HealthScore()
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestHealthScoreUsesOnboardingExpenseForEmergency(t *testing.T) {
	p := NewProfile("1", testNow)
	p.TotalExpense = 1000
	p.EmergencyFund = 3000
	require.NoError(t, p.Expenses.Set(CategoryFood, 100))

	assert.Equal(t, 30, p.HealthScore(), "months covered divides by the onboarding figure")
}

func TestWeekStart(t *testing.T) {
	loc := time.FixedZone("GST", 4*60*60)
	tests := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2025, time.March, 12, 15, 0, 0, 0, loc), time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)},
		{time.Date(2025, time.March, 10, 0, 0, 0, 0, loc), time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)},
		{time.Date(2025, time.March, 16, 23, 59, 0, 0, loc), time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)},
		{time.Date(2025, time.March, 3, 8, 0, 0, 0, loc), time.Date(2025, time.March, 3, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		assert.True(t, tt.want.Equal(WeekStart(tt.now)), "WeekStart(%v) = %v, want %v", tt.now, WeekStart(tt.now), tt.want)
	}
}

func TestSpentThisWeek(t *testing.T) {
	p := NewProfile("1", testNow)
	monday := WeekStart(testNow)

	// insertion order must not matter
	p.LogSpending(250, testNow)
	p.LogSpending(100, monday.Add(-time.Second))
	p.LogSpending(250, monday)
	p.LogSpending(40, monday.AddDate(0, 0, -7))

	assert.Equal(t, 500.0, p.SpentThisWeek(testNow))
	assert.Len(t, p.SpendingLog, 4, "log is append-only")
}

func TestSnapshotUsesOnboardingExpense(t *testing.T) {
	p := NewProfile("77", testNow)
	p.Name = "Alex"
	p.JobPosition = "Engineer"
	p.Income = 10000
	p.TotalExpense = 6000
	p.SavingsGoal = 1000
	p.EmergencyFund = 3000
	require.NoError(t, p.Expenses.Set(CategoryFood, 900))

	assert.Equal(t, Snapshot{
		UserID:    "77",
		Name:      "Alex",
		Job:       "Engineer",
		Income:    10000,
		Expense:   6000,
		Savings:   1000,
		Emergency: 3000,
	}, p.Snapshot())
}
