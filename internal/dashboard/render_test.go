package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/expat-financier/internal/dto"
	"github.com/GregMSThompson/expat-financier/internal/models"
)

var now = time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)

func onboardedProfile() *models.Profile {
	p := models.NewProfile("42", now)
	p.Name = "Alex"
	p.JobPosition = "Engineer"
	p.Income = 10000
	p.TotalExpense = 6000
	p.SavingsGoal = 1000
	p.EmergencyFund = 3000
	p.OnboardingCompleted = true
	return p
}

func TestBuildOnboardingExample(t *testing.T) {
	d := Build(onboardedProfile(), now)

	assert.Equal(t, 10000.0, d.Income)
	assert.Equal(t, 6000.0, d.ExpenseTotal)
	assert.InDelta(t, 60, d.ExpenseShare.Percent, 1e-9)
	assert.Equal(t, 4000.0, d.Disposable)
	assert.Equal(t, 3000.0, d.AfterSavings)
	assert.Equal(t, 1500.0, d.WeeklyBudget)
	assert.Equal(t, 36000.0, d.EmergencyTarget)
	assert.InDelta(t, 8.333, d.EmergencyCover.Percent, 0.01)
	assert.InDelta(t, 10, d.SavingsShare.Percent, 1e-9)
	assert.Equal(t, 20, d.HealthScore)
	assert.Equal(t, dto.HealthWarning, d.HealthTier)
	assert.Empty(t, d.Breakdown, "breakdown hidden until a category is set")
}

func TestBuildZeroDenominators(t *testing.T) {
	d := Build(models.NewProfile("1", now), now)

	for name, in := range map[string]dto.Indicator{
		"expense":   d.ExpenseShare,
		"weekly":    d.WeeklyProgress,
		"savings":   d.SavingsShare,
		"emergency": d.EmergencyCover,
		"health":    d.HealthBar,
	} {
		assert.Zero(t, in.Percent, name)
		assert.Equal(t, strings.Repeat("░", barWidth), in.Bar, name)
	}
}

func TestBuildClampsOverspend(t *testing.T) {
	p := onboardedProfile()
	p.LogSpending(5000, now)

	d := Build(p, now)

	assert.Equal(t, 5000.0, d.SpentThisWeek)
	assert.Equal(t, 100.0, d.WeeklyProgress.Percent)
	assert.Equal(t, strings.Repeat("▓", barWidth), d.WeeklyProgress.Bar)
}

func TestBuildBreakdownTakesPrecedence(t *testing.T) {
	p := onboardedProfile()
	require.NoError(t, p.Expenses.Set(models.CategoryRoomRent, 2500))
	require.NoError(t, p.Expenses.Set(models.CategoryFood, 500))

	d := Build(p, now)

	assert.Equal(t, 3000.0, d.ExpenseTotal)
	assert.Equal(t, 750.0, d.WeeklyBudget)
	require.Len(t, d.Breakdown, len(models.ExpenseCategories))
	assert.Equal(t, "room_rent", d.Breakdown[1].Category)
	assert.Equal(t, 2500.0, d.Breakdown[1].Amount)
}

func TestHealthTiers(t *testing.T) {
	tests := []struct {
		score int
		want  dto.HealthTier
	}{
		{100, dto.HealthPositive},
		{70, dto.HealthPositive},
		{69, dto.HealthNeutral},
		{40, dto.HealthNeutral},
		{39, dto.HealthWarning},
		{0, dto.HealthWarning},
	}
	for _, tt := range tests {
		got, label := healthTier(tt.score)
		assert.Equal(t, tt.want, got, "score %d", tt.score)
		assert.NotEmpty(t, label)
	}
}

func TestNewIndicator(t *testing.T) {
	assert.Equal(t, 50.0, NewIndicator(5, 10).Percent)
	assert.Equal(t, "▓▓▓▓▓░░░░░", NewIndicator(5, 10).Bar)
	assert.Equal(t, 100.0, NewIndicator(30, 10).Percent)
	assert.Equal(t, 0.0, NewIndicator(-3, 10).Percent)
	assert.Equal(t, 0.0, NewIndicator(3, 0).Percent)
}

func TestRendererReply(t *testing.T) {
	r := NewRenderer("AED")
	reply := r.Reply(onboardedProfile(), now)

	assert.Contains(t, reply.Text, "Alex")
	assert.Contains(t, reply.Text, "Disposable: AED 4,000")
	assert.Contains(t, reply.Text, "Health score: 20/100")
	require.Len(t, reply.Actions, 1)
	assert.Equal(t, dto.ActionMenu, reply.Actions[0][0].Tag)
}

func TestMoney(t *testing.T) {
	r := NewRenderer("")
	assert.Equal(t, "AED 10,000", r.Money(10000))
	assert.Equal(t, "AED 250.50", r.Money(250.5))
}

func TestCategoryMenuReply(t *testing.T) {
	reply := NewRenderer("AED").CategoryMenuReply(onboardedProfile())

	require.Len(t, reply.Actions, len(models.ExpenseCategories)+1)
	assert.Equal(t, dto.ActionExpensePrefix+"home_remittance", reply.Actions[0][0].Tag)
	assert.Equal(t, dto.ActionCancel, reply.Actions[len(reply.Actions)-1][0].Tag)
}
