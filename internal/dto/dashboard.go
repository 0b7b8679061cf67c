package dto

// HealthTier is the qualitative band of a health score.
type HealthTier string

const (
	HealthPositive HealthTier = "positive"
	HealthNeutral  HealthTier = "neutral"
	HealthWarning  HealthTier = "warning"
)

// Indicator is a progress bar over a ratio clamped to [0,100].
type Indicator struct {
	Percent float64 `json:"percent"`
	Bar     string  `json:"bar"`
}

type ExpenseLine struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Amount   float64 `json:"amount"`
}

// Dashboard is the structured summary of a profile at a point in time.
type Dashboard struct {
	Name            string        `json:"name"`
	JobPosition     string        `json:"jobPosition"`
	Income          float64       `json:"income"`
	ExpenseTotal    float64       `json:"expenseTotal"`
	ExpenseShare    Indicator     `json:"expenseShare"`
	Breakdown       []ExpenseLine `json:"breakdown,omitempty"`
	SpentThisWeek   float64       `json:"spentThisWeek"`
	WeeklyBudget    float64       `json:"weeklyBudget"`
	WeeklyProgress  Indicator     `json:"weeklyProgress"`
	Disposable      float64       `json:"disposable"`
	AfterSavings    float64       `json:"afterSavings"`
	SavingsGoal     float64       `json:"savingsGoal"`
	SavingsShare    Indicator     `json:"savingsShare"`
	EmergencyFund   float64       `json:"emergencyFund"`
	EmergencyTarget float64       `json:"emergencyTarget"`
	EmergencyCover  Indicator     `json:"emergencyCover"`
	HealthScore     int           `json:"healthScore"`
	HealthBar       Indicator     `json:"healthBar"`
	HealthTier      HealthTier    `json:"healthTier"`
	HealthLabel     string        `json:"healthLabel"`
}
