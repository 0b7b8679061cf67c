package dto

// Action tags carried by inline buttons.
const (
	ActionMenu            = "menu"
	ActionDashboard       = "dashboard"
	ActionUpdateIncome    = "update_income"
	ActionUpdateExpenses  = "update_expenses"
	ActionLogWeekly       = "log_weekly"
	ActionUpdateSavings   = "update_savings"
	ActionUpdateEmergency = "update_emergency"
	ActionCancel          = "cancel"

	// ActionExpensePrefix + category key selects an expense category.
	ActionExpensePrefix = "expense:"
)

// Action is a named, clickable choice attached to a reply.
type Action struct {
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

// Reply is what the dialog sends back: text plus optional rows of actions.
type Reply struct {
	Text    string     `json:"text"`
	Actions [][]Action `json:"actions,omitempty"`
}
