package dialog

// State is where a user's conversation currently is.
type State int

const (
	StateAwaitName State = iota + 1
	StateAwaitJob
	StateAwaitIncome
	StateAwaitExpense
	StateAwaitSavings
	StateAwaitEmergency
	StateDashboard
	StateMenu
	StateAwaitIncomeUpdate
	StateAwaitExpenseCategory
	StateAwaitExpenseUpdate
	StateAwaitWeeklyLog
	StateAwaitSavingsUpdate
	StateAwaitEmergencyUpdate
)

var stateNames = map[State]string{
	StateAwaitName:            "await_name",
	StateAwaitJob:             "await_job",
	StateAwaitIncome:          "await_income",
	StateAwaitExpense:         "await_expense",
	StateAwaitSavings:         "await_savings",
	StateAwaitEmergency:       "await_emergency",
	StateDashboard:            "dashboard",
	StateMenu:                 "menu",
	StateAwaitIncomeUpdate:    "await_income_update",
	StateAwaitExpenseCategory: "await_expense_category",
	StateAwaitExpenseUpdate:   "await_expense_update",
	StateAwaitWeeklyLog:       "await_weekly_log",
	StateAwaitSavingsUpdate:   "await_savings_update",
	StateAwaitEmergencyUpdate: "await_emergency_update",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s State) Onboarding() bool {
	return s >= StateAwaitName && s <= StateAwaitEmergency
}

// EventKind distinguishes the inbound event shapes.
type EventKind int

const (
	EventText EventKind = iota + 1
	EventAction
	EventStart
	EventCancel
)

// Event is one inbound user interaction.
type Event struct {
	UserID string
	Kind   EventKind
	Text   string
	Action string
}

func TextEvent(uid, text string) Event {
	return Event{UserID: uid, Kind: EventText, Text: text}
}

func ActionEvent(uid, tag string) Event {
	return Event{UserID: uid, Kind: EventAction, Action: tag}
}

func StartEvent(uid string) Event {
	return Event{UserID: uid, Kind: EventStart}
}

func CancelEvent(uid string) Event {
	return Event{UserID: uid, Kind: EventCancel}
}
