package models

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/GregMSThompson/expat-financier/internal/errs"
)

// Record is the flat keyed form a profile is persisted as.
type Record map[string]any

const (
	FieldUserID              = "user_id"
	FieldName                = "name"
	FieldJobPosition         = "job_position"
	FieldIncome              = "income"
	FieldTotalExpense        = "total_expense"
	FieldExpenses            = "expenses"
	FieldWeeklySpending      = "weekly_spending"
	FieldSavingsGoal         = "savings_goal"
	FieldEmergencyFund       = "emergency_fund"
	FieldOnboardingCompleted = "onboarding_completed"
	FieldCreatedAt           = "created_at"
	FieldLastUpdated         = "last_updated"

	entryDate   = "date"
	entryAmount = "amount"
)

// legacy records carry naive ISO timestamps without an offset
const naiveISOLayout = "2006-01-02T15:04:05.999999999"

func (p *Profile) ToRecord() Record {
	expenses := make(map[string]any, len(ExpenseCategories))
	for _, c := range ExpenseCategories {
		expenses[string(c)] = p.Expenses[c]
	}

	log := make([]any, 0, len(p.SpendingLog))
	for _, e := range p.SpendingLog {
		log = append(log, map[string]any{
			entryDate:   formatTime(e.Date),
			entryAmount: e.Amount,
		})
	}

	return Record{
		FieldUserID:              p.UserID,
		FieldName:                p.Name,
		FieldJobPosition:         p.JobPosition,
		FieldIncome:              p.Income,
		FieldTotalExpense:        p.TotalExpense,
		FieldExpenses:            expenses,
		FieldWeeklySpending:      log,
		FieldSavingsGoal:         p.SavingsGoal,
		FieldEmergencyFund:       p.EmergencyFund,
		FieldOnboardingCompleted: p.OnboardingCompleted,
		FieldCreatedAt:           formatTime(p.CreatedAt),
		FieldLastUpdated:         formatTime(p.LastUpdated),
	}
}

// ProfileFromRecord decodes a stored record. Missing fields take their zero
// value and unknown fields are ignored; a missing identity or a field of the
// wrong shape yields a MalformedRecordError.
func ProfileFromRecord(rec Record) (*Profile, error) {
	uid, err := userID(rec)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		UserID:      uid,
		Expenses:    NewExpenseBreakdown(),
		SpendingLog: []SpendingEntry{},
	}

	if p.Name, err = stringField(rec, FieldName); err != nil {
		return nil, err
	}
	if p.JobPosition, err = stringField(rec, FieldJobPosition); err != nil {
		return nil, err
	}
	if p.Income, err = amountField(rec, FieldIncome); err != nil {
		return nil, err
	}
	if p.TotalExpense, err = amountField(rec, FieldTotalExpense); err != nil {
		return nil, err
	}
	if p.SavingsGoal, err = amountField(rec, FieldSavingsGoal); err != nil {
		return nil, err
	}
	if p.EmergencyFund, err = amountField(rec, FieldEmergencyFund); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = timeField(rec, FieldCreatedAt); err != nil {
		return nil, err
	}
	if p.LastUpdated, err = timeField(rec, FieldLastUpdated); err != nil {
		return nil, err
	}

	if v, ok := rec[FieldOnboardingCompleted]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return nil, errs.NewMalformedRecordError(FieldOnboardingCompleted, "is not a boolean")
		}
		p.OnboardingCompleted = b
	}

	if err := decodeExpenses(rec, p.Expenses); err != nil {
		return nil, err
	}
	if p.SpendingLog, err = decodeSpendingLog(rec); err != nil {
		return nil, err
	}

	return p, nil
}

func userID(rec Record) (string, error) {
	v, ok := rec[FieldUserID]
	if !ok || v == nil {
		return "", errs.NewMalformedRecordError(FieldUserID, "is missing")
	}
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", errs.NewMalformedRecordError(FieldUserID, "is empty")
		}
		return id, nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case int:
		return strconv.Itoa(id), nil
	case json.Number:
		return id.String(), nil
	case float64:
		// chat ids written by older exports are plain JSON numbers
		if id == math.Trunc(id) {
			return strconv.FormatInt(int64(id), 10), nil
		}
	}
	return "", errs.NewMalformedRecordError(FieldUserID, "has an unsupported type")
}

func stringField(rec Record, key string) (string, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errs.NewMalformedRecordError(key, "is not a string")
	}
	return s, nil
}

func amountField(rec Record, key string) (float64, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return 0, nil
	}
	return toAmount(key, v)
}

func toAmount(key string, v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, errs.NewMalformedRecordError(key, "is not a number")
		}
		f = parsed
	default:
		return 0, errs.NewMalformedRecordError(key, "is not a number")
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errs.NewMalformedRecordError(key, "is not a non-negative amount")
	}
	return f, nil
}

func timeField(rec Record, key string) (time.Time, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return time.Time{}, nil
	}
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return parseTime(key, t)
	}
	return time.Time{}, errs.NewMalformedRecordError(key, "is not a timestamp")
}

func parseTime(key, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(naiveISOLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, errs.NewMalformedRecordError(key, "is not an ISO-8601 timestamp")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func decodeExpenses(rec Record, into ExpenseBreakdown) error {
	v, ok := rec[FieldExpenses]
	if !ok || v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return errs.NewMalformedRecordError(FieldExpenses, "is not an object")
	}
	for _, c := range ExpenseCategories {
		raw, ok := m[string(c)]
		if !ok || raw == nil {
			continue
		}
		amount, err := toAmount(FieldExpenses+"."+string(c), raw)
		if err != nil {
			return err
		}
		into[c] = amount
	}
	return nil
}

func decodeSpendingLog(rec Record) ([]SpendingEntry, error) {
	v, ok := rec[FieldWeeklySpending]
	if !ok || v == nil {
		return []SpendingEntry{}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, errs.NewMalformedRecordError(FieldWeeklySpending, "is not a list")
	}
	out := make([]SpendingEntry, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, errs.NewMalformedRecordError(FieldWeeklySpending, "entry is not an object")
		}
		date, err := timeField(Record(m), entryDate)
		if err != nil {
			return nil, err
		}
		amount, err := amountField(Record(m), entryAmount)
		if err != nil {
			return nil, err
		}
		out = append(out, SpendingEntry{Date: date, Amount: amount})
	}
	return out, nil
}
