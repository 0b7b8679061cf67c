package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/expat-financier/internal/errs"
)

func TestRecordRoundTrip(t *testing.T) {
	created := time.Date(2025, time.January, 2, 9, 0, 0, 123456789, time.UTC)

	full := NewProfile("12345", created)
	full.Name = "Alex"
	full.JobPosition = "Engineer"
	full.Income = 10000.5
	full.TotalExpense = 6000
	full.SavingsGoal = 1000
	full.EmergencyFund = 3000
	full.OnboardingCompleted = true
	full.LastUpdated = created.Add(time.Hour)
	require.NoError(t, full.Expenses.Set(CategoryHomeRemittance, 2000))
	require.NoError(t, full.Expenses.Set(CategoryTransport, 150.25))
	full.LogSpending(250, created.Add(48*time.Hour))
	full.LogSpending(99.99, created.Add(72*time.Hour))

	empty := NewProfile("99", created)

	for name, p := range map[string]*Profile{"full": full, "empty log": empty} {
		t.Run(name, func(t *testing.T) {
			got, err := ProfileFromRecord(p.ToRecord())
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}
}

func TestRecordRoundTripKeepsInstant(t *testing.T) {
	cases := map[string]time.Time{
		"local":     time.Date(2025, time.March, 12, 19, 30, 0, 42, time.Local),
		"fixed":     time.Date(2025, time.March, 12, 19, 30, 0, 0, time.FixedZone("GST", 4*60*60)),
		"monotonic": time.Now(),
	}
	for name, created := range cases {
		t.Run(name, func(t *testing.T) {
			p := NewProfile("7", created)
			p.LastUpdated = created.Add(time.Minute)
			p.LogSpending(42, created)

			got, err := ProfileFromRecord(p.ToRecord())
			require.NoError(t, err)

			assert.True(t, created.Equal(got.CreatedAt), "created %v, got %v", created, got.CreatedAt)
			assert.True(t, p.LastUpdated.Equal(got.LastUpdated))
			require.Len(t, got.SpendingLog, 1)
			assert.True(t, created.Equal(got.SpendingLog[0].Date))
			assert.Equal(t, got.CreatedAt, got.CreatedAt.Round(0), "parsed times carry no monotonic reading")
		})
	}
}

func TestRecordRoundTripThroughJSON(t *testing.T) {
	created := time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC)
	p := NewProfile("5", created)
	p.Income = 1234.56
	p.LogSpending(10, created)

	raw, err := json.Marshal(p.ToRecord())
	require.NoError(t, err)

	var rec Record
	require.NoError(t, json.Unmarshal(raw, &rec))

	got, err := ProfileFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestProfileFromRecordDefaults(t *testing.T) {
	got, err := ProfileFromRecord(Record{
		FieldUserID: "1",
		FieldExpenses: map[string]any{
			"food":    120.0,
			"lottery": 5.0,
		},
		"favourite_colour": "green",
	})
	require.NoError(t, err)

	assert.Equal(t, "1", got.UserID)
	assert.Empty(t, got.Name)
	assert.Zero(t, got.Income)
	assert.False(t, got.OnboardingCompleted)
	assert.True(t, got.CreatedAt.IsZero())
	assert.NotNil(t, got.SpendingLog)
	assert.Empty(t, got.SpendingLog)

	assert.Len(t, got.Expenses, len(ExpenseCategories), "unknown categories are dropped")
	assert.Equal(t, 120.0, got.Expenses[CategoryFood])
	for _, c := range ExpenseCategories {
		if c != CategoryFood {
			assert.Zero(t, got.Expenses[c], "category %s should default to zero", c)
		}
	}
}

func TestProfileFromRecordMissingIdentity(t *testing.T) {
	_, err := ProfileFromRecord(Record{FieldName: "Alex"})

	var malformed *errs.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, FieldUserID, malformed.Field)
}

func TestProfileFromRecordNumericIdentity(t *testing.T) {
	got, err := ProfileFromRecord(Record{FieldUserID: float64(8306299902)})
	require.NoError(t, err)
	assert.Equal(t, "8306299902", got.UserID)

	got, err = ProfileFromRecord(Record{FieldUserID: int64(42)})
	require.NoError(t, err)
	assert.Equal(t, "42", got.UserID)
}

func TestProfileFromRecordRejectsWrongShapes(t *testing.T) {
	tests := map[string]Record{
		"income as text":   {FieldUserID: "1", FieldIncome: "lots"},
		"negative savings": {FieldUserID: "1", FieldSavingsGoal: -5.0},
		"expenses list":    {FieldUserID: "1", FieldExpenses: []any{1.0}},
		"log entry scalar": {FieldUserID: "1", FieldWeeklySpending: []any{"oops"}},
		"bad timestamp":    {FieldUserID: "1", FieldCreatedAt: "yesterday"},
		"flag as string":   {FieldUserID: "1", FieldOnboardingCompleted: "yes"},
	}
	for name, rec := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ProfileFromRecord(rec)
			var malformed *errs.MalformedRecordError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestProfileFromRecordAcceptsNaiveTimestamps(t *testing.T) {
	got, err := ProfileFromRecord(Record{
		FieldUserID:    "1",
		FieldCreatedAt: "2024-11-05T18:22:01.512345",
		FieldWeeklySpending: []any{
			map[string]any{"date": "2024-11-04T08:00:00", "amount": int64(40)},
		},
	})
	require.NoError(t, err)

	want := time.Date(2024, time.November, 5, 18, 22, 1, 512345000, time.Local)
	assert.True(t, want.Equal(got.CreatedAt))
	require.Len(t, got.SpendingLog, 1)
	assert.Equal(t, 40.0, got.SpendingLog[0].Amount)
}
