package dialog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/expat-financier/internal/errs"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"10000", 10000},
		{"10,000", 10000},
		{"  6,000  ", 6000},
		{"250.50", 250.5},
		{"1,234,567.89", 1234567.89},
		{"0", 0},
		{"0.00", 0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestParseAmountRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "-5", "-0.01", "1e", "ten", "5 000", "$50", "1.2.3",
		"1e5", "1E5", "2.5e3", "1e20000000", "1e2000000000", ".5", "5.", strings.Repeat("9", 40)} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAmount(in)
			require.Error(t, err)
			var verr *errs.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestParseAmountRejectsExponentQuickly(t *testing.T) {
	start := time.Now()
	for _, in := range []string{"1e20000000", "1e2000000000", "9E999999999"} {
		_, err := ParseAmount(in)
		require.Error(t, err)
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestParseAmountNegativeMessage(t *testing.T) {
	_, err := ParseAmount("-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't be negative")
}

func TestParseText(t *testing.T) {
	got, err := parseText("  Alex  ", "name please")
	require.NoError(t, err)
	assert.Equal(t, "Alex", got)

	_, err = parseText(" \t", "name please")
	assert.EqualError(t, err, "name please")
}
