package dialog

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/expat-financier/internal/errs"
)

const invalidAmountMessage = "❌ Please enter a valid amount, a positive number like 5,000 or 250.50."

const maxAmountLen = 32

// plainAmount excludes exponent notation, which decimal would expand digit by digit.
var plainAmount = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// ParseAmount accepts a non-negative decimal with optional thousands
// separators and surrounding whitespace.
func ParseAmount(input string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(input), ",", "")
	if s == "" || len(s) > maxAmountLen || !plainAmount.MatchString(s) {
		return 0, errs.NewValidationError(invalidAmountMessage)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errs.NewValidationError(invalidAmountMessage)
	}
	if d.IsNegative() {
		return 0, errs.NewValidationError("❌ The amount can't be negative.")
	}

	f := d.InexactFloat64()
	if math.IsInf(f, 0) {
		return 0, errs.NewValidationError(invalidAmountMessage)
	}
	return f, nil
}

func parseText(input, message string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", errs.NewValidationError(message)
	}
	return s, nil
}
