package models

import (
	"strings"

	"github.com/GregMSThompson/expat-financier/internal/errs"
)

// ExpenseCategory is one of the fixed monthly expense buckets.
type ExpenseCategory string

const (
	CategoryHomeRemittance ExpenseCategory = "home_remittance"
	CategoryRoomRent       ExpenseCategory = "room_rent"
	CategoryFood           ExpenseCategory = "food"
	CategoryTransport      ExpenseCategory = "transport"
	CategoryMiscellaneous  ExpenseCategory = "miscellaneous"
)

// ExpenseCategories lists every category in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryHomeRemittance,
	CategoryRoomRent,
	CategoryFood,
	CategoryTransport,
	CategoryMiscellaneous,
}

var categoryLabels = map[ExpenseCategory]string{
	CategoryHomeRemittance: "Home remittance",
	CategoryRoomRent:       "Room rent",
	CategoryFood:           "Food",
	CategoryTransport:      "Transport",
	CategoryMiscellaneous:  "Miscellaneous",
}

func (c ExpenseCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c ExpenseCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	c := ExpenseCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", errs.NewUnknownCategoryError(s)
	}
	return c, nil
}

// ExpenseBreakdown maps each fixed category to its monthly amount.
type ExpenseBreakdown map[ExpenseCategory]float64

func NewExpenseBreakdown() ExpenseBreakdown {
	b := make(ExpenseBreakdown, len(ExpenseCategories))
	for _, c := range ExpenseCategories {
		b[c] = 0
	}
	return b
}

func (b ExpenseBreakdown) Set(c ExpenseCategory, amount float64) error {
	if !c.Valid() {
		return errs.NewUnknownCategoryError(string(c))
	}
	if amount < 0 {
		return errs.NewValidationError("amount must not be negative")
	}
	b[c] = amount
	return nil
}

func (b ExpenseBreakdown) Total() float64 {
	var sum float64
	for _, c := range ExpenseCategories {
		sum += b[c]
	}
	return sum
}
