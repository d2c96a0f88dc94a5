package models

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the closed set of expense categories
type Category string

const (
	CategoryFood     Category = "FOOD"
	CategoryTravel   Category = "TRAVEL"
	CategoryBills    Category = "BILLS"
	CategoryShopping Category = "SHOPPING"
	CategoryOther    Category = "OTHER"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryFood, CategoryTravel, CategoryBills, CategoryShopping, CategoryOther}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c.Rank() >= 0
}

// Rank returns the display position of c, or -1 for an unknown category.
func (c Category) Rank() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return -1
}

// Label returns the human-readable name, e.g. "Food".
func (c Category) Label() string {
	return cases.Title(language.English).String(string(c))
}

// RecurrenceType tags how often a recurring expense repeats
type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "NONE"
	RecurrenceDaily   RecurrenceType = "DAILY"
	RecurrenceWeekly  RecurrenceType = "WEEKLY"
	RecurrenceMonthly RecurrenceType = "MONTHLY"
	RecurrenceYearly  RecurrenceType = "YEARLY"
)

// RecurrenceTypes lists every recurrence type in display order.
var RecurrenceTypes = []RecurrenceType{RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly}

// Valid reports whether r is one of the known recurrence types.
func (r RecurrenceType) Valid() bool {
	for _, known := range RecurrenceTypes {
		if r == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable name, e.g. "Monthly".
func (r RecurrenceType) Label() string {
	return cases.Title(language.English).String(string(r))
}

// DateLayout is the calendar-date format used in forms and exports.
const DateLayout = "2006-01-02"

// Expense is a single spending record owned by a user
type Expense struct {
	Base
	UserID         *uint           `gorm:"index" json:"user_id"`
	Title          string          `gorm:"size:100;not null" json:"title"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category       Category        `gorm:"size:20;not null;default:OTHER" json:"category"`
	Date           time.Time       `gorm:"type:date;not null" json:"date"`
	Notes          string          `json:"notes"`
	Recurring      bool            `gorm:"not null;default:false" json:"recurring"`
	RecurrenceType RecurrenceType  `gorm:"size:20;not null;default:NONE" json:"recurrence_type"`
}

// DateString formats the expense date as YYYY-MM-DD.
func (e *Expense) DateString() string {
	return e.Date.Format(DateLayout)
}

// AmountString formats the amount with exactly two decimal places.
func (e *Expense) AmountString() string {
	return e.Amount.StringFixed(2)
}

// TruncateDate returns t as a UTC calendar date at midnight.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
