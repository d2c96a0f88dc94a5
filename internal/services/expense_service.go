package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/models"
)

const (
	maxTitleLength    = 100
	maxAmountDecimals = 2
	maxAmountDigits   = 8
)

// maxAmount is the first absolute value that no longer fits decimal(10,2).
var maxAmount = decimal.New(1, maxAmountDigits)

// expenseService handles owner-scoped expense business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// List returns every expense owned by userID that matches filter, newest
// first, together with the sum of their amounts.
func (s *expenseService) List(userID uint, filter ExpenseFilter) (*ExpenseList, error) {
	var expenses []models.Expense
	err := applyExpenseFilters(s.db.Where("user_id = ?", userID), filter).
		Order("date DESC").
		Order("id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	expenses = matchSearch(expenses, filter.Search)

	total := decimal.Zero
	for i := range expenses {
		total = total.Add(expenses[i].Amount)
	}

	if expenses == nil {
		expenses = []models.Expense{}
	}
	return &ExpenseList{Expenses: expenses, Total: total}, nil
}

func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", models.TruncateDate(*f.StartDate))
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", models.TruncateDate(*f.EndDate))
	}
	return q
}

// matchSearch keeps the expenses whose title or notes contain search,
// ignoring case. SQLite's LOWER only folds ASCII, so the match runs in Go.
func matchSearch(expenses []models.Expense, search string) []models.Expense {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return expenses
	}

	matched := expenses[:0]
	for _, e := range expenses {
		if strings.Contains(strings.ToLower(e.Title), needle) || strings.Contains(strings.ToLower(e.Notes), needle) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Get retrieves an expense by ID for a specific user
func (s *expenseService) Get(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// Create inserts a new expense owned by userID.
func (s *expenseService) Create(userID uint, input ExpenseInput) (*models.Expense, error) {
	input.Normalize()
	if err := ValidateExpenseInput(input); err != nil {
		return nil, err
	}

	owner := userID
	expense := &models.Expense{UserID: &owner}
	input.apply(expense)

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// Update overwrites every mutable attribute of an owned expense.
func (s *expenseService) Update(userID, expenseID uint, input ExpenseInput) (*models.Expense, error) {
	expense, err := s.Get(userID, expenseID)
	if err != nil {
		return nil, err
	}

	input.Normalize()
	if err := ValidateExpenseInput(input); err != nil {
		return nil, err
	}

	input.apply(expense)
	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// Delete hard-deletes an owned expense.
func (s *expenseService) Delete(userID, expenseID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

func (in ExpenseInput) apply(e *models.Expense) {
	e.Title = in.Title
	e.Amount = in.Amount
	e.Category = in.Category
	e.Date = in.Date
	e.Notes = in.Notes
	e.Recurring = in.Recurring
	e.RecurrenceType = in.RecurrenceType
}

// ValidateExpenseInput checks a normalized input against the expense rules.
func ValidateExpenseInput(in ExpenseInput) error {
	switch {
	case in.Title == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Title is required.")
	case utf8.RuneCountInString(in.Title) > maxTitleLength:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Title must be at most %d characters.", maxTitleLength))
	case !in.Category.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Unknown category %q.", in.Category))
	case !in.RecurrenceType.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Unknown recurrence type %q.", in.RecurrenceType))
	case in.Date.IsZero():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Date is required.")
	}
	return ValidateAmount(in.Amount)
}

// ValidateAmount rejects amounts with more than two significant decimal
// places or more than eight integral digits. Zero and negatives are allowed.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(maxAmountDecimals)) {
		return apperrors.ErrInvalidAmount
	}
	if amount.Abs().GreaterThanOrEqual(maxAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "Amount must have at most 8 digits before the decimal point.")
	}
	return nil
}
