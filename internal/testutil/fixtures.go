package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendlog/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// ExpenseOpt customizes a fixture expense before it is inserted.
type ExpenseOpt func(*models.Expense)

// WithCategory sets the fixture's category.
func WithCategory(c models.Category) ExpenseOpt {
	return func(e *models.Expense) { e.Category = c }
}

// WithDate sets the fixture's date from a YYYY-MM-DD string.
func WithDate(s string) ExpenseOpt {
	return func(e *models.Expense) {
		d, err := time.Parse(models.DateLayout, s)
		if err != nil {
			panic(err)
		}
		e.Date = d
	}
}

// WithNotes sets the fixture's notes.
func WithNotes(notes string) ExpenseOpt {
	return func(e *models.Expense) { e.Notes = notes }
}

// WithRecurrence marks the fixture recurring with the given type.
func WithRecurrence(r models.RecurrenceType) ExpenseOpt {
	return func(e *models.Expense) {
		e.Recurring = r != models.RecurrenceNone
		e.RecurrenceType = r
	}
}

// CreateTestExpense creates an expense for userID. A nil userID creates an
// ownerless row. Defaults: category OTHER, date 2024-01-15, no notes.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID *uint, title, amount string, opts ...ExpenseOpt) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:         userID,
		Title:          title,
		Amount:         decimal.RequireFromString(amount),
		Category:       models.CategoryOther,
		Date:           time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		RecurrenceType: models.RecurrenceNone,
	}
	for _, opt := range opts {
		opt(expense)
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestSession creates a session for userID that expires after ttl.
func CreateTestSession(t *testing.T, db *gorm.DB, userID uint, ttl time.Duration) *models.Session {
	t.Helper()

	now := time.Now().UTC()
	session := &models.Session{
		UserID:       userID,
		ExpiresAt:    now.Add(ttl),
		LastActivity: now,
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create test session: %v", err)
	}
	return session
}
