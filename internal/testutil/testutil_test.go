package testutil_test

import (
	"testing"
	"time"

	"spendlog/internal/errors"
	"spendlog/internal/models"
	"spendlog/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"users", "sessions", "expenses", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestUser(t, first)

	var count int64
	second.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected second database to be empty, got %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	expense := testutil.CreateTestExpense(t, db, &user.ID, "Coffee", "4.50",
		testutil.WithCategory(models.CategoryFood),
		testutil.WithDate("2024-03-02"),
		testutil.WithRecurrence(models.RecurrenceDaily),
	)
	if expense.ID == 0 {
		t.Fatal("expense should have a non-zero ID")
	}
	if expense.Category != models.CategoryFood {
		t.Errorf("expected FOOD, got %s", expense.Category)
	}
	if expense.DateString() != "2024-03-02" {
		t.Errorf("expected 2024-03-02, got %s", expense.DateString())
	}
	if !expense.Recurring || expense.RecurrenceType != models.RecurrenceDaily {
		t.Errorf("expected daily recurrence, got %v/%s", expense.Recurring, expense.RecurrenceType)
	}

	session := testutil.CreateTestSession(t, db, user.ID, time.Hour)
	if session.ID == "" {
		t.Fatal("session should have an ID")
	}
	if session.Expired(time.Now()) {
		t.Error("new session should not be expired")
	}
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, errors.ErrExpenseNotFound, "EXPENSE_NOT_FOUND")
	testutil.AssertAppError(t, errors.WithMessage(errors.ErrInvalidInput, "bad"), "INVALID_INPUT")
}

func TestAssertAppErrorMessage(t *testing.T) {
	err := errors.WithMessage(errors.ErrInvalidBackup, "Invalid backup: item 2: entry is null")
	testutil.AssertAppErrorMessage(t, err, "INVALID_BACKUP", "Invalid backup: item 2")
}
