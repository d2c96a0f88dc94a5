package services

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"spendlog/internal/models"
	"spendlog/internal/testutil"
)

func TestExportCSV_OwnedOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortabilityService(db)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	testutil.CreateTestExpense(t, db, &owner.ID, "Coffee", "4.5",
		testutil.WithCategory(models.CategoryFood), testutil.WithDate("2024-01-05"))
	testutil.CreateTestExpense(t, db, &owner.ID, "Rent", "1200",
		testutil.WithCategory(models.CategoryBills), testutil.WithDate("2024-02-01"))
	testutil.CreateTestExpense(t, db, &other.ID, "Secret", "1.00")

	var buf bytes.Buffer
	testutil.AssertNoError(t, svc.ExportCSV(owner.ID, &buf))

	want := "Title,Amount,Category,Date,Notes\n" +
		"Rent,1200.00,BILLS,2024-02-01,\n" +
		"Coffee,4.50,FOOD,2024-01-05,\n"
	if buf.String() != want {
		t.Errorf("unexpected CSV:\n%s", buf.String())
	}
}

func TestExportXLSX(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortabilityService(db)
	owner := testutil.CreateTestUser(t, db)
	testutil.CreateTestExpense(t, db, &owner.ID, "Coffee", "4.5")

	var buf bytes.Buffer
	testutil.AssertNoError(t, svc.ExportXLSX(owner.ID, &buf))

	// XLSX files are zip archives.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("expected a zip-based workbook")
	}
}

func TestBackup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortabilityService(db)
	owner := testutil.CreateTestUser(t, db)
	testutil.CreateTestExpense(t, db, &owner.ID, "Coffee", "4.5",
		testutil.WithCategory(models.CategoryFood), testutil.WithDate("2024-01-05"))

	var buf bytes.Buffer
	testutil.AssertNoError(t, svc.Backup(owner.ID, &buf))

	var records []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("backup is not JSON: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["amount"] != "4.50" || records[0]["date"] != "2024-01-05" {
		t.Errorf("unexpected record %v", records[0])
	}
}

func TestRestore(t *testing.T) {
	t.Run("inserts_and_updates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortabilityService(db)
		owner := testutil.CreateTestUser(t, db)
		existing := testutil.CreateTestExpense(t, db, &owner.ID, "Coffee", "4.50",
			testutil.WithCategory(models.CategoryFood), testutil.WithDate("2024-01-05"), testutil.WithNotes("old"))

		doc := `[
			{"id": 999, "user_id": 12345, "title": "Coffee", "amount": "4.50", "category": "FOOD", "date": "2024-01-05", "notes": "new", "recurring": true, "recurrence_type": "DAILY"},
			{"title": "Book", "amount": 15, "category": "SHOPPING", "date": "2024-01-06"}
		]`
		result, err := svc.Restore(owner.ID, strings.NewReader(doc))
		testutil.AssertNoError(t, err)

		if result.Created != 1 || result.Updated != 1 {
			t.Errorf("expected 1 created and 1 updated, got %+v", result)
		}

		var updated models.Expense
		db.First(&updated, existing.ID)
		if updated.Notes != "new" || !updated.Recurring || updated.RecurrenceType != models.RecurrenceDaily {
			t.Errorf("existing row not overwritten: %+v", updated)
		}

		var rows []models.Expense
		db.Where("user_id = ?", owner.ID).Find(&rows)
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}

		var foreign int64
		db.Model(&models.Expense{}).Where("user_id <> ? OR user_id IS NULL", owner.ID).Count(&foreign)
		if foreign != 0 {
			t.Errorf("restore must not create rows for other owners, found %d", foreign)
		}
	})

	t.Run("different_amount_inserts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortabilityService(db)
		owner := testutil.CreateTestUser(t, db)
		testutil.CreateTestExpense(t, db, &owner.ID, "Coffee", "4.50",
			testutil.WithCategory(models.CategoryFood), testutil.WithDate("2024-01-05"))

		doc := `[{"title": "Coffee", "amount": "5.00", "category": "FOOD", "date": "2024-01-05"}]`
		result, err := svc.Restore(owner.ID, strings.NewReader(doc))
		testutil.AssertNoError(t, err)
		if result.Created != 1 || result.Updated != 0 {
			t.Errorf("expected a new row, got %+v", result)
		}
	})

	t.Run("other_owner_row_not_matched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortabilityService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		theirs := testutil.CreateTestExpense(t, db, &other.ID, "Coffee", "4.50",
			testutil.WithCategory(models.CategoryFood), testutil.WithDate("2024-01-05"), testutil.WithNotes("theirs"))

		doc := `[{"title": "Coffee", "amount": "4.50", "category": "FOOD", "date": "2024-01-05", "notes": "mine"}]`
		result, err := svc.Restore(owner.ID, strings.NewReader(doc))
		testutil.AssertNoError(t, err)
		if result.Created != 1 {
			t.Errorf("expected insert for caller, got %+v", result)
		}

		var untouched models.Expense
		db.First(&untouched, theirs.ID)
		if untouched.Notes != "theirs" {
			t.Errorf("other user's row modified: %q", untouched.Notes)
		}
	})

	t.Run("round_trip_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortabilityService(db)
		owner := testutil.CreateTestUser(t, db)
		testutil.CreateTestExpense(t, db, &owner.ID, "Coffee", "4.50", testutil.WithCategory(models.CategoryFood))
		testutil.CreateTestExpense(t, db, &owner.ID, "Tram", "2.10", testutil.WithCategory(models.CategoryTravel))

		var buf bytes.Buffer
		testutil.AssertNoError(t, svc.Backup(owner.ID, &buf))

		result, err := svc.Restore(owner.ID, &buf)
		testutil.AssertNoError(t, err)
		if result.Created != 0 || result.Updated != 2 {
			t.Errorf("expected 2 updates, got %+v", result)
		}

		var count int64
		db.Model(&models.Expense{}).Count(&count)
		if count != 2 {
			t.Errorf("expected 2 rows after restore, got %d", count)
		}
	})

	invalid := []struct {
		name    string
		doc     string
		message string
	}{
		{name: "malformed_json", doc: `[{"title": "x",`, message: "Invalid backup: malformed JSON"},
		{name: "not_an_array", doc: `{"title": "x"}`, message: "Invalid backup: malformed JSON"},
		{name: "missing_title", doc: `[{"amount": "1", "category": "FOOD", "date": "2024-01-01"}]`, message: `Invalid backup: item 1: missing key "title"`},
		{name: "null_entry", doc: `[null]`, message: "Invalid backup: item 1: entry is null"},
		{name: "bad_category", doc: `[{"title": "a", "amount": "1", "category": "FUN", "date": "2024-01-01"}]`, message: `Invalid backup: item 1: Unknown category "FUN"`},
		{name: "bad_date", doc: `[{"title": "a", "amount": "1", "category": "FOOD", "date": "yesterday"}]`, message: `Invalid backup: item 1: invalid date "yesterday"`},
		{name: "bad_amount_precision", doc: `[{"title": "a", "amount": "1.001", "category": "FOOD", "date": "2024-01-01"}]`, message: "Invalid backup: item 1: Amount must be"},
		{name: "valid_then_invalid", doc: `[{"title": "ok", "amount": "1", "category": "FOOD", "date": "2024-01-01"}, {"title": "", "amount": "1", "category": "FOOD", "date": "2024-01-01"}]`, message: "Invalid backup: item 2: Title is required."},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer testutil.TeardownTestDB(t, db)
			svc := NewPortabilityService(db)
			owner := testutil.CreateTestUser(t, db)

			_, err := svc.Restore(owner.ID, strings.NewReader(tt.doc))
			testutil.AssertAppErrorMessage(t, err, "INVALID_BACKUP", tt.message)

			var count int64
			db.Model(&models.Expense{}).Count(&count)
			if count != 0 {
				t.Errorf("invalid restore must apply nothing, found %d rows", count)
			}
		})
	}
}
