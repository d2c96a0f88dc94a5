package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"spendlog/internal/models"
)

// BackupRecord is one expense as it appears in a JSON backup. Every stored
// field is present; amount is a two-decimal string and date is YYYY-MM-DD.
type BackupRecord struct {
	ID             uint   `json:"id"`
	UserID         *uint  `json:"user_id"`
	Title          string `json:"title"`
	Amount         string `json:"amount"`
	Category       string `json:"category"`
	Date           string `json:"date"`
	Notes          string `json:"notes"`
	Recurring      bool   `json:"recurring"`
	RecurrenceType string `json:"recurrence_type"`
}

// WriteBackup writes expenses as a JSON array of BackupRecord objects.
func WriteBackup(w io.Writer, expenses []models.Expense) error {
	records := make([]BackupRecord, 0, len(expenses))
	for i := range expenses {
		e := &expenses[i]
		records = append(records, BackupRecord{
			ID:             e.ID,
			UserID:         e.UserID,
			Title:          e.Title,
			Amount:         e.AmountString(),
			Category:       string(e.Category),
			Date:           e.DateString(),
			Notes:          e.Notes,
			Recurring:      e.Recurring,
			RecurrenceType: string(e.RecurrenceType),
		})
	}
	return json.NewEncoder(w).Encode(records)
}

// RestoreItem is a decoded backup entry. Category and RecurrenceType are
// carried as read; range checks happen when the item becomes an expense input.
type RestoreItem struct {
	Title          string
	Amount         decimal.Decimal
	Category       models.Category
	Date           time.Time
	Notes          string
	Recurring      bool
	RecurrenceType models.RecurrenceType
}

// backupEntry mirrors BackupRecord with pointers so that absent keys and
// nulls can be told apart from zero values. id and user_id are ignored.
type backupEntry struct {
	Title          *string          `json:"title"`
	Amount         *decimal.Decimal `json:"amount"`
	Category       *string          `json:"category"`
	Date           *string          `json:"date"`
	Notes          *string          `json:"notes"`
	Recurring      *bool            `json:"recurring"`
	RecurrenceType *string          `json:"recurrence_type"`
}

// ItemError reports a problem with a single backup entry.
type ItemError struct {
	Index int
	Msg   string
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %s", e.Index+1, e.Msg)
}

// ReadBackup decodes a JSON array of backup objects. title, amount, category
// and date are required; notes, recurring and recurrence_type default to "",
// false and NONE. Amount may be a JSON number or a decimal string.
func ReadBackup(r io.Reader) ([]RestoreItem, error) {
	var entries []*backupEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}

	items := make([]RestoreItem, 0, len(entries))
	for i, entry := range entries {
		item, err := entry.toItem()
		if err != nil {
			return nil, &ItemError{Index: i, Msg: err.Error()}
		}
		items = append(items, item)
	}
	return items, nil
}

func (b *backupEntry) toItem() (RestoreItem, error) {
	if b == nil {
		return RestoreItem{}, fmt.Errorf("entry is null")
	}

	switch {
	case b.Title == nil:
		return RestoreItem{}, fmt.Errorf("missing key %q", "title")
	case b.Amount == nil:
		return RestoreItem{}, fmt.Errorf("missing key %q", "amount")
	case b.Category == nil:
		return RestoreItem{}, fmt.Errorf("missing key %q", "category")
	case b.Date == nil:
		return RestoreItem{}, fmt.Errorf("missing key %q", "date")
	}

	date, err := ParseDate(*b.Date)
	if err != nil {
		return RestoreItem{}, err
	}

	item := RestoreItem{
		Title:          *b.Title,
		Amount:         *b.Amount,
		Category:       models.Category(*b.Category),
		Date:           date,
		RecurrenceType: models.RecurrenceNone,
	}
	if b.Notes != nil {
		item.Notes = *b.Notes
	}
	if b.Recurring != nil {
		item.Recurring = *b.Recurring
	}
	if b.RecurrenceType != nil && *b.RecurrenceType != "" {
		item.RecurrenceType = models.RecurrenceType(*b.RecurrenceType)
	}
	return item, nil
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(models.DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return models.TruncateDate(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}
