package services

import (
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"spendlog/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Signup(username, password, confirm string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
}

// SessionServicer defines the contract for server-side login sessions.
type SessionServicer interface {
	CreateSession(userID uint) (*models.Session, error)
	ValidateSession(sessionID string) (*models.Session, error)
	RenewSession(session *models.Session) (bool, error)
	DeleteSession(sessionID string) error
	PurgeExpired() (int64, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
// Nil fields and an empty Search do not filter.
type ExpenseFilter struct {
	Category  *models.Category
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
}

// ExpenseList is a filtered expense set with the sum of its amounts.
type ExpenseList struct {
	Expenses []models.Expense
	Total    decimal.Decimal
}

// ExpenseInput carries the mutable attributes of an expense.
type ExpenseInput struct {
	Title          string
	Amount         decimal.Decimal
	Category       models.Category
	Date           time.Time
	Notes          string
	Recurring      bool
	RecurrenceType models.RecurrenceType
}

// Normalize applies defaults: category OTHER, recurrence NONE, a trimmed
// title and the date reduced to a calendar day.
func (in *ExpenseInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	if in.Category == "" {
		in.Category = models.CategoryOther
	}
	if in.RecurrenceType == "" {
		in.RecurrenceType = models.RecurrenceNone
	}
	in.Date = models.TruncateDate(in.Date)
}

// ExpenseServicer defines the contract for owner-scoped expense CRUD.
type ExpenseServicer interface {
	List(userID uint, filter ExpenseFilter) (*ExpenseList, error)
	Get(userID, expenseID uint) (*models.Expense, error)
	Create(userID uint, input ExpenseInput) (*models.Expense, error)
	Update(userID, expenseID uint, input ExpenseInput) (*models.Expense, error)
	Delete(userID, expenseID uint) error
}

// RestoreResult counts the rows a restore inserted and overwrote.
type RestoreResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// PortabilityServicer defines the contract for export, backup and restore.
type PortabilityServicer interface {
	ExportCSV(userID uint, w io.Writer) error
	ExportXLSX(userID uint, w io.Writer) error
	Backup(userID uint, w io.Writer) error
	Restore(userID uint, r io.Reader) (*RestoreResult, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
