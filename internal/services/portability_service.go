package services

import (
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/export"
	"spendlog/internal/models"
)

// portabilityService moves a user's expenses in and out of the store.
type portabilityService struct {
	db *gorm.DB
}

// NewPortabilityService creates a new PortabilityServicer.
func NewPortabilityService(db *gorm.DB) PortabilityServicer {
	return &portabilityService{db: db}
}

// ownedExpenses loads every expense of userID, newest first.
func (s *portabilityService) ownedExpenses(userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Order("id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// ExportCSV writes the user's expenses as CSV.
func (s *portabilityService) ExportCSV(userID uint, w io.Writer) error {
	expenses, err := s.ownedExpenses(userID)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(w, expenses); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ExportXLSX writes the user's expenses as an XLSX workbook.
func (s *portabilityService) ExportXLSX(userID uint, w io.Writer) error {
	expenses, err := s.ownedExpenses(userID)
	if err != nil {
		return err
	}
	if err := export.WriteXLSX(w, expenses); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Backup writes the user's expenses as a JSON backup.
func (s *portabilityService) Backup(userID uint, w io.Writer) error {
	expenses, err := s.ownedExpenses(userID)
	if err != nil {
		return err
	}
	if err := export.WriteBackup(w, expenses); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Restore upserts every backup item into userID's expenses. Items match an
// existing row on (owner, title, amount, category, date); a match has its
// notes and recurrence overwritten, otherwise a new row is inserted. Every item
// is validated before the first write and all writes share one transaction,
// so an invalid document changes nothing.
func (s *portabilityService) Restore(userID uint, r io.Reader) (*RestoreResult, error) {
	items, err := export.ReadBackup(r)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidBackup, "Invalid backup: "+err.Error())
	}

	inputs := make([]ExpenseInput, 0, len(items))
	for i, item := range items {
		in := ExpenseInput{
			Title:          item.Title,
			Amount:         item.Amount,
			Category:       item.Category,
			Date:           item.Date,
			Notes:          item.Notes,
			Recurring:      item.Recurring,
			RecurrenceType: item.RecurrenceType,
		}
		in.Normalize()
		if err := ValidateExpenseInput(in); err != nil {
			msg := err.Error()
			if appErr := apperrors.As(err); appErr != nil {
				msg = appErr.Message
			}
			return nil, apperrors.WithMessage(apperrors.ErrInvalidBackup, fmt.Sprintf("Invalid backup: item %d: %s", i+1, msg))
		}
		inputs = append(inputs, in)
	}

	result := &RestoreResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			created, err := upsertExpense(tx, userID, in)
			if err != nil {
				return err
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// upsertExpense applies one restored item inside tx and reports whether a new
// row was inserted. Amounts are compared as decimals in Go since the stored
// representation differs between drivers.
func upsertExpense(tx *gorm.DB, userID uint, in ExpenseInput) (bool, error) {
	var candidates []models.Expense
	err := tx.Where("user_id = ? AND title = ? AND category = ? AND date = ?", userID, in.Title, in.Category, in.Date).
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range candidates {
		existing := &candidates[i]
		if !existing.Amount.Equal(in.Amount) {
			continue
		}
		err := tx.Model(existing).Updates(map[string]interface{}{
			"notes":           in.Notes,
			"recurring":       in.Recurring,
			"recurrence_type": in.RecurrenceType,
		}).Error
		if err != nil {
			return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return false, nil
	}

	owner := userID
	expense := &models.Expense{UserID: &owner}
	in.apply(expense)
	if err := tx.Create(expense).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return true, nil
}
