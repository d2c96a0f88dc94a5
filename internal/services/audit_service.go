package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"spendlog/internal/logger"
	"spendlog/internal/models"
)

// AuditResourceExpense is the resource type recorded for expense changes.
const AuditResourceExpense = "expense"

// auditService writes AuditLog rows on a best-effort basis.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Failures are logged and swallowed; an expense
// write never fails because its audit row could not be stored.
func (s *auditService) Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{}) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}

	if len(changes) > 0 {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Warnw("audit changes not serializable", "error", err, "action", action)
		} else {
			entry.Changes = string(data)
		}
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to write audit log",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_id", resourceID,
		)
	}
}

// ExpenseChanges is the audit payload for an expense snapshot.
func ExpenseChanges(e *models.Expense) map[string]interface{} {
	return map[string]interface{}{
		"title":           e.Title,
		"amount":          e.AmountString(),
		"category":        e.Category,
		"date":            e.DateString(),
		"recurring":       e.Recurring,
		"recurrence_type": e.RecurrenceType,
	}
}
