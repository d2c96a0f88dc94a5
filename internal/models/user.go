package models

import "time"

// User represents an account that owns expenses
type User struct {
	Base
	Username    string     `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Password    string     `gorm:"not null" json:"-"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	Expenses    []Expense  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"expenses,omitempty"`
}
