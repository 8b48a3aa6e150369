package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single income or expense entry. The sign
// convention follows the category type: amounts are stored as entered.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	IsRecurring bool            `gorm:"default:false" json:"is_recurring"`
	RecurringID *string         `gorm:"type:uuid" json:"recurring_id,omitempty"`

	// Relationships
	Category  Category              `gorm:"foreignKey:CategoryID" json:"category"`
	Recurring *RecurringTransaction `gorm:"foreignKey:RecurringID" json:"recurring,omitempty"`
}
