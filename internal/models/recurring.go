package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringFrequency represents how often a recurring transaction repeats.
type RecurringFrequency string

const (
	RecurringWeekly  RecurringFrequency = "WEEKLY"
	RecurringMonthly RecurringFrequency = "MONTHLY"
	RecurringYearly  RecurringFrequency = "YEARLY"
)

// RecurringTransaction is a template for transactions that repeat on a
// schedule. Generated transactions link back via Transaction.RecurringID.
type RecurringTransaction struct {
	Base
	UserID      string             `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  string             `gorm:"type:uuid;not null" json:"category_id"`
	Amount      decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description string             `gorm:"not null" json:"description"`
	Frequency   RecurringFrequency `gorm:"not null" json:"frequency"`
	NextDate    time.Time          `gorm:"not null" json:"next_date"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
