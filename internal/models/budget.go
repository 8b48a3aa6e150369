package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a monthly spending limit for one category. Month is the
// first-of-month date identifying the budget period. Spent is a cached total
// maintained exclusively by recalculation, never set by callers.
//
// At most one budget may exist per (user, category, month); the service layer
// enforces this with an existence check at creation time.
type Budget struct {
	Base
	UserID     string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Month      time.Time       `gorm:"not null;index" json:"month"`
	Limit      decimal.Decimal `gorm:"column:limit_amount;type:decimal(12,2);not null" json:"limit"`
	Spent      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"spent"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
