package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal tracks progress toward a saving target.
type SavingsGoal struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string          `gorm:"not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
}
