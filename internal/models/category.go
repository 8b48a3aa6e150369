package models

import "github.com/shopspring/decimal"

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// Category represents a transaction category
type Category struct {
	Base
	UserID string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string       `gorm:"not null" json:"name"`
	Type   CategoryType `gorm:"not null" json:"type"`
	Color  string       `gorm:"not null" json:"color"`
	Icon   string       `json:"icon,omitempty"`

	// Optional default monthly limit applied when creating budgets.
	BudgetLimit *decimal.Decimal `gorm:"type:decimal(12,2)" json:"budget_limit,omitempty"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}

// CategoryWithCount pairs a category with the number of transactions
// referencing it. Populated at query time, never persisted.
type CategoryWithCount struct {
	Category
	TransactionCount int64 `json:"transaction_count"`
}
