package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"centavo/internal/models"
	"centavo/internal/pagination"
)

// UserServicer defines the contract for user provisioning and lookup.
type UserServicer interface {
	EnsureUser(externalID, email, name string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	UpdateProfile(id, name string) (*models.User, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, categoryType models.CategoryType, color, icon string, budgetLimit *decimal.Decimal) (*models.Category, error)
	GetUserCategories(userID string, categoryType *models.CategoryType) ([]models.CategoryWithCount, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID string, update CategoryUpdate) (*models.Category, error)
	DeleteCategory(userID, categoryID string) (*models.Category, error)
}

// CategoryUpdate holds the optional fields of a category update. Nil fields
// are left unchanged.
type CategoryUpdate struct {
	Name        *string
	Type        *models.CategoryType
	Color       *string
	Icon        *string
	BudgetLimit *decimal.Decimal
}

// TransactionInput holds the fields shared by transaction create and update.
type TransactionInput struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  string
	IsRecurring bool
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	CategoryID *string
	FromDate   *time.Time
	ToDate     *time.Time
}

// MonthlySummary totals one calendar month of transactions by category type.
type MonthlySummary struct {
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int             `json:"transaction_count"`
}

// MonthlyReport pairs a month's transactions with their summary.
type MonthlyReport struct {
	Transactions []models.Transaction `json:"transactions"`
	Summary      MonthlySummary       `json:"summary"`
}

// StatsComparison holds month-over-month deltas.
type StatsComparison struct {
	IncomeChange   decimal.Decimal `json:"income_change"`
	ExpensesChange decimal.Decimal `json:"expenses_change"`
	NetChange      decimal.Decimal `json:"net_change"`
}

// CategoryBreakdownEntry accumulates one category's share of a month.
type CategoryBreakdownEntry struct {
	Name  string              `json:"name"`
	Total decimal.Decimal     `json:"total"`
	Count int                 `json:"count"`
	Type  models.CategoryType `json:"type"`
	Color string              `json:"color"`
	Icon  string              `json:"icon,omitempty"`
}

// MonthlyStats compares the requested month against the previous one.
type MonthlyStats struct {
	CurrentMonth      MonthlySummary           `json:"current_month"`
	PreviousMonth     MonthlySummary           `json:"previous_month"`
	Comparison        StatsComparison          `json:"comparison"`
	CategoryBreakdown []CategoryBreakdownEntry `json:"category_breakdown"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	BulkDeleteTransactions(userID string, ids []string) (int64, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetMonthly(userID string, year, month int) (*MonthlyReport, error)
	GetStats(userID string, year, month *int) (*MonthlyStats, error)
}

// BudgetStatus is a budget joined with its freshly recomputed spending.
// Spent here is re-aggregated from transactions at read time, not the
// cached column.
type BudgetStatus struct {
	Budget      models.Budget   `json:"budget"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed float64         `json:"percent_used"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	GetMonthlyBudgets(userID string, month time.Time) ([]BudgetStatus, error)
	CreateBudget(userID, categoryID string, limit decimal.Decimal, month time.Time) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, limit *decimal.Decimal) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) (*models.Budget, error)
	CopyFromPreviousMonth(userID string, targetMonth time.Time) (int64, error)

	// RecalculateSpent re-derives the cached spent total of the budget
	// covering (categoryID, month of date) from the transaction rows and
	// persists it. A missing budget row is a no-op, not an error.
	RecalculateSpent(tx *gorm.DB, userID, categoryID string, date time.Time) error
}

// SavingsGoalServicer defines the contract for savings goal logic.
type SavingsGoalServicer interface {
	CreateGoal(userID, name string, target decimal.Decimal, deadline *time.Time) (*models.SavingsGoal, error)
	GetUserGoals(userID string) ([]models.SavingsGoal, error)
	UpdateGoal(userID, goalID string, name *string, target *decimal.Decimal, deadline *time.Time) (*models.SavingsGoal, error)
	Contribute(userID, goalID string, amount decimal.Decimal) (*models.SavingsGoal, error)
	DeleteGoal(userID, goalID string) error
}

// RecurringServicer defines the contract for recurring transaction templates.
type RecurringServicer interface {
	CreateRecurring(userID, categoryID string, amount decimal.Decimal, description string, frequency models.RecurringFrequency, nextDate time.Time) (*models.RecurringTransaction, error)
	GetUserRecurring(userID string) ([]models.RecurringTransaction, error)
	DeleteRecurring(userID, recurringID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
