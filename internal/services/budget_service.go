package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

// budgetService handles budget-related business logic, including the spent
// recalculation that keeps budgets consistent with the transaction log.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// sumCategoryMonth re-aggregates the user's transaction amounts for one
// category within the calendar month containing date. Amounts are summed in
// Go with decimal arithmetic so the result is exact on every driver.
func sumCategoryMonth(tx *gorm.DB, userID, categoryID string, date time.Time) (decimal.Decimal, error) {
	start, next := monthWindow(date)

	var amounts []decimal.Decimal
	err := tx.Model(&models.Transaction{}).
		Where("user_id = ? AND category_id = ? AND date >= ? AND date < ?", userID, categoryID, start, next).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total, nil
}

// RecalculateSpent re-derives the spent total for the budget covering
// (categoryID, month of date) from the transaction rows and persists it.
// When no budget row exists for that month the recalculation is a no-op.
// Always a full re-aggregation: the cached value can never drift from the
// transaction log, and concurrent recalculations converge on the same sum.
func (s *budgetService) RecalculateSpent(tx *gorm.DB, userID, categoryID string, date time.Time) error {
	if tx == nil {
		tx = s.db
	}

	total, err := sumCategoryMonth(tx, userID, categoryID, date)
	if err != nil {
		return err
	}

	month := firstOfMonth(date)
	if err := tx.Model(&models.Budget{}).
		Where("user_id = ? AND category_id = ? AND month = ?", userID, categoryID, month).
		Update("spent", total).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetMonthlyBudgets returns all of the user's budgets for the given month.
// Spent is recomputed fresh from transactions rather than read from the
// cached column, so listings are correct even if a recalculation was lost.
func (s *budgetService) GetMonthlyBudgets(userID string, month time.Time) ([]BudgetStatus, error) {
	monthKey := firstOfMonth(month)

	var budgets []models.Budget
	if err := s.db.Preload("Category").
		Where("user_id = ? AND month = ?", userID, monthKey).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		spent, err := sumCategoryMonth(s.db, userID, budget.CategoryID, monthKey)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, BudgetStatus{
			Budget:      budget,
			Spent:       spent,
			Remaining:   budget.Limit.Sub(spent),
			PercentUsed: percentUsed(spent, budget.Limit),
		})
	}
	return statuses, nil
}

// percentUsed returns spent/limit*100, or 0 when the limit is not positive.
func percentUsed(spent, limit decimal.Decimal) float64 {
	if limit.Sign() <= 0 {
		return 0
	}
	return spent.Div(limit).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// CreateBudget creates the budget for (category, month). The month is
// normalized to its first-of-month key, and at most one budget may exist
// per (user, category, month).
func (s *budgetService) CreateBudget(userID, categoryID string, limit decimal.Decimal, month time.Time) (*models.Budget, error) {
	if limit.Sign() <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget limit must be greater than zero")
	}

	// Verify category exists and belongs to user
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	monthKey := firstOfMonth(month)

	var existing int64
	if err := s.db.Model(&models.Budget{}).
		Where("user_id = ? AND category_id = ? AND month = ?", userID, categoryID, monthKey).
		Count(&existing).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if existing > 0 {
		return nil, apperrors.ErrBudgetExists
	}

	// Seed the cached spent total from whatever is already recorded this month.
	spent, err := sumCategoryMonth(s.db, userID, categoryID, monthKey)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Month:      monthKey,
		Limit:      limit,
		Spent:      spent,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budget.Category = category
	return budget, nil
}

// getBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) getBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", budgetID, userID).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget changes a budget's limit. The cached spent total is owned by
// recalculation and cannot be set here.
func (s *budgetService) UpdateBudget(userID, budgetID string, limit *decimal.Decimal) (*models.Budget, error) {
	budget, err := s.getBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	if limit != nil {
		if limit.Sign() <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget limit must be greater than zero")
		}
		if err := s.db.Model(budget).Update("limit_amount", *limit).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		budget.Limit = *limit
	}

	return budget, nil
}

// DeleteBudget deletes a budget and returns the deleted row.
func (s *budgetService) DeleteBudget(userID, budgetID string) (*models.Budget, error) {
	budget, err := s.getBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// CopyFromPreviousMonth copies every budget of the month preceding
// targetMonth into targetMonth with spent reset to zero. Fails when the
// previous month has no budgets or the target month already has any.
func (s *budgetService) CopyFromPreviousMonth(userID string, targetMonth time.Time) (int64, error) {
	target := firstOfMonth(targetMonth)
	previous := target.AddDate(0, -1, 0)

	var source []models.Budget
	if err := s.db.Where("user_id = ? AND month = ?", userID, previous).Find(&source).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(source) == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrBudgetNotFound, "No budgets found in the previous month")
	}

	var existing int64
	if err := s.db.Model(&models.Budget{}).
		Where("user_id = ? AND month = ?", userID, target).
		Count(&existing).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if existing > 0 {
		return 0, apperrors.WithMessage(apperrors.ErrBudgetExists, "Budgets already exist for the target month")
	}

	copies := make([]models.Budget, 0, len(source))
	for _, b := range source {
		copies = append(copies, models.Budget{
			UserID:     userID,
			CategoryID: b.CategoryID,
			Month:      target,
			Limit:      b.Limit,
			Spent:      decimal.Zero,
		})
	}

	if err := s.db.Create(&copies).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return int64(len(copies)), nil
}
