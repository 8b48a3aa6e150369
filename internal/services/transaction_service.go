package services

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/pagination"
)

// transactionService handles transaction-related business logic. Every
// mutation re-triggers budget recalculation for the touched
// (category, month) pairs so cached budget totals stay consistent.
type transactionService struct {
	db            *gorm.DB
	budgetService BudgetServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, budgetService BudgetServicer) TransactionServicer {
	return &transactionService{
		db:            db,
		budgetService: budgetService,
	}
}

// validateInput checks the shared create/update fields.
func validateInput(input TransactionInput) error {
	if len(input.Description) == 0 || len(input.Description) > 200 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description must be between 1 and 200 characters")
	}
	if input.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if input.CategoryID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category ID is required")
	}
	return nil
}

// getOwnedCategory verifies that the category belongs to the user.
func (s *transactionService) getOwnedCategory(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// CreateTransaction records a new transaction and recalculates the budget
// for its (category, month).
func (s *transactionService) CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	category, err := s.getOwnedCategory(userID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Description: input.Description,
		Date:        input.Date,
		IsRecurring: input.IsRecurring,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.budgetService.RecalculateSpent(tx, userID, input.CategoryID, input.Date)
	})
	if err != nil {
		return nil, err
	}

	transaction.Category = *category
	return transaction, nil
}

// UpdateTransaction rewrites a transaction's fields and recalculates both
// the old and new (category, month) budgets. Both recalculations run even
// when the category is unchanged, so a date moved across a month boundary
// keeps both months consistent.
func (s *transactionService) UpdateTransaction(userID, transactionID string, input TransactionInput) (*models.Transaction, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != existing.CategoryID {
		if _, err := s.getOwnedCategory(userID, input.CategoryID); err != nil {
			return nil, err
		}
	}

	oldCategoryID, oldDate := existing.CategoryID, existing.Date

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"amount":       input.Amount,
			"description":  input.Description,
			"date":         input.Date,
			"category_id":  input.CategoryID,
			"is_recurring": input.IsRecurring,
		}
		if err := tx.Model(existing).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := s.budgetService.RecalculateSpent(tx, userID, oldCategoryID, oldDate); err != nil {
			return err
		}
		return s.budgetService.RecalculateSpent(tx, userID, input.CategoryID, input.Date)
	})
	if err != nil {
		return nil, err
	}

	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction removes a transaction and recalculates its budget.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.budgetService.RecalculateSpent(tx, userID, transaction.CategoryID, transaction.Date)
	})
}

// BulkDeleteTransactions deletes up to 100 transactions atomically.
// Ownership of every id is verified before anything is deleted; a single
// foreign id fails the whole batch.
func (s *transactionService) BulkDeleteTransactions(userID string, ids []string) (int64, error) {
	if len(ids) == 0 || len(ids) > 100 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "between 1 and 100 transaction IDs are required")
	}

	var owned []models.Transaction
	if err := s.db.Where("id IN ? AND user_id = ?", ids, userID).Find(&owned).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(owned) != len(ids) {
		return 0, apperrors.WithMessage(apperrors.ErrUnauthorized, "Some transactions were not found or are not yours")
	}

	// Recalculation is keyed by distinct (category, date) pair. Several
	// deletions in the same month recompute the same budget more than
	// once; harmless since recalculation is idempotent.
	type recalcKey struct {
		categoryID string
		date       time.Time
	}
	keys := make(map[recalcKey]struct{}, len(owned))
	for _, t := range owned {
		keys[recalcKey{categoryID: t.CategoryID, date: t.Date}] = struct{}{}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id IN ? AND user_id = ?", ids, userID).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for key := range keys {
			if err := s.budgetService.RecalculateSpent(tx, userID, key.categoryID, key.date); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return int64(len(owned)), nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions, newest first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").
		Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// monthTransactions fetches one calendar month of the user's transactions
// with their categories, newest first.
func (s *transactionService) monthTransactions(userID string, month time.Time) ([]models.Transaction, error) {
	start, next := monthWindow(month)

	var transactions []models.Transaction
	if err := s.db.Preload("Category").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, next).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// summarize partitions transactions by category type and totals them.
func summarize(transactions []models.Transaction) MonthlySummary {
	summary := MonthlySummary{TransactionCount: len(transactions)}
	for _, t := range transactions {
		switch t.Category.Type {
		case models.CategoryTypeIncome:
			summary.Income = summary.Income.Add(t.Amount)
		case models.CategoryTypeExpense:
			summary.Expenses = summary.Expenses.Add(t.Amount)
		}
	}
	summary.Net = summary.Income.Sub(summary.Expenses)
	return summary
}

// GetMonthly returns one calendar month of transactions with its summary.
// Month is zero-indexed (0 = January) to match the client calendar API.
func (s *transactionService) GetMonthly(userID string, year, month int) (*MonthlyReport, error) {
	transactions, err := s.monthTransactions(userID, monthFromIndex(year, month))
	if err != nil {
		return nil, err
	}

	return &MonthlyReport{
		Transactions: transactions,
		Summary:      summarize(transactions),
	}, nil
}

// GetStats compares the requested month (default: current) against the
// immediately preceding calendar month and breaks the current month down by
// category. Year rollover is handled by date arithmetic: January's previous
// month is December of the prior year.
func (s *transactionService) GetStats(userID string, year, month *int) (*MonthlyStats, error) {
	now := time.Now().UTC()
	y := now.Year()
	m := int(now.Month()) - 1
	if year != nil {
		y = *year
	}
	if month != nil {
		if *month < 0 || *month > 11 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 0 and 11")
		}
		m = *month
	}

	currentMonth := monthFromIndex(y, m)
	previousMonth := monthFromIndex(y, m-1)

	current, err := s.monthTransactions(userID, currentMonth)
	if err != nil {
		return nil, err
	}
	previous, err := s.monthTransactions(userID, previousMonth)
	if err != nil {
		return nil, err
	}

	currentSummary := summarize(current)
	previousSummary := summarize(previous)

	return &MonthlyStats{
		CurrentMonth:  currentSummary,
		PreviousMonth: previousSummary,
		Comparison: StatsComparison{
			IncomeChange:   currentSummary.Income.Sub(previousSummary.Income),
			ExpensesChange: currentSummary.Expenses.Sub(previousSummary.Expenses),
			NetChange:      currentSummary.Net.Sub(previousSummary.Net),
		},
		CategoryBreakdown: breakdownByCategory(current),
	}, nil
}

// breakdownByCategory groups transactions by category name and sorts the
// result by total, descending.
func breakdownByCategory(transactions []models.Transaction) []CategoryBreakdownEntry {
	byName := make(map[string]*CategoryBreakdownEntry)
	for _, t := range transactions {
		entry, ok := byName[t.Category.Name]
		if !ok {
			entry = &CategoryBreakdownEntry{
				Name:  t.Category.Name,
				Type:  t.Category.Type,
				Color: t.Category.Color,
				Icon:  t.Category.Icon,
			}
			byName[t.Category.Name] = entry
		}
		entry.Total = entry.Total.Add(t.Amount)
		entry.Count++
	}

	breakdown := make([]CategoryBreakdownEntry, 0, len(byName))
	for _, entry := range byName {
		breakdown = append(breakdown, *entry)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Total.GreaterThan(breakdown[j].Total)
	})
	return breakdown
}
