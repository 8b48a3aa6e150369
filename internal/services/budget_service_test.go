package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"centavo/internal/models"
	"centavo/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("creates_with_seeded_spent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		// Spending recorded before the budget exists must be picked up.
		march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, d("80"), march.AddDate(0, 0, 4))

		budget, err := svc.CreateBudget(user.ID, category.ID, d("500"), march.AddDate(0, 0, 17))
		testutil.AssertNoError(t, err)

		if !budget.Month.Equal(march) {
			t.Errorf("expected month normalized to %s, got %s", march, budget.Month)
		}
		testutil.AssertDecimalEqual(t, d("80"), budget.Spent)
		testutil.AssertDecimalEqual(t, d("500"), budget.Limit)
	})

	t.Run("duplicate_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		_, err := svc.CreateBudget(user.ID, category.ID, d("500"), march)
		testutil.AssertNoError(t, err)

		// Any day within the same month collides.
		_, err = svc.CreateBudget(user.ID, category.ID, d("600"), march.AddDate(0, 0, 20))
		testutil.AssertAppError(t, err, "BUDGET_EXISTS")
	})

	t.Run("same_category_different_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudget(user.ID, category.ID, d("500"), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)
		_, err = svc.CreateBudget(user.ID, category.ID, d("500"), time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)
	})

	t.Run("nonpositive_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudget(user.ID, category.ID, decimal.Zero, time.Now().UTC())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("wrong_user_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user1.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudget(user2.ID, category.ID, d("500"), time.Now().UTC())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGetMonthlyBudgets(t *testing.T) {
	t.Run("computes_spent_remaining_percent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestBudget(t, db, user.ID, category.ID, d("500"), march)
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, d("200"), march.AddDate(0, 0, 10))

		statuses, err := svc.GetMonthlyBudgets(user.ID, march)
		testutil.AssertNoError(t, err)

		if len(statuses) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(statuses))
		}
		testutil.AssertDecimalEqual(t, d("200"), statuses[0].Spent)
		testutil.AssertDecimalEqual(t, d("300"), statuses[0].Remaining)
		if statuses[0].PercentUsed != 40 {
			t.Errorf("expected 40%% used, got %v", statuses[0].PercentUsed)
		}
	})

	t.Run("spent_is_recomputed_not_cached", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		budget := testutil.CreateTestBudget(t, db, user.ID, category.ID, d("500"), march)

		// Simulate a stale cache.
		testutil.AssertNoError(t, db.Model(budget).Update("spent", d("999")).Error)
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, d("50"), march.AddDate(0, 0, 2))

		statuses, err := svc.GetMonthlyBudgets(user.ID, march)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, d("50"), statuses[0].Spent)
	})

	t.Run("empty_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		statuses, err := svc.GetMonthlyBudgets(user.ID, time.Now().UTC())
		testutil.AssertNoError(t, err)
		if len(statuses) != 0 {
			t.Errorf("expected no budgets, got %d", len(statuses))
		}
	})
}

func TestRecalculateSpent(t *testing.T) {
	t.Run("noop_without_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		err := svc.RecalculateSpent(nil, user.ID, category.ID, time.Now().UTC())
		testutil.AssertNoError(t, err)
	})

	t.Run("only_counts_the_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestBudget(t, db, user.ID, category.ID, d("500"), march)

		testutil.CreateTestTransaction(t, db, user.ID, category.ID, d("100"), march.AddDate(0, 0, 5))
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, d("40"), march.AddDate(0, 0, 25))
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, d("77"), march.AddDate(0, -1, 0))
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, d("88"), march.AddDate(0, 1, 0))

		testutil.AssertNoError(t, svc.RecalculateSpent(nil, user.ID, category.ID, march.AddDate(0, 0, 12)))

		var budget models.Budget
		testutil.AssertNoError(t, db.Where("category_id = ?", category.ID).First(&budget).Error)
		testutil.AssertDecimalEqual(t, d("140"), budget.Spent)
	})
}

func TestUpdateBudget(t *testing.T) {
	t.Run("changes_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, category.ID, d("500"), time.Now().UTC())

		limit := d("750")
		updated, err := svc.UpdateBudget(user.ID, budget.ID, &limit)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, d("750"), updated.Limit)
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		limit := d("750")
		_, err := svc.UpdateBudget(user.ID, "00000000-0000-7000-8000-000000000000", &limit)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("nonpositive_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, category.ID, d("500"), time.Now().UTC())

		limit := decimal.Zero
		_, err := svc.UpdateBudget(user.ID, budget.ID, &limit)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("returns_deleted_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, category.ID, d("500"), time.Now().UTC())

		deleted, err := svc.DeleteBudget(user.ID, budget.ID)
		testutil.AssertNoError(t, err)
		if deleted.ID != budget.ID {
			t.Errorf("expected deleted budget %s, got %s", budget.ID, deleted.ID)
		}

		_, err = svc.DeleteBudget(user.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user1.ID, models.CategoryTypeExpense)
		budget := testutil.CreateTestBudget(t, db, user1.ID, category.ID, d("500"), time.Now().UTC())

		_, err := svc.DeleteBudget(user2.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestCopyFromPreviousMonth(t *testing.T) {
	t.Run("copies_limits_resets_spent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		food := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		travel := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		april := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

		b1 := testutil.CreateTestBudget(t, db, user.ID, food.ID, d("300"), march)
		testutil.CreateTestBudget(t, db, user.ID, travel.ID, d("200"), march)
		testutil.AssertNoError(t, db.Model(b1).Update("spent", d("250")).Error)

		count, err := svc.CopyFromPreviousMonth(user.ID, april)
		testutil.AssertNoError(t, err)
		if count != 2 {
			t.Errorf("expected 2 copies, got %d", count)
		}

		var copies []models.Budget
		testutil.AssertNoError(t, db.Where("user_id = ? AND month = ?", user.ID, april).Find(&copies).Error)
		if len(copies) != 2 {
			t.Fatalf("expected 2 budgets in target month, got %d", len(copies))
		}
		for _, c := range copies {
			testutil.AssertDecimalEqual(t, decimal.Zero, c.Spent)
		}
	})

	t.Run("no_source_budgets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CopyFromPreviousMonth(user.ID, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("occupied_target_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		april := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestBudget(t, db, user.ID, category.ID, d("300"), march)

		count, err := svc.CopyFromPreviousMonth(user.ID, april)
		testutil.AssertNoError(t, err)
		if count != 1 {
			t.Errorf("expected 1 copy, got %d", count)
		}

		// Second copy into the same month must not duplicate.
		_, err = svc.CopyFromPreviousMonth(user.ID, april)
		testutil.AssertAppError(t, err, "BUDGET_EXISTS")
	})

	t.Run("january_copies_from_december", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestBudget(t, db, user.ID, category.ID, d("300"), time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC))

		count, err := svc.CopyFromPreviousMonth(user.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)
		if count != 1 {
			t.Errorf("expected 1 copy, got %d", count)
		}
	})
}
