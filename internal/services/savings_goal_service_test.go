package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"centavo/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	t.Run("creates_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsGoalService(db)
		user := testutil.CreateTestUser(t, db)

		deadline := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		goal, err := svc.CreateGoal(user.ID, "Emergency Fund", d("3000"), &deadline)
		testutil.AssertNoError(t, err)

		if goal.ID == "" {
			t.Fatal("expected non-empty goal ID")
		}
		testutil.AssertDecimalEqual(t, decimal.Zero, goal.CurrentAmount)
	})

	t.Run("nonpositive_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Nothing", decimal.Zero, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestContribute(t *testing.T) {
	t.Run("accumulates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestSavingsGoal(t, db, user.ID, d("1000"))

		_, err := svc.Contribute(user.ID, goal.ID, d("250"))
		testutil.AssertNoError(t, err)
		updated, err := svc.Contribute(user.ID, goal.ID, d("100.50"))
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, d("350.50"), updated.CurrentAmount)
	})

	t.Run("nonpositive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestSavingsGoal(t, db, user.ID, d("1000"))

		_, err := svc.Contribute(user.ID, goal.ID, d("-5"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsGoalService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestSavingsGoal(t, db, user1.ID, d("1000"))

		_, err := svc.Contribute(user2.ID, goal.ID, d("50"))
		testutil.AssertAppError(t, err, "SAVINGS_GOAL_NOT_FOUND")
	})
}

func TestDeleteGoal(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestSavingsGoal(t, db, user.ID, d("1000"))

		testutil.AssertNoError(t, svc.DeleteGoal(user.ID, goal.ID))

		goals, err := svc.GetUserGoals(user.ID)
		testutil.AssertNoError(t, err)
		if len(goals) != 0 {
			t.Errorf("expected no goals, got %d", len(goals))
		}
	})
}
