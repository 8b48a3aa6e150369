package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

// savingsGoalService handles savings goal business logic.
type savingsGoalService struct {
	db *gorm.DB
}

// NewSavingsGoalService creates a new SavingsGoalServicer.
func NewSavingsGoalService(db *gorm.DB) SavingsGoalServicer {
	return &savingsGoalService{db: db}
}

// CreateGoal creates a new savings goal.
func (s *savingsGoalService) CreateGoal(userID, name string, target decimal.Decimal, deadline *time.Time) (*models.SavingsGoal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if target.Sign() <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}

	goal := &models.SavingsGoal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		Deadline:      deadline,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals returns all of the user's savings goals.
func (s *savingsGoalService) GetUserGoals(userID string) ([]models.SavingsGoal, error) {
	var goals []models.SavingsGoal
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

func (s *savingsGoalService) getGoalByID(userID, goalID string) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSavingsGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal updates the provided fields of an existing goal.
func (s *savingsGoalService) UpdateGoal(userID, goalID string, name *string, target *decimal.Decimal, deadline *time.Time) (*models.SavingsGoal, error) {
	goal, err := s.getGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil && *name != "" {
		updates["name"] = *name
	}
	if target != nil {
		if target.Sign() <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		updates["target_amount"] = *target
	}
	if deadline != nil {
		updates["deadline"] = deadline
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return goal, nil
}

// Contribute adds an amount to the goal's current total.
func (s *savingsGoalService) Contribute(userID, goalID string, amount decimal.Decimal) (*models.SavingsGoal, error) {
	if amount.Sign() <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution amount must be greater than zero")
	}

	goal, err := s.getGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	newTotal := goal.CurrentAmount.Add(amount)
	if err := s.db.Model(goal).Update("current_amount", newTotal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal.CurrentAmount = newTotal
	return goal, nil
}

// DeleteGoal deletes a savings goal.
func (s *savingsGoalService) DeleteGoal(userID, goalID string) error {
	goal, err := s.getGoalByID(userID, goalID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
