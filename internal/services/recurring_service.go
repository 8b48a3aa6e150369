package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

// recurringService handles recurring transaction templates.
type recurringService struct {
	db *gorm.DB
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB) RecurringServicer {
	return &recurringService{db: db}
}

// CreateRecurring creates a recurring transaction template.
func (s *recurringService) CreateRecurring(
	userID, categoryID string,
	amount decimal.Decimal,
	description string,
	frequency models.RecurringFrequency,
	nextDate time.Time,
) (*models.RecurringTransaction, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	recurring := &models.RecurringTransaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		Frequency:   frequency,
		NextDate:    nextDate,
	}
	if err := s.db.Create(recurring).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	recurring.Category = category
	return recurring, nil
}

// GetUserRecurring returns all of the user's recurring templates.
func (s *recurringService) GetUserRecurring(userID string) ([]models.RecurringTransaction, error) {
	var recurring []models.RecurringTransaction
	if err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("next_date ASC").
		Find(&recurring).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recurring, nil
}

// DeleteRecurring deletes a recurring template. Existing transactions keep
// their recurring_id reference for historical records.
func (s *recurringService) DeleteRecurring(userID, recurringID string) error {
	var recurring models.RecurringTransaction
	if err := s.db.Where("id = ? AND user_id = ?", recurringID, userID).First(&recurring).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRecurringNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&recurring).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
